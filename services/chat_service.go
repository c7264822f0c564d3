package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Jaykaran24/fitbot/apperrors"
	"github.com/Jaykaran24/fitbot/config"
	"github.com/Jaykaran24/fitbot/models"
)

// Reply sources, reported to the client so it can label answers.
const (
	ReplySourceLocal      = "local"
	ReplySourceOpenRouter = "openrouter"
)

// ChatReply is the outcome of one chat turn.
type ChatReply struct {
	Content string `json:"response"`
	Source  string `json:"source"`
}

// ChatService orchestrates the rule-based bot and the external AI gateway
// and persists the conversation log.
type ChatService struct {
	db       *gorm.DB
	bot      *FitBot
	external *OpenRouterService
	mode     string
	log      zerolog.Logger
}

func NewChatService(db *gorm.DB, bot *FitBot, external *OpenRouterService, mode string, log zerolog.Logger) *ChatService {
	return &ChatService{db: db, bot: bot, external: external, mode: mode, log: log}
}

// Chat answers one message. The external path is taken only when the request
// allows it and an API key is configured; how the two responders combine
// depends on the configured mode. External failures never fail the request,
// the rule-based bot always has an answer.
func (s *ChatService) Chat(ctx context.Context, userID uint, message string, useExternalAI bool, p models.Profile) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, apperrors.New(apperrors.KindValidation, "message is required")
	}

	externalAllowed := useExternalAI && s.external != nil && s.external.Enabled()

	var reply ChatReply
	switch {
	case s.mode == config.ModeExternalFirst && externalAllowed:
		content, err := s.external.Complete(ctx, message, p)
		if err != nil {
			s.log.Warn().Err(err).Uint("userId", userID).Msg("external ai failed, falling back to rule-based bot")
			content, _ := s.bot.Reply(message, p)
			reply = ChatReply{Content: content, Source: ReplySourceLocal}
		} else {
			reply = ChatReply{Content: content, Source: ReplySourceOpenRouter}
		}
	default:
		content, matched := s.bot.Reply(message, p)
		reply = ChatReply{Content: content, Source: ReplySourceLocal}
		if !matched && externalAllowed {
			external, err := s.external.Complete(ctx, message, p)
			if err != nil {
				s.log.Warn().Err(err).Uint("userId", userID).Msg("external ai failed, keeping rule-based response")
			} else {
				reply = ChatReply{Content: external, Source: ReplySourceOpenRouter}
			}
		}
	}

	s.persistTurn(userID, message, reply.Content)
	return reply, nil
}

// persistTurn stores both sides of the exchange. Persistence is best-effort:
// a database error is logged and swallowed so the user still gets the reply.
func (s *ChatService) persistTurn(userID uint, userMessage, botReply string) {
	now := time.Now()
	records := []models.ChatMessage{
		{UserID: userID, Sender: "user", Content: userMessage, Timestamp: now},
		{UserID: userID, Sender: "bot", Content: botReply, Timestamp: now},
	}
	if err := s.db.Create(&records).Error; err != nil {
		s.log.Error().Err(err).Uint("userId", userID).Msg("failed to persist chat messages")
	}
}

// History returns the user's most recent messages in chronological order.
func (s *ChatService) History(userID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var messages []models.ChatMessage
	err := s.db.Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Query newest-first for the limit, then flip to chronological.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
