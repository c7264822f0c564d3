package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/Jaykaran24/fitbot/models"
	"github.com/Jaykaran24/fitbot/services"
)

type ChatController struct {
	DB      *gorm.DB
	Chat    *services.ChatService
	Hub     *services.ChatStreamHub
	Metrics *services.Metrics
}

func NewChatController(db *gorm.DB, chat *services.ChatService, hub *services.ChatStreamHub, metrics *services.Metrics) *ChatController {
	return &ChatController{DB: db, Chat: chat, Hub: hub, Metrics: metrics}
}

type ChatInput struct {
	Message       string `json:"message" binding:"required"`
	UseExternalAI *bool  `json:"useExternalAI"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SendMessage handles one REST chat turn. useExternalAI defaults to true
// when omitted.
func (cc *ChatController) SendMessage(c *gin.Context) {
	userID := c.GetUint("userID")

	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	useExternal := input.UseExternalAI == nil || *input.UseExternalAI

	profile := cc.loadProfile(userID)
	reply, err := cc.Chat.Chat(c.Request.Context(), userID, input.Message, useExternal, profile)
	if err != nil {
		respondError(c, err)
		return
	}

	cc.Metrics.RecordChat()
	cc.broadcastTurn(userID, input.Message, reply)
	c.JSON(http.StatusOK, gin.H{"response": reply.Content, "source": reply.Source})
}

func (cc *ChatController) History(c *gin.Context) {
	userID := c.GetUint("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	messages, err := cc.Chat.History(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat history"})
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ChatWS upgrades to a websocket. Incoming frames are chat turns in the same
// shape as the REST body; replies stream back as chat events to every socket
// the user has open.
func (cc *ChatController) ChatWS(c *gin.Context) {
	userID := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := &services.WSClient{UserID: userID, Conn: conn}
	cc.Hub.Register(client)

	// Keep connections alive through proxies.
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := client.Send(websocket.PingMessage, nil); err != nil {
				cc.Hub.Unregister(client)
				return
			}
		}
	}()

	for {
		var input ChatInput
		if err := conn.ReadJSON(&input); err != nil {
			cc.Hub.Unregister(client)
			return
		}
		if input.Message == "" {
			continue
		}
		useExternal := input.UseExternalAI == nil || *input.UseExternalAI

		profile := cc.loadProfile(userID)
		reply, err := cc.Chat.Chat(c.Request.Context(), userID, input.Message, useExternal, profile)
		if err != nil {
			_ = client.SendJSON(gin.H{"error": err.Error()})
			continue
		}
		cc.Metrics.RecordChat()
		cc.broadcastTurn(userID, input.Message, reply)
	}
}

func (cc *ChatController) loadProfile(userID uint) models.Profile {
	var user models.User
	if err := cc.DB.First(&user, userID).Error; err != nil {
		return models.Profile{}
	}
	return user.Profile
}

func (cc *ChatController) broadcastTurn(userID uint, message string, reply services.ChatReply) {
	now := time.Now()
	cc.Hub.Broadcast(userID, services.ChatEvent{Sender: "user", Content: message, Timestamp: now})
	cc.Hub.Broadcast(userID, services.ChatEvent{Sender: "bot", Content: reply.Content, Source: reply.Source, Timestamp: now})
}
