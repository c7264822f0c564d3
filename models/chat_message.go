package models

import "time"

// ChatMessage is one message in a user's conversation log. Append-only:
// rows are never updated or reordered, history reads in insertion order.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Sender    string    `gorm:"size:8;not null" json:"sender"` // "user" | "bot"
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
