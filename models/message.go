package models

import "time"

/************************************************
/**** MARK: MESSAGE ROLES ****/
/************************************************/
const MESSAGE_ROLE_USER = "user"
const MESSAGE_ROLE_ASSISTANT = "assistant"
const MESSAGE_ROLE_SYSTEM = "system"

// Message é uma linha do transcript de uma conversa (ligação).
// Append-only: o runtime de voz loga cada fala decodificada aqui.
type Message struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID         int64      `gorm:"not null;index" json:"user_id"`
	ConversationID string     `gorm:"not null;index" json:"conversation_id" form:"conversation_id"`
	Role           string     `gorm:"not null" json:"role" form:"role"`
	Text           string     `gorm:"type:text" json:"text" form:"text"`
	CreatedAt      *time.Time `json:"created_at"`
}
