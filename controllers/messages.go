package controllers

import (
	"net/http"
	"strings"

	dbpkg "stella/db"
	"stella/models"

	"github.com/gin-gonic/gin"
)

type messageInput struct {
	UserID         int64  `json:"user_id" form:"user_id"`
	ConversationID string `json:"conversation_id" form:"conversation_id"`
	Role           string `json:"role" form:"role"`
	Text           string `json:"text" form:"text"`
}

// POST /api/agent/messages
// Transcript append-only: o runtime de voz loga cada fala aqui.
func CreateMessage(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in messageInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if in.UserID <= 0 || strings.TrimSpace(in.ConversationID) == "" || strings.TrimSpace(in.Text) == "" {
		RespondError(c, "user_id, conversation_id e text são obrigatórios", http.StatusBadRequest)
		return
	}

	role := strings.TrimSpace(in.Role)
	switch role {
	case models.MESSAGE_ROLE_USER, models.MESSAGE_ROLE_ASSISTANT, models.MESSAGE_ROLE_SYSTEM:
	case "":
		role = models.MESSAGE_ROLE_USER
	default:
		RespondError(c, "role inválido", http.StatusBadRequest)
		return
	}

	msg := models.Message{
		UserID:         in.UserID,
		ConversationID: in.ConversationID,
		Role:           role,
		Text:           in.Text,
	}
	if err := db.Create(&msg).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"message": msg})
}

// GET /api/agent/messages?user_id=&conversation_id=
func GetMessages(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	userID, ok := QueryUserID(c)
	if !ok {
		return
	}

	q := db.Where("user_id = ?", userID)
	if conv := strings.TrimSpace(c.Query("conversation_id")); conv != "" {
		q = q.Where("conversation_id = ?", conv)
	}

	var msgs []models.Message
	if err := q.Order("id asc").Limit(500).Find(&msgs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"messages": msgs})
}
