package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	dbpkg "stella/db"
	"stella/models"
	"stella/tracker"
	"stella/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type replyInput struct {
	UserID         int64  `json:"user_id" form:"user_id"`
	ConversationID string `json:"conversation_id" form:"conversation_id"`
	Text           string `json:"text" form:"text"`
}

// POST /api/agent/reply
// Canal de texto (fallback quando a ligação não é possível): recebe a mensagem
// do usuário, injeta o bloco de contexto no prompt e devolve a resposta da
// Stella. A troca inteira vai pro transcript; falha do modelo vira resposta
// genérica, nunca erro na conversa.
func GenerateReply(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in replyInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	in.Text = strings.TrimSpace(in.Text)
	if in.UserID <= 0 || in.Text == "" {
		RespondError(c, "user_id e text são obrigatórios", http.StatusBadRequest)
		return
	}

	block, _, _, err := buildCoachingContext(db, in.UserID)
	if gorm.IsRecordNotFoundError(err) {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	logReplyMessage(db, in, models.MESSAGE_ROLE_USER, in.Text)

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	degraded := false
	reply, err := tools.GenerateCoachReply(ctx, block, in.Text)
	if err != nil {
		log.Printf("reply: openai error (user=%d): %v", in.UserID, err)
		reply = tracker.AckFallback
		degraded = true
	}

	logReplyMessage(db, in, models.MESSAGE_ROLE_ASSISTANT, reply)

	RespondSuccess(c, gin.H{"reply": reply, "degraded": degraded})
}

func logReplyMessage(db *gorm.DB, in replyInput, role, text string) {
	msg := models.Message{
		UserID:         in.UserID,
		ConversationID: in.ConversationID,
		Role:           role,
		Text:           text,
	}
	if err := db.Create(&msg).Error; err != nil {
		log.Printf("reply: message log error (user=%d): %v", in.UserID, err)
	}
}
