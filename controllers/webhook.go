package controllers

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	dbpkg "stella/db"
	"stella/models"
	"stella/monitoring"
	"stella/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// Estrutura mínima do webhook da plataforma de voz.
type livekitWebhookPayload struct {
	Event string `json:"event"`
	Room  struct {
		Sid  string `json:"sid"`
		Name string `json:"name"`
	} `json:"room"`
	Participant struct {
		Identity string `json:"identity"`
	} `json:"participant"`
}

// verifyLivekitWebhook valida o JWT do header Authorization (assinado com o
// api secret da plataforma) e confere o hash sha256 do corpo.
func verifyLivekitWebhook(c *gin.Context, rawBody []byte) (bool, string) {
	lk, err := tools.LiveKitFromEnv()
	if err != nil {
		return false, err.Error()
	}

	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	raw = strings.TrimPrefix(raw, "Bearer ")
	if raw == "" {
		return false, "missing Authorization token"
	}

	claims, err := lk.VerifyWebhookToken(raw)
	if err != nil {
		return false, err.Error()
	}

	sum := sha256.Sum256(rawBody)
	expected := base64.StdEncoding.EncodeToString(sum[:])
	if hash, _ := claims["sha256"].(string); hash != expected {
		return false, "body hash mismatch"
	}

	return true, ""
}

// POST /api/webhook/livekit
// Fecha o ciclo das ligações: room_started/participant_joined/room_finished
// atualizam o CallJob correspondente (resolvido pelo nome da sala).
func LivekitWebhook(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		RespondError(c, "failed to read body", http.StatusBadRequest)
		return
	}

	if ok, reason := verifyLivekitWebhook(c, raw); !ok {
		RespondError(c, "forbidden: "+reason, http.StatusForbidden)
		return
	}

	var payload livekitWebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		RespondError(c, "invalid json", http.StatusBadRequest)
		return
	}

	monitoring.WebhookEvents.WithLabelValues(payload.Event).Inc()

	// responde rápido pra plataforma; processamento é best-effort
	c.String(http.StatusOK, "EVENT_RECEIVED")

	if payload.Room.Name == "" {
		return
	}

	var job models.CallJob
	if err := db.Where("room_name = ?", payload.Room.Name).First(&job).Error; err != nil {
		// sala que não é nossa (ex: console de teste): ignora
		return
	}

	now := time.Now()
	switch payload.Event {
	case "participant_joined":
		// perna SIP conectou: o usuário atendeu
		if strings.HasPrefix(payload.Participant.Identity, "sip_") {
			logCallMessage(db, job, "usuário atendeu a ligação")
		}

	case "room_finished":
		if err := db.Model(&models.CallJob{}).Where("id = ?", job.ID).Updates(map[string]any{
			"status":      models.CALL_STATUS_FINISHED,
			"finished_at": &now,
		}).Error; err != nil {
			// sem isso o job fica preso em dispatched pra sempre
			log.Printf("webhook: call update error (call=%d): %v", job.ID, err)
		}
		logCallMessage(db, job, "ligação encerrada")

	case "room_started":
		log.Printf("webhook: room started name=%s sid=%s", payload.Room.Name, payload.Room.Sid)
	}
}

func logCallMessage(db *gorm.DB, job models.CallJob, text string) {
	msg := models.Message{
		UserID:         job.UserID,
		ConversationID: job.ConversationID,
		Role:           models.MESSAGE_ROLE_SYSTEM,
		Text:           text,
	}
	if err := db.Create(&msg).Error; err != nil {
		log.Printf("webhook: log message error (call=%d): %v", job.ID, err)
	}
}
