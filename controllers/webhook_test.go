package controllers

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stella/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLivekitKey    = "APIstellatest"
	testLivekitSecret = "segredo-de-teste-bem-comprido"
)

// signWebhook monta o JWT que a plataforma manda no Authorization:
// assinado com o api secret, com o hash sha256 do corpo como claim.
func signWebhook(t *testing.T, secret string, body []byte) string {
	t.Helper()
	sum := sha256.Sum256(body)
	claims := jwt.MapClaims{
		"iss":    testLivekitKey,
		"nbf":    time.Now().Add(-time.Minute).Unix(),
		"exp":    time.Now().Add(time.Minute).Unix(),
		"sha256": base64.StdEncoding.EncodeToString(sum[:]),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func postWebhook(r *gin.Engine, body []byte, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/livekit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func webhookBody(t *testing.T, event, roomName, identity string) []byte {
	t.Helper()
	payload := gin.H{
		"event": event,
		"room":  gin.H{"sid": "RM_test", "name": roomName},
	}
	if identity != "" {
		payload["participant"] = gin.H{"identity": identity}
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return b
}

func TestLivekitWebhook(t *testing.T) {
	t.Setenv("LIVEKIT_URL", "wss://stella.livekit.cloud")
	t.Setenv("LIVEKIT_API_KEY", testLivekitKey)
	t.Setenv("LIVEKIT_API_SECRET", testLivekitSecret)

	r, db := setupAPI(t)
	r.POST("/api/webhook/livekit", LivekitWebhook)

	user := seedUser(t, db, "+5511987654321")
	scheduled := time.Now()
	job := models.CallJob{
		UserID:         user.ID,
		Phone:          user.Phone,
		RoomName:       "outbound-1234567890",
		ConversationID: "conv-webhook",
		Status:         models.CALL_STATUS_DISPATCHED,
		ScheduledAt:    &scheduled,
	}
	require.NoError(t, db.Create(&job).Error)

	t.Run("sem token é 403", func(t *testing.T) {
		body := webhookBody(t, "room_finished", job.RoomName, "")
		w := postWebhook(r, body, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("hash do corpo errado é 403", func(t *testing.T) {
		body := webhookBody(t, "room_finished", job.RoomName, "")
		token := signWebhook(t, testLivekitSecret, []byte("outro corpo"))
		w := postWebhook(r, body, token)
		assert.Equal(t, http.StatusForbidden, w.Code)

		// nada pode ter mudado no job
		var got models.CallJob
		require.NoError(t, db.First(&got, job.ID).Error)
		assert.Equal(t, models.CALL_STATUS_DISPATCHED, got.Status)
	})

	t.Run("token assinado com secret errado é 403", func(t *testing.T) {
		body := webhookBody(t, "room_finished", job.RoomName, "")
		token := signWebhook(t, "secret-de-outra-plataforma", body)
		w := postWebhook(r, body, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("participant_joined sip loga atendimento", func(t *testing.T) {
		body := webhookBody(t, "participant_joined", job.RoomName, "sip_+5511987654321")
		token := signWebhook(t, testLivekitSecret, body)
		w := postWebhook(r, body, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "EVENT_RECEIVED", w.Body.String())

		var msg models.Message
		require.NoError(t, db.Where("conversation_id = ?", job.ConversationID).First(&msg).Error)
		assert.Equal(t, models.MESSAGE_ROLE_SYSTEM, msg.Role)
		assert.Equal(t, "usuário atendeu a ligação", msg.Text)

		// atender não mexe no status; só room_finished encerra
		var got models.CallJob
		require.NoError(t, db.First(&got, job.ID).Error)
		assert.Equal(t, models.CALL_STATUS_DISPATCHED, got.Status)
	})

	t.Run("room_finished encerra o job", func(t *testing.T) {
		body := webhookBody(t, "room_finished", job.RoomName, "")
		token := signWebhook(t, testLivekitSecret, body)
		w := postWebhook(r, body, token)
		require.Equal(t, http.StatusOK, w.Code)

		var got models.CallJob
		require.NoError(t, db.First(&got, job.ID).Error)
		assert.Equal(t, models.CALL_STATUS_FINISHED, got.Status)
		assert.NotNil(t, got.FinishedAt)
	})

	t.Run("sala desconhecida é ignorada", func(t *testing.T) {
		body := webhookBody(t, "room_finished", "console-de-teste", "")
		token := signWebhook(t, testLivekitSecret, body)
		w := postWebhook(r, body, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
