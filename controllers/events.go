package controllers

import (
	"log"
	"net/http"
	"strings"

	dbpkg "stella/db"
	"stella/monitoring"
	"stella/tracker"

	"github.com/gin-gonic/gin"
)

func trackerInstance(c *gin.Context) (*tracker.Tracker, bool) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return nil, false
	}
	return tracker.New(tracker.NewGormStore(db)), true
}

type reportEventInput struct {
	UserID         int64    `json:"user_id" form:"user_id"`
	EventType      string   `json:"event_type" form:"event_type"`
	Title          string   `json:"title" form:"title"`
	Description    string   `json:"description" form:"description"`
	Severity       string   `json:"severity" form:"severity"`
	AffectedHabits []string `json:"affected_habit_names" form:"affected_habit_names"`
	ConversationID string   `json:"conversation_id" form:"conversation_id"`
}

// POST /api/agent/events
// Primeiro reporte de uma situação excepcional. Falha de storage não derruba a
// conversa: logamos e devolvemos o ack genérico pro agente falar.
func ReportEvent(c *gin.Context) {
	tr, ok := trackerInstance(c)
	if !ok {
		return
	}

	var in reportEventInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.UserID <= 0 || in.Title == "" {
		RespondError(c, "user_id e title são obrigatórios", http.StatusBadRequest)
		return
	}

	ev, err := tr.Create(in.UserID, in.EventType, in.Title, in.Description, in.Severity, in.AffectedHabits)
	if err != nil {
		log.Printf("events: create error (user=%d title=%q): %v", in.UserID, in.Title, err)
		monitoring.TrackerOps.WithLabelValues("create", "degraded").Inc()
		RespondSuccess(c, gin.H{"ack": tracker.AckFallback, "degraded": true})
		return
	}

	monitoring.TrackerOps.WithLabelValues("create", "created").Inc()
	RespondSuccess(c, gin.H{
		"event": ev,
		"ack":   "Entendi, anotei aqui. Vou levar isso em conta no seu acompanhamento, tá?",
	})
}

type updateEventInput struct {
	UserID         int64  `json:"user_id" form:"user_id"`
	Title          string `json:"title" form:"title"`
	Feeling        string `json:"feeling" form:"feeling"`
	ProgressNote   string `json:"progress_note" form:"progress_note"`
	ConversationID string `json:"conversation_id" form:"conversation_id"`
}

// PUT /api/agent/events
// Reporte de progresso sobre um evento já registrado, referenciado por título.
// "not_found" volta como desfecho normal (o agente decide se cria um novo).
func UpdateEventProgress(c *gin.Context) {
	tr, ok := trackerInstance(c)
	if !ok {
		return
	}

	var in updateEventInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.UserID <= 0 || in.Title == "" {
		RespondError(c, "user_id e title são obrigatórios", http.StatusBadRequest)
		return
	}

	res, err := tr.Update(in.UserID, in.Title, in.ProgressNote, in.Feeling, in.ConversationID)
	if err != nil {
		log.Printf("events: update error (user=%d title=%q): %v", in.UserID, in.Title, err)
		monitoring.TrackerOps.WithLabelValues("update", "degraded").Inc()
		RespondSuccess(c, gin.H{"ack": tracker.AckFallback, "degraded": true})
		return
	}

	monitoring.TrackerOps.WithLabelValues("update", res.Outcome).Inc()
	RespondSuccess(c, gin.H{"result": res})
}

// GET /api/agent/events?user_id=&lookback_days=
// Eventos abertos com impacto corrente acima do limiar de visibilidade.
func GetActiveEvents(c *gin.Context) {
	tr, ok := trackerInstance(c)
	if !ok {
		return
	}

	userID, ok := QueryUserID(c)
	if !ok {
		return
	}
	lookback := QueryIntDefault(c, "lookback_days", tracker.DefaultLookbackDays)

	events, err := tr.ListActive(userID, lookback)
	if err != nil {
		// degrada pra lista vazia: melhor uma conversa sem contexto que nenhuma
		log.Printf("events: list error (user=%d): %v", userID, err)
		monitoring.TrackerOps.WithLabelValues("list", "degraded").Inc()
		RespondSuccess(c, gin.H{"events": []tracker.ActiveEvent{}, "degraded": true})
		return
	}

	monitoring.TrackerOps.WithLabelValues("list", "ok").Inc()
	RespondSuccess(c, gin.H{"events": events})
}
