package controllers

import (
	"log"
	"net/http"
	"time"

	dbpkg "stella/db"
	"stella/models"
	"stella/tools"

	"github.com/gin-gonic/gin"
)

type createCallInput struct {
	UserID      int64      `json:"user_id" form:"user_id"`
	Phone       string     `json:"phone" form:"phone"`
	ScheduledAt *time.Time `json:"scheduled_at" form:"scheduled_at"`
}

// POST /api/calls
// Agenda (ou dispara já, se scheduled_at vier vazio) uma ligação de coaching.
// Quem liga de fato é o worker; aqui só entra o job na fila.
func CreateCall(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in createCallInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var user models.User
	switch {
	case in.UserID > 0:
		if err := db.First(&user, in.UserID).Error; err != nil {
			RespondError(c, "usuário não encontrado", http.StatusNotFound)
			return
		}
	case in.Phone != "":
		phone, err := tools.NormalizePhone(in.Phone)
		if err != nil {
			RespondError(c, "telefone inválido: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := db.Where("phone = ?", phone).First(&user).Error; err != nil {
			RespondError(c, "usuário não encontrado", http.StatusNotFound)
			return
		}
	default:
		RespondError(c, "user_id ou phone é obrigatório", http.StatusBadRequest)
		return
	}

	if user.Status != models.USER_STATUS_ACTIVE {
		RespondError(c, "usuário não está ativo", http.StatusForbidden)
		return
	}

	scheduled := time.Now()
	if in.ScheduledAt != nil {
		scheduled = *in.ScheduledAt
	}

	job := models.CallJob{
		UserID:      user.ID,
		Phone:       user.Phone,
		Status:      models.CALL_STATUS_PENDING,
		ScheduledAt: &scheduled,
	}
	if err := db.Create(&job).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"call": job})
}

// GET /api/calls
func GetCalls(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var jobs []models.CallJob
	if err := db.Order("id desc").Limit(200).Find(&jobs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"calls": jobs})
}

// GET /api/calls/:id
func GetCallByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var job models.CallJob
	if err := db.First(&job, id).Error; err != nil {
		RespondError(c, "call não encontrada", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"call": job})
}

// GET /api/agent/status
// Estado da plataforma de voz: salas ativas e fila de ligações.
func AgentStatus(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var pending, dispatched int64
	db.Model(&models.CallJob{}).Where("status = ?", models.CALL_STATUS_PENDING).Count(&pending)
	db.Model(&models.CallJob{}).Where("status = ?", models.CALL_STATUS_DISPATCHED).Count(&dispatched)

	status := gin.H{
		"pending_calls":    pending,
		"dispatched_calls": dispatched,
	}

	lk, err := tools.LiveKitFromEnv()
	if err != nil {
		status["platform_reachable"] = false
		status["platform_error"] = err.Error()
		RespondSuccess(c, status)
		return
	}

	rooms, err := lk.ListRooms(c.Request.Context())
	if err != nil {
		log.Printf("calls: list rooms error: %v", err)
		status["platform_reachable"] = false
		status["platform_error"] = err.Error()
		RespondSuccess(c, status)
		return
	}

	status["platform_reachable"] = true
	status["active_rooms"] = rooms
	RespondSuccess(c, status)
}
