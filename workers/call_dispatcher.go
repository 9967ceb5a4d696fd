package workers

import (
	"context"
	"log"
	"time"

	"stella/config"
	"stella/models"
	"stella/monitoring"
	"stella/tools"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// StartCallDispatcher starts a loop that dispatches pending call jobs whose
// ScheduledAt <= now via the voice platform's agent dispatch API.
func StartCallDispatcher(db *gorm.DB, cfg config.Configuration) {
	go func() {
		interval := time.Duration(cfg.Agent.DispatchIntervalSec) * time.Second
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			processDueCalls(db, cfg)
		}
	}()
}

func processDueCalls(db *gorm.DB, cfg config.Configuration) {
	now := time.Now()

	var jobs []models.CallJob
	if err := db.
		Where("status = ?", models.CALL_STATUS_PENDING).
		Where("scheduled_at IS NOT NULL AND scheduled_at <= ?", now).
		Order("scheduled_at asc, id asc").
		Limit(cfg.Agent.DispatchBatchSize).
		Find(&jobs).Error; err != nil {
		log.Printf("call worker: query error: %v", err)
		return
	}

	for _, job := range jobs {
		// lock otimista: só despacha se conseguir mudar status
		res := db.Model(&models.CallJob{}).
			Where("id = ? AND status = ?", job.ID, models.CALL_STATUS_PENDING).
			Update("status", models.CALL_STATUS_DISPATCHING)
		if res.Error != nil || res.RowsAffected == 0 {
			continue
		}

		go handleCall(db, cfg, job.ID)
	}
}

func handleCall(db *gorm.DB, cfg config.Configuration, jobID int64) {
	var job models.CallJob
	if err := db.First(&job, jobID).Error; err != nil {
		return
	}
	if job.Status != models.CALL_STATUS_DISPATCHING {
		return
	}

	lk, err := tools.LiveKitFromEnv()
	if err != nil {
		failCall(db, job.ID, "livekit não configurado: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// sala única por ligação; conversation_id amarra transcript e histórico
	roomName := "outbound-" + tools.RandomNumbers(10)
	conversationID := uuid.New().String()

	metadata := map[string]any{
		"phone_number":    job.Phone,
		"user_id":         job.UserID,
		"conversation_id": conversationID,
	}

	dispatchID, err := lk.CreateAgentDispatch(ctx, roomName, cfg.Agent.Name, metadata)
	if err != nil {
		log.Printf("call worker: dispatch error (job=%d): %v", job.ID, err)
		failCall(db, job.ID, err.Error())
		return
	}

	t := time.Now()
	if err := db.Model(&models.CallJob{}).Where("id = ?", job.ID).Updates(map[string]any{
		"status":          models.CALL_STATUS_DISPATCHED,
		"room_name":       roomName,
		"conversation_id": conversationID,
		"dispatch_id":     dispatchID,
		"agent_name":      cfg.Agent.Name,
		"dispatched_at":   &t,
	}).Error; err != nil {
		log.Printf("call worker: update error (job=%d): %v", job.ID, err)
		return
	}

	monitoring.CallsDispatched.WithLabelValues("dispatched").Inc()
	log.Printf("call worker: dispatched job=%d room=%s agent=%s", job.ID, roomName, cfg.Agent.Name)
}

func failCall(db *gorm.DB, jobID int64, reason string) {
	t := time.Now()
	if err := db.Model(&models.CallJob{}).Where("id = ?", jobID).Updates(map[string]any{
		"status":      models.CALL_STATUS_FAILED,
		"fail_reason": reason,
		"finished_at": &t,
	}).Error; err != nil {
		log.Printf("call worker: fail update error (job=%d): %v", jobID, err)
	}
	monitoring.CallsDispatched.WithLabelValues("failed").Inc()
}
