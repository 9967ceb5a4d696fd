package models

import "time"

/************************************************
/**** MARK: CALL STATUS ****/
/************************************************/
const CALL_STATUS_PENDING = "pending"
const CALL_STATUS_DISPATCHING = "dispatching"
const CALL_STATUS_DISPATCHED = "dispatched"
const CALL_STATUS_FINISHED = "finished"
const CALL_STATUS_FAILED = "failed"

// CallJob representa uma ligação outbound de coaching agendada.
// Entra como "pending" e é despachada pelo worker quando ScheduledAt <= now;
// o webhook da plataforma de voz fecha o ciclo (finished/failed).
type CallJob struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID         int64      `gorm:"not null;index" json:"user_id"`
	Phone          string     `gorm:"not null;index" json:"phone" form:"phone"`
	RoomName       string     `gorm:"index" json:"room_name"`
	ConversationID string     `gorm:"index" json:"conversation_id"`
	DispatchID     string     `gorm:"default:''" json:"dispatch_id"`
	AgentName      string     `gorm:"default:''" json:"agent_name"`
	Status         string     `gorm:"not null;default:'pending';index" json:"status"`
	FailReason     string     `gorm:"type:text" json:"fail_reason"`
	ScheduledAt    *time.Time `gorm:"index" json:"scheduled_at" form:"scheduled_at"`
	DispatchedAt   *time.Time `json:"dispatched_at"`
	FinishedAt     *time.Time `json:"finished_at"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
