package models

import "time"

// Onboarding guarda o resultado da primeira conversa com o usuário.
// Regra: um usuário só pode ter 1 Onboarding (unique(user_id)) - o registro
// é sempre upsertado pelas chamadas seguintes, nunca duplicado.
type Onboarding struct {
	ID                int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID            int64      `gorm:"not null;unique_index" json:"user_id"`
	Goals             string     `gorm:"type:text" json:"goals" form:"goals"`
	CoachingStyle     string     `gorm:"default:'gentle'" json:"coaching_style" form:"coaching_style"` // ex: gentle, direct
	PreferredCallHour int        `gorm:"default:9" json:"preferred_call_hour" form:"preferred_call_hour"`
	Completed         bool       `gorm:"not null;default:false" json:"completed" form:"completed"`
	CompletedAt       *time.Time `json:"completed_at"`
	CreatedAt         *time.Time `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}
