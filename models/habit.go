package models

import "time"

/************************************************
/**** MARK: HABIT STATUS ****/
/************************************************/
const HABIT_STATUS_ACTIVE = "active"
const HABIT_STATUS_PAUSED = "paused"
const HABIT_STATUS_ARCHIVED = "archived"

// Habit representa uma meta de mudança de comportamento declarada pelo usuário.
// Regra: um usuário só pode ter 1 Habit por nome (unique(user_id, name)) -
// o nome é a chave de lookup usada pelo tracker de eventos excepcionais.
type Habit struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID      int64      `gorm:"not null;index;unique_index:ux_user_habit" json:"user_id"`
	Name        string     `gorm:"not null;unique_index:ux_user_habit" json:"name" form:"name"`
	Description string     `gorm:"type:text" json:"description" form:"description"`
	Frequency   string     `gorm:"default:'daily'" json:"frequency" form:"frequency"` // ex: daily, weekly
	Status      string     `gorm:"not null;default:'active';index" json:"status" form:"status"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
