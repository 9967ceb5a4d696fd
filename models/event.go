package models

import (
	"encoding/json"
	"time"
)

/************************************************
/**** MARK: EVENT STATUS ****/
/************************************************/
const EVENT_STATUS_ACTIVE = "active"
const EVENT_STATUS_IMPROVING = "improving"
const EVENT_STATUS_RESOLVED = "resolved"

/************************************************
/**** MARK: EVENT TYPES ****/
/************************************************/
const EVENT_TYPE_INJURY = "injury"
const EVENT_TYPE_ILLNESS = "illness"
const EVENT_TYPE_TRAVEL = "travel"
const EVENT_TYPE_WORK_STRESS = "work_stress"
const EVENT_TYPE_FAMILY = "family_event"
const EVENT_TYPE_OTHER = "other"

/************************************************
/**** MARK: SEVERITY / DECAY ****/
/************************************************/
const EVENT_SEVERITY_LOW = "low"
const EVENT_SEVERITY_MEDIUM = "medium"
const EVENT_SEVERITY_HIGH = "high"

const EVENT_DECAY_FAST = "fast"
const EVENT_DECAY_MEDIUM = "medium"
const EVENT_DECAY_SLOW = "slow"

// ExceptionalEvent representa uma disrupção temporária reportada em conversa
// (lesão, viagem, estresse...). O Title funciona como chave natural entre os
// eventos ativos/melhorando de um usuário. ImpactLevel é o impacto BASE antes
// do decaimento; o impacto corrente é sempre uma projeção de leitura
// (tracker.CurrentImpact), nunca gravado de volta.
type ExceptionalEvent struct {
	ID              int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID          int64      `gorm:"not null;index" json:"user_id"`
	EventType       string     `gorm:"not null" json:"event_type" form:"event_type"`
	Title           string     `gorm:"not null;index" json:"title" form:"title"`
	Description     string     `gorm:"type:text" json:"description" form:"description"`
	Severity        string     `gorm:"not null" json:"severity" form:"severity"`
	ImpactLevel     float64    `gorm:"not null;default:0" json:"impact_level"`
	DecayRate       string     `gorm:"not null;default:'medium'" json:"decay_rate"`
	Status          string     `gorm:"not null;default:'active';index" json:"status"`
	AffectedHabits  string     `gorm:"type:text" json:"affected_habits"` // JSON array de habit ids (ex: [3,7])
	MentionCount    int        `gorm:"not null;default:1" json:"mention_count"`
	CreatedAt       *time.Time `json:"created_at"`
	LastMentionedAt *time.Time `json:"last_mentioned_at"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// HabitIDs decodifica AffectedHabits; lista vazia em caso de conteúdo inválido.
func (e ExceptionalEvent) HabitIDs() []int64 {
	if e.AffectedHabits == "" {
		return nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(e.AffectedHabits), &ids); err != nil {
		return nil
	}
	return ids
}

func (e *ExceptionalEvent) SetHabitIDs(ids []int64) {
	if len(ids) == 0 {
		e.AffectedHabits = ""
		return
	}
	b, err := json.Marshal(ids)
	if err != nil {
		e.AffectedHabits = ""
		return
	}
	e.AffectedHabits = string(b)
}

// EventUpdate é uma entrada imutável do histórico de um evento
// (a "sub-coleção" updates): quem mencionou, o que mudou e quando.
type EventUpdate struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	EventID        int64      `gorm:"not null;index" json:"event_id"`
	ConversationID string     `gorm:"index" json:"conversation_id"`
	Note           string     `gorm:"type:text" json:"note"`
	ImpactChange   float64    `gorm:"not null;default:0" json:"impact_change"`
	CreatedAt      *time.Time `json:"created_at"`
}
