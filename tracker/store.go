package tracker

import (
	"time"

	"stella/models"
)

// Store é a superfície de persistência que o tracker precisa.
// Injetado explicitamente: gorm em produção (GormStore), fake nos testes.
type Store interface {
	// CreateEvent persiste um evento novo e preenche o ID gerado.
	CreateEvent(ev *models.ExceptionalEvent) error

	// SaveEvent grava de volta um evento existente (read-modify-write).
	SaveEvent(ev *models.ExceptionalEvent) error

	// FindOpenEventByTitle busca o evento aberto (active/improving) mais
	// recente de um usuário com esse título exato. (nil, nil) quando não há -
	// "não encontrado" é resultado, não erro.
	FindOpenEventByTitle(userID int64, title string) (*models.ExceptionalEvent, error)

	// ListOpenEvents lista eventos abertos criados a partir de "since",
	// em ordem estável entre chamadas repetidas.
	ListOpenEvents(userID int64, since time.Time) ([]models.ExceptionalEvent, error)

	// AppendUpdate acrescenta uma entrada imutável ao histórico do evento.
	AppendUpdate(up *models.EventUpdate) error

	// HabitIDsByNames resolve nomes de hábito por igualdade exata.
	// Nomes sem correspondência são descartados em silêncio.
	HabitIDsByNames(userID int64, names []string) ([]int64, error)
}
