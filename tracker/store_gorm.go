package tracker

import (
	"time"

	"stella/models"

	"github.com/jinzhu/gorm"
)

// GormStore implementa Store em cima do banco relacional do app.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateEvent(ev *models.ExceptionalEvent) error {
	return s.db.Create(ev).Error
}

func (s *GormStore) SaveEvent(ev *models.ExceptionalEvent) error {
	return s.db.Save(ev).Error
}

func (s *GormStore) FindOpenEventByTitle(userID int64, title string) (*models.ExceptionalEvent, error) {
	var ev models.ExceptionalEvent
	err := s.db.
		Where("user_id = ? AND title = ?", userID, title).
		Where("status in (?)", []string{models.EVENT_STATUS_ACTIVE, models.EVENT_STATUS_IMPROVING}).
		// desempate explícito: o mais recentemente mencionado vence
		Order("last_mentioned_at desc, id desc").
		First(&ev).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *GormStore) ListOpenEvents(userID int64, since time.Time) ([]models.ExceptionalEvent, error) {
	var events []models.ExceptionalEvent
	err := s.db.
		Where("user_id = ?", userID).
		Where("status in (?)", []string{models.EVENT_STATUS_ACTIVE, models.EVENT_STATUS_IMPROVING}).
		Where("created_at >= ?", since).
		Order("id asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *GormStore) AppendUpdate(up *models.EventUpdate) error {
	return s.db.Create(up).Error
}

func (s *GormStore) HabitIDsByNames(userID int64, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var ids []int64
	err := s.db.Model(&models.Habit{}).
		Where("user_id = ? AND name in (?)", userID, names).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
