package controllers

import (
	"net/http"
	"strings"

	dbpkg "stella/db"
	"stella/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type habitInput struct {
	UserID      int64  `json:"user_id" form:"user_id"`
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Frequency   string `json:"frequency" form:"frequency"`
}

// POST /api/agent/habits
// Upsert por (user_id, name): se o hábito já existe atualiza descrição e
// frequência (e reativa se estava pausado); senão cria.
func UpsertHabit(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in habitInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.UserID <= 0 || in.Name == "" {
		RespondError(c, "user_id e name são obrigatórios", http.StatusBadRequest)
		return
	}

	var habit models.Habit
	err := db.Where("user_id = ? AND name = ?", in.UserID, in.Name).First(&habit).Error
	switch {
	case err == nil:
		updates := map[string]any{"status": models.HABIT_STATUS_ACTIVE}
		if strings.TrimSpace(in.Description) != "" {
			updates["description"] = in.Description
		}
		if strings.TrimSpace(in.Frequency) != "" {
			updates["frequency"] = in.Frequency
		}
		if err := db.Model(&habit).Updates(updates).Error; err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		RespondSuccess(c, gin.H{"habit": habit, "created": false})

	case gorm.IsRecordNotFoundError(err):
		habit = models.Habit{
			UserID:      in.UserID,
			Name:        in.Name,
			Description: in.Description,
			Frequency:   in.Frequency,
			Status:      models.HABIT_STATUS_ACTIVE,
		}
		if habit.Frequency == "" {
			habit.Frequency = "daily"
		}
		if err := db.Create(&habit).Error; err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		RespondSuccess(c, gin.H{"habit": habit, "created": true})

	default:
		RespondError(c, err.Error(), http.StatusBadRequest)
	}
}

// GET /api/agent/habits?user_id=
func GetHabitsForUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	userID, ok := QueryUserID(c)
	if !ok {
		return
	}

	var habits []models.Habit
	if err := db.
		Where("user_id = ? AND status = ?", userID, models.HABIT_STATUS_ACTIVE).
		Order("id asc").
		Find(&habits).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"habits": habits})
}
