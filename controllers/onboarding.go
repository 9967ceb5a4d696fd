package controllers

import (
	"net/http"
	"time"

	dbpkg "stella/db"
	"stella/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type onboardingInput struct {
	UserID            int64  `json:"user_id" form:"user_id"`
	Goals             string `json:"goals" form:"goals"`
	CoachingStyle     string `json:"coaching_style" form:"coaching_style"`
	PreferredCallHour *int   `json:"preferred_call_hour" form:"preferred_call_hour"`
	Completed         *bool  `json:"completed" form:"completed"`
}

// POST /api/agent/onboarding
// Um registro por usuário, sempre upsertado. CompletedAt é setado na primeira
// vez que completed=true e nunca regride.
func UpsertOnboarding(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var in onboardingInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if in.UserID <= 0 {
		RespondError(c, "user_id é obrigatório", http.StatusBadRequest)
		return
	}

	var ob models.Onboarding
	err := db.Where("user_id = ?", in.UserID).First(&ob).Error
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	created := gorm.IsRecordNotFoundError(err)
	if created {
		ob = models.Onboarding{UserID: in.UserID}
	}

	if in.Goals != "" {
		ob.Goals = in.Goals
	}
	if in.CoachingStyle != "" {
		ob.CoachingStyle = in.CoachingStyle
	}
	if in.PreferredCallHour != nil {
		ob.PreferredCallHour = *in.PreferredCallHour
	}
	if in.Completed != nil && *in.Completed && !ob.Completed {
		ob.Completed = true
		now := time.Now()
		ob.CompletedAt = &now
	}

	if err := db.Save(&ob).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"onboarding": ob, "created": created})
}

// GET /api/agent/onboarding?user_id=
func GetOnboarding(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	userID, ok := QueryUserID(c)
	if !ok {
		return
	}

	var ob models.Onboarding
	if err := db.Where("user_id = ?", userID).First(&ob).Error; err != nil {
		RespondError(c, "onboarding não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"onboarding": ob})
}
