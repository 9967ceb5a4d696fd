package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	dbpkg "stella/db"
	"stella/models"
	"stella/tracker"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// GET /api/agent/context?user_id=
// Monta o bloco de contexto que o agente injeta no prompt da ligação:
// metas do onboarding, hábitos ativos e eventos excepcionais ainda visíveis
// (com o impacto corrente e os hábitos que eles suprimem).
func GetCoachingContext(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	userID, ok := QueryUserID(c)
	if !ok {
		return
	}

	block, habits, events, err := buildCoachingContext(db, userID)
	if gorm.IsRecordNotFoundError(err) {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{
		"context": block,
		"habits":  habits,
		"events":  events,
	})
}

// buildCoachingContext monta o bloco e devolve também os dados crus.
// Queries secundárias falhando não derrubam o bloco, só o deixam mais curto.
func buildCoachingContext(db *gorm.DB, userID int64) (string, []models.Habit, []tracker.ActiveEvent, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return "", nil, nil, err
	}

	var habits []models.Habit
	if err := db.
		Where("user_id = ? AND status = ?", userID, models.HABIT_STATUS_ACTIVE).
		Order("id asc").
		Find(&habits).Error; err != nil {
		log.Printf("context: habits query error (user=%d): %v", userID, err)
	}
	habitNames := map[int64]string{}
	for _, h := range habits {
		habitNames[h.ID] = h.Name
	}

	var ob models.Onboarding
	hasOnboarding := db.Where("user_id = ?", userID).First(&ob).Error == nil

	tr := tracker.New(tracker.NewGormStore(db))
	events, err := tr.ListActive(userID, tracker.DefaultLookbackDays)
	if err != nil {
		log.Printf("context: tracker list error (user=%d): %v", userID, err)
		events = nil
	}

	// Monta o bloco de texto (bem explícito e curto)
	var b strings.Builder
	fmt.Fprintf(&b, "Nome: %s\n", user.Name)
	if hasOnboarding && strings.TrimSpace(ob.Goals) != "" {
		fmt.Fprintf(&b, "Metas: %s\n", strings.TrimSpace(ob.Goals))
	}
	if hasOnboarding && ob.CoachingStyle != "" {
		fmt.Fprintf(&b, "Estilo de coaching preferido: %s\n", ob.CoachingStyle)
	}

	if len(habits) > 0 {
		b.WriteString("Hábitos em acompanhamento:\n")
		for _, h := range habits {
			line := "- " + h.Name
			if h.Frequency != "" {
				line += " (" + h.Frequency + ")"
			}
			b.WriteString(line + "\n")
		}
	}

	if len(events) > 0 {
		b.WriteString("Situações excepcionais em andamento (pegue leve nos hábitos afetados):\n")
		for _, ev := range events {
			fmt.Fprintf(&b, "- %s (impacto atual %.2f)", ev.Title, ev.CurrentImpact)
			var affected []string
			for _, id := range ev.HabitIDs() {
				if name, ok := habitNames[id]; ok {
					affected = append(affected, name)
				}
			}
			if len(affected) > 0 {
				fmt.Fprintf(&b, " (afeta: %s)", strings.Join(affected, ", "))
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimSpace(b.String()), habits, events, nil
}
