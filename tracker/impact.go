package tracker

import (
	"math"
	"time"

	"stella/models"
)

// Fator diário de decaimento por velocidade.
// "fast" perde ~10% do impacto restante por dia; "slow", ~2%.
var decayFactor = map[string]float64{
	models.EVENT_DECAY_FAST:   0.10,
	models.EVENT_DECAY_MEDIUM: 0.05,
	models.EVENT_DECAY_SLOW:   0.02,
}

// CurrentImpact projeta o impacto corrente de um evento em "now".
// Função pura: nunca grava nada de volta no registro.
//
// O decaimento é medido desde CreatedAt (não desde LastMentionedAt):
// um evento recém-mencionado continua decaindo como se estivesse parado.
func CurrentImpact(ev *models.ExceptionalEvent, now time.Time) float64 {
	if ev.CreatedAt == nil {
		// registro sem origem temporal: devolve o impacto base como está
		return ev.ImpactLevel
	}

	days := int(now.Sub(*ev.CreatedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}

	factor, ok := decayFactor[ev.DecayRate]
	if !ok {
		factor = decayFactor[models.EVENT_DECAY_MEDIUM]
	}

	return clamp01(ev.ImpactLevel * math.Pow(1-factor, float64(days)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
