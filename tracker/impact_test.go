package tracker

import (
	"testing"
	"time"

	"stella/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(created time.Time, impact float64, decay string) *models.ExceptionalEvent {
	return &models.ExceptionalEvent{
		ImpactLevel: impact,
		DecayRate:   decay,
		CreatedAt:   &created,
	}
}

func TestCurrentImpactScenarioHighIllness(t *testing.T) {
	// high/illness: 0.9 com decay fast; após 7 dias, 0.9 * 0.9^7 ≈ 0.430
	created := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	ev := eventAt(created, 0.9, models.EVENT_DECAY_FAST)

	got := CurrentImpact(ev, created.AddDate(0, 0, 7))
	assert.InDelta(t, 0.4305, got, 0.0005)
}

func TestCurrentImpactMonotoneNonIncreasing(t *testing.T) {
	created := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for _, decay := range []string{models.EVENT_DECAY_FAST, models.EVENT_DECAY_MEDIUM, models.EVENT_DECAY_SLOW} {
		ev := eventAt(created, 0.8, decay)
		prev := CurrentImpact(ev, created)
		for d := 1; d <= 90; d++ {
			cur := CurrentImpact(ev, created.AddDate(0, 0, d))
			require.LessOrEqual(t, cur, prev, "decay=%s day=%d", decay, d)
			prev = cur
		}
	}
}

func TestCurrentImpactBounds(t *testing.T) {
	created := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for _, impact := range []float64{0, 0.05, 0.3, 0.6, 0.9, 1} {
		for _, days := range []int{0, 1, 7, 30, 365} {
			ev := eventAt(created, impact, models.EVENT_DECAY_MEDIUM)
			got := CurrentImpact(ev, created.AddDate(0, 0, days))
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	}
}

func TestCurrentImpactPartialDayFloors(t *testing.T) {
	// 23h depois ainda é "dia 0": nenhum decaimento aplicado
	created := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	ev := eventAt(created, 0.6, models.EVENT_DECAY_FAST)

	assert.Equal(t, 0.6, CurrentImpact(ev, created.Add(23*time.Hour)))
	assert.InDelta(t, 0.54, CurrentImpact(ev, created.Add(25*time.Hour)), 1e-9)
}

func TestCurrentImpactMissingCreatedAt(t *testing.T) {
	ev := &models.ExceptionalEvent{ImpactLevel: 0.45, DecayRate: models.EVENT_DECAY_FAST}
	assert.Equal(t, 0.45, CurrentImpact(ev, time.Now()))
}

func TestCurrentImpactUnknownDecayDefaultsToMedium(t *testing.T) {
	created := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	weird := eventAt(created, 0.6, "glacial")
	medium := eventAt(created, 0.6, models.EVENT_DECAY_MEDIUM)

	at := created.AddDate(0, 0, 10)
	assert.Equal(t, CurrentImpact(medium, at), CurrentImpact(weird, at))
}

func TestCurrentImpactClockSkew(t *testing.T) {
	// "now" antes da criação (skew de relógio): trata como dia 0
	created := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	ev := eventAt(created, 0.9, models.EVENT_DECAY_FAST)
	assert.Equal(t, 0.9, CurrentImpact(ev, created.Add(-2*time.Hour)))
}
