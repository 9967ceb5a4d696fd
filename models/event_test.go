package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHabitIDsRoundTrip(t *testing.T) {
	var ev ExceptionalEvent
	ev.SetHabitIDs([]int64{3, 7, 11})
	assert.Equal(t, "[3,7,11]", ev.AffectedHabits)
	assert.Equal(t, []int64{3, 7, 11}, ev.HabitIDs())
}

func TestHabitIDsEmpty(t *testing.T) {
	var ev ExceptionalEvent
	ev.SetHabitIDs(nil)
	assert.Equal(t, "", ev.AffectedHabits)
	assert.Nil(t, ev.HabitIDs())
}

func TestHabitIDsInvalidJSON(t *testing.T) {
	ev := ExceptionalEvent{AffectedHabits: "corrida,leitura"}
	assert.Nil(t, ev.HabitIDs())
}
