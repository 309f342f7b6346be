package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftbot/internal/domain/entities"
)

func postedEvent(start time.Time) *entities.Event {
	return &entities.Event{
		GuildID:   "guild",
		Code:      "weekly",
		Stage:     int(StagePosted),
		StartTime: start,
	}
}

func TestDueTransitionsReminderWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	e := postedEvent(now.Add(90 * time.Minute))
	assert.Empty(t, DueTransitions(e, now), "outside the reminder lead nothing is due")

	e = postedEvent(now.Add(30 * time.Minute))
	assert.Equal(t, []Transition{TransitionReminder}, DueTransitions(e, now))

	// Once the flag is set the reminder never fires again.
	e.ReminderSentAt = now
	assert.Empty(t, DueTransitions(e, now))
}

func TestDueTransitionsOrderAfterDowntime(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	// Scheduler was down from before the reminder window until well past the
	// event: every step is due, in execution order, within one sweep.
	e := postedEvent(now.Add(-6 * time.Hour))
	got := DueTransitions(e, now)
	assert.Equal(t, []Transition{
		TransitionReminder,
		TransitionTentatives,
		TransitionLock,
		TransitionComplete,
	}, got)
}

func TestDueTransitionsGuards(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	start := now.Add(-time.Minute)

	e := postedEvent(start)
	e.ReminderSentAt = now.Add(-2 * time.Hour)
	e.TentativesPingedAt = now.Add(-time.Hour)
	require.Equal(t, []Transition{TransitionLock}, DueTransitions(e, now))

	e.Stage = int(StageLocked)
	assert.Empty(t, DueTransitions(e, now), "locked event before teardown window")

	e.StartTime = now.Add(-DeleteLead - time.Minute)
	assert.Equal(t, []Transition{TransitionComplete}, DueTransitions(e, now))

	e.Stage = int(StageComplete)
	assert.Empty(t, DueTransitions(e, now), "complete events are inert")
}

func TestDueTransitionsUnpostedEvent(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	e := postedEvent(now.Add(-time.Hour))
	e.Stage = int(StageCreated)
	assert.Empty(t, DueTransitions(e, now), "drafts not yet posted are ignored")

	e = postedEvent(time.Time{})
	assert.Empty(t, DueTransitions(e, now), "no start time, nothing to schedule")
}

func TestChooseMinutemage(t *testing.T) {
	assert.Empty(t, ChooseMinutemage(nil, func(int) int { return 0 }))

	volunteers := []entities.Signup{
		{UserID: "a"}, {UserID: "b"}, {UserID: "c"},
	}
	picked := ChooseMinutemage(volunteers, func(n int) int {
		require.Equal(t, 3, n)
		return 1
	})
	assert.Equal(t, "b", picked)
}
