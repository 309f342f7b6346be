package domain

import (
	"time"

	"draftbot/internal/domain/entities"
)

// Lifecycle lead times, measured against the event start.
const (
	ReminderLead  = time.Hour        // reminder post goes out
	TentativeLead = 10 * time.Minute // tentatives get pinged, button locks
	DeleteLead    = 5 * time.Hour    // public posts are torn down
)

// Transition is a time-driven lifecycle step the scheduler must perform.
type Transition int

const (
	TransitionReminder Transition = iota + 1
	TransitionTentatives
	TransitionLock
	TransitionComplete
)

func (t Transition) String() string {
	switch t {
	case TransitionReminder:
		return "reminder"
	case TransitionTentatives:
		return "tentatives"
	case TransitionLock:
		return "lock"
	case TransitionComplete:
		return "complete"
	}
	return "unknown"
}

// DueTransitions returns, in execution order, every transition whose guard
// holds for the event at the given instant. Each guard checks that the step
// has not already run (flag set / stage reached), so an event on which the
// scheduler already acted yields nothing until the clock advances — and after
// downtime several transitions can be due in the same sweep.
func DueTransitions(e *entities.Event, now time.Time) []Transition {
	stage := Stage(e.Stage)
	if !stage.Active() || e.StartTime.IsZero() {
		return nil
	}
	var due []Transition
	until := e.StartTime.Sub(now)
	if e.ReminderSentAt.IsZero() && until <= ReminderLead {
		due = append(due, TransitionReminder)
	}
	if e.TentativesPingedAt.IsZero() && until <= TentativeLead {
		due = append(due, TransitionTentatives)
	}
	if stage < StageLocked && !now.Before(e.StartTime) {
		due = append(due, TransitionLock)
	}
	if stage < StageComplete && now.Sub(e.StartTime) > DeleteLead {
		due = append(due, TransitionComplete)
	}
	return due
}

// ChooseMinutemage picks the volunteer to ping when the playing count is odd
// at lock time. Returns "" when there are no volunteers, in which case the
// caller falls back to broadcasting to the minutemage role.
func ChooseMinutemage(volunteers []entities.Signup, intn func(int) int) string {
	if len(volunteers) == 0 {
		return ""
	}
	return volunteers[intn(len(volunteers))].UserID
}
