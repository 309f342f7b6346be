package domain

// Stage is the lifecycle stage of an event. Stages are ordered; an event's
// stage only ever advances (persisted with GREATEST, never rewound). The
// reminder and tentative-ping steps are not stages but independent one-shot
// flags on the event, since both can be true at any stage from Posted on.
type Stage int

const (
	StageInvalid  Stage = 0
	StageCreated  Stage = 1
	StagePosted   Stage = 2
	StageLocked   Stage = 3
	StageFired    Stage = 4
	StageComplete Stage = 5
)

func (s Stage) String() string {
	switch s {
	case StageCreated:
		return "created"
	case StagePosted:
		return "posted"
	case StageLocked:
		return "locked"
	case StageFired:
		return "fired"
	case StageComplete:
		return "complete"
	}
	return "invalid"
}

// Active reports whether the event is in the window the scheduler cares
// about: publicly posted and not yet torn down.
func (s Stage) Active() bool {
	return s >= StagePosted && s < StageComplete
}
