package domain

// Signup statuses. Each signup carries exactly one; these are also the seven
// coarse categories used by the timestamp-retention rule. StatusNone is the
// category of an absent ledger row, never a stored value.
const (
	StatusNone        = ""
	StatusCompetitive = "competitive"
	StatusCasual      = "casual"
	StatusFlexible    = "flexible"
	StatusTentative   = "tentative"
	StatusMinutemage  = "minutemage"
	StatusDecline     = "decline"
)

// PlayingStatuses is the derived "playing" set: statuses that count toward
// the confirmed player total.
var PlayingStatuses = []string{StatusCompetitive, StatusCasual, StatusFlexible}

// IsPlaying reports whether status is one of the playing sub-statuses.
func IsPlaying(status string) bool {
	switch status {
	case StatusCompetitive, StatusCasual, StatusFlexible:
		return true
	}
	return false
}

// ValidStatus reports whether status is a storable signup status.
func ValidStatus(status string) bool {
	switch status {
	case StatusCompetitive, StatusCasual, StatusFlexible,
		StatusTentative, StatusMinutemage, StatusDecline:
		return true
	}
	return false
}

// category is the index of a status in the retention table.
type category int

const (
	catNone category = iota
	catCompetitive
	catCasual
	catFlexible
	catTentative
	catMinutemage
	catDecline
	categoryCount
)

func categoryOf(status string) (category, bool) {
	switch status {
	case StatusNone:
		return catNone, true
	case StatusCompetitive:
		return catCompetitive, true
	case StatusCasual:
		return catCasual, true
	case StatusFlexible:
		return catFlexible, true
	case StatusTentative:
		return catTentative, true
	case StatusMinutemage:
		return catMinutemage, true
	case StatusDecline:
		return catDecline, true
	}
	return catNone, false
}
