package domain

import (
	"fmt"
	"time"
)

// retainTable decides, for a status change current→requested, whether the
// queue timestamp is retained (true) or reset to the time of the change
// (false). Rows are the current category, columns the requested one.
//
// Moving between the three playing sub-statuses keeps your place in line;
// entering or leaving tentative, minutemage or decline resets it. Re-clicking
// the current status is a no-op for ordering. The none column is unreachable:
// a request can never be for the absent status.
var retainTable = [categoryCount][categoryCount]bool{
	//                    none   comp   casual flex   tent   mm     decl
	catNone:        {false, false, false, false, false, false, false},
	catCompetitive: {false, true, true, true, false, false, false},
	catCasual:      {false, true, true, true, false, false, false},
	catFlexible:    {false, true, true, true, false, false, false},
	catTentative:   {false, false, false, false, true, false, false},
	catMinutemage:  {false, false, false, false, false, true, false},
	catDecline:     {false, false, false, false, false, false, true},
}

// ResolveTimestamp applies the retention table to a status change.
// current may be StatusNone (absent ledger row); requested must be a real
// storable status — anything else is a logic error, not user input.
func ResolveTimestamp(current, requested string, prev, now time.Time) (time.Time, error) {
	cur, ok := categoryOf(current)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: current %q", ErrUnknownStatus, current)
	}
	req, ok := categoryOf(requested)
	if !ok || req == catNone {
		return time.Time{}, fmt.Errorf("%w: requested %q", ErrUnknownStatus, requested)
	}
	if retainTable[cur][req] && !prev.IsZero() {
		return prev, nil
	}
	return now, nil
}
