package entities

import "time"

// Signup is a participant's current intent for a specific event.
// Identity is (GuildID, EventCode, UserID).
type Signup struct {
	ID        uint
	GuildID   string
	EventCode string
	UserID    string

	// Status is one of the domain signup statuses (competitive, casual,
	// flexible, tentative, minutemage, decline).
	Status string

	// Removed marks a host-initiated removal. The underlying Status is kept
	// for display/strikeout purposes; removed signups do not count as
	// confirmed players.
	Removed bool

	// NoShow is set when the host recorded the removal as a no-show.
	NoShow bool

	// SignedUpAt orders the queue ("first N get priority"). Switching among
	// the playing sub-statuses keeps it; crossing into a different coarse
	// category resets it. See domain.ResolveTimestamp.
	SignedUpAt time.Time

	// PreferredName is a display-name cache. It is only refreshed when the
	// participant next interacts, so it can go stale; that is accepted.
	PreferredName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
