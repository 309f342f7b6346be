package entities

import "time"

// Event is one scheduled occurrence of the league, identified by a short
// code (season/week/region/type) unique within a guild.
type Event struct {
	ID          uint
	GuildID     string
	Code        string
	Name        string
	Description string
	Format      string
	HostID      string

	StartTime time.Time
	Duration  time.Duration

	// Stage is the highest lifecycle stage reached; it only ever advances.
	// Numeric value of domain.Stage.
	Stage int

	// One-shot lifecycle flags, zero until the corresponding sweep action
	// has completed once.
	ReminderSentAt     time.Time
	TentativesPingedAt time.Time

	// Presentation handles. Empty = not posted. Clearing these tears the
	// public posts down without rewinding Stage.
	DetailsMessageID       string
	SignupMessageID        string
	ReminderMessageID      string
	TentativePingMessageID string
	ChannelID              string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPosted reports whether the public signup post currently exists.
func (e *Event) IsPosted() bool {
	return e.SignupMessageID != ""
}

// Started reports whether the event's start time has passed.
func (e *Event) Started(now time.Time) bool {
	return !e.StartTime.IsZero() && !now.Before(e.StartTime)
}
