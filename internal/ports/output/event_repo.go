package output

import (
	"context"
	"time"

	"draftbot/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByCode(ctx context.Context, guildID, code string) (*entities.Event, error)
	FindBySignupMessageID(ctx context.Context, messageID string) (*entities.Event, error)
	// FindNextUpcoming returns the earliest-starting active event
	// (Posted <= stage < Complete), or ErrEventNotFound.
	FindNextUpcoming(ctx context.Context, guildID string, now time.Time) (*entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error

	// AdvanceStage raises the stage monotonically (GREATEST in SQL); a lower
	// value than the stored one is a no-op, never a rewind.
	AdvanceStage(ctx context.Context, guildID, code string, stage int) error
	// MarkReminderSent / MarkTentativesPinged set the one-shot flag and its
	// message handle if the flag is still unset (COALESCE in SQL).
	MarkReminderSent(ctx context.Context, guildID, code, messageID string, at time.Time) error
	MarkTentativesPinged(ctx context.Context, guildID, code, messageID string, at time.Time) error
	SetMessageIDs(ctx context.Context, guildID, code, channelID, detailsID, signupID string) error
	ClearMessageIDs(ctx context.Context, guildID, code string) error
	Delete(ctx context.Context, guildID, code string) error
}
