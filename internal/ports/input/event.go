package input

import (
	"context"
	"time"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
)

type EventUseCase interface {
	CreateEvent(ctx context.Context, event *entities.Event) error
	GetEvent(ctx context.Context, guildID, code string) (*entities.Event, error)
	GetEventBySignupMessageID(ctx context.Context, messageID string) (*entities.Event, error)
	UpdateEvent(ctx context.Context, event *entities.Event) error
	FindNextUpcoming(ctx context.Context, guildID string, now time.Time) (*entities.Event, error)

	// MarkPosted records the public post handles and advances the stage to
	// Posted. Fails with ErrEventAlreadyPosted when handles are present.
	MarkPosted(ctx context.Context, guildID, code, channelID, detailsID, signupID string) error
	// ClearPosts drops all presentation handles. The stage is untouched:
	// lifecycle never rewinds, but posts can be torn down and recreated.
	ClearPosts(ctx context.Context, guildID, code string) error
	SetReminderMessage(ctx context.Context, guildID, code, messageID string, at time.Time) error
	SetTentativePingMessage(ctx context.Context, guildID, code, messageID string, at time.Time) error
	AdvanceStage(ctx context.Context, guildID, code string, stage domain.Stage) error
	PurgeEvent(ctx context.Context, guildID, code string) error
}
