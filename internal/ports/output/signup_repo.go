package output

import (
	"context"

	"draftbot/internal/domain/entities"
)

type SignupRepository interface {
	// Upsert writes the full reconciled row atomically (insert or update on
	// the (guild, event, user) key).
	Upsert(ctx context.Context, signup *entities.Signup) error
	Find(ctx context.Context, guildID, code, userID string) (*entities.Signup, error)
	// FindByEvent returns all signups for the event ordered by signup
	// timestamp ascending.
	FindByEvent(ctx context.Context, guildID, code string) ([]entities.Signup, error)
	// MarkRemoved sets the removed (and optionally no-show) flag, leaving
	// status and timestamp intact. Idempotent.
	MarkRemoved(ctx context.Context, guildID, code, userID string, noshow bool) error
	DeleteByEvent(ctx context.Context, guildID, code string) error
}

type LeagueRecordRepository interface {
	UpsertBatch(ctx context.Context, guildID, batchID string, records []entities.LeagueRecord) error
	FindByGuild(ctx context.Context, guildID string) (map[string]entities.LeagueRecord, error)
}
