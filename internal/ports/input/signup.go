package input

import (
	"context"
	"time"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
)

// StatusChangeResult is what a reconciled status change produced.
type StatusChangeResult struct {
	Signup *entities.Signup
	// LateMinutemage is set when someone volunteered as minutemage after the
	// event already started; the caller alerts the host channel.
	LateMinutemage bool
}

type SignupUseCase interface {
	ApplyStatusChange(ctx context.Context, guildID, code, userID, displayName, requested string, now time.Time) (*StatusChangeResult, error)
	RemoveParticipant(ctx context.Context, guildID, code, userID string, noshow bool) (*entities.Signup, error)
	ListSignups(ctx context.Context, guildID, code string) ([]entities.Signup, error)
	// ConfirmedPlaying returns non-removed signups in a playing status,
	// signup order preserved.
	ConfirmedPlaying(ctx context.Context, guildID, code string) ([]entities.Signup, error)
	// Minutemages returns non-removed minutemage volunteers.
	Minutemages(ctx context.Context, guildID, code string) ([]entities.Signup, error)
}

type PodUseCase interface {
	// AllocatePods gates the roster, builds the pods and advances the event
	// to Fired. hosts marks users holding the host role. Fails with
	// ErrEventNotStarted before the event's start time.
	AllocatePods(ctx context.Context, guildID, code string, hosts map[string]bool, seed int64, now time.Time) ([]domain.Pod, error)
}
