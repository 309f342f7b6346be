package application

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
	"draftbot/internal/ports/input"
	"draftbot/internal/ports/output"
)

// signupLockStripes bounds the keyed-mutex table for per-(event,user)
// serialization of the read-reconcile-write cycle. Concurrent clicks from
// different users hit different stripes and stay independent.
const signupLockStripes = 64

type SignupService struct {
	signupRepo output.SignupRepository
	eventRepo  output.EventRepository

	locks [signupLockStripes]sync.Mutex
}

func NewSignupService(signupRepo output.SignupRepository, eventRepo output.EventRepository) *SignupService {
	return &SignupService{signupRepo: signupRepo, eventRepo: eventRepo}
}

func (s *SignupService) lockFor(guildID, code, userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(guildID))
	h.Write([]byte{0})
	h.Write([]byte(code))
	h.Write([]byte{0})
	h.Write([]byte(userID))
	return &s.locks[h.Sum32()%signupLockStripes]
}

// ApplyStatusChange reconciles a participant-initiated status change:
// read the current row, resolve the queue timestamp through the category
// retention table, upsert. Runs under a per-key critical section so two
// clicks from the same user cannot interleave stale reads.
func (s *SignupService) ApplyStatusChange(ctx context.Context, guildID, code, userID, displayName, requested string, now time.Time) (*input.StatusChangeResult, error) {
	if !domain.ValidStatus(requested) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStatus, requested)
	}
	event, err := s.eventRepo.FindByCode(ctx, guildID, code)
	if err != nil {
		return nil, err
	}

	mu := s.lockFor(guildID, code, userID)
	mu.Lock()
	defer mu.Unlock()

	current := domain.StatusNone
	var prev time.Time
	existing, err := s.signupRepo.Find(ctx, guildID, code, userID)
	switch {
	case err == nil && existing != nil:
		current = existing.Status
		prev = existing.SignedUpAt
	case errors.Is(err, domain.ErrSignupNotFound):
		// first interaction, ledger row absent
	case err != nil:
		return nil, fmt.Errorf("read signup: %w", err)
	}

	ts, err := domain.ResolveTimestamp(current, requested, prev, now)
	if err != nil {
		return nil, err
	}

	signup := &entities.Signup{
		GuildID:       guildID,
		EventCode:     code,
		UserID:        userID,
		Status:        requested,
		SignedUpAt:    ts,
		PreferredName: displayName,
	}
	if existing != nil {
		signup.Removed = existing.Removed
		signup.NoShow = existing.NoShow
	}
	if err := s.signupRepo.Upsert(ctx, signup); err != nil {
		return nil, fmt.Errorf("upsert signup: %w", err)
	}

	return &input.StatusChangeResult{
		Signup:         signup,
		LateMinutemage: requested == domain.StatusMinutemage && event.Started(now),
	}, nil
}

// RemoveParticipant flags the signup as removed, keeping its status and
// timestamp for display/strikeout and possible later un-removal. Removing an
// already-removed participant changes nothing. Runs under the same per-key
// critical section as ApplyStatusChange: an in-flight status click must not
// write back a pre-removal copy of the flags.
func (s *SignupService) RemoveParticipant(ctx context.Context, guildID, code, userID string, noshow bool) (*entities.Signup, error) {
	mu := s.lockFor(guildID, code, userID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.signupRepo.Find(ctx, guildID, code, userID)
	if err != nil {
		return nil, err
	}
	if err := s.signupRepo.MarkRemoved(ctx, guildID, code, userID, noshow); err != nil {
		return nil, fmt.Errorf("mark removed: %w", err)
	}
	existing.Removed = true
	existing.NoShow = existing.NoShow || noshow
	return existing, nil
}

func (s *SignupService) ListSignups(ctx context.Context, guildID, code string) ([]entities.Signup, error) {
	return s.signupRepo.FindByEvent(ctx, guildID, code)
}

func (s *SignupService) ConfirmedPlaying(ctx context.Context, guildID, code string) ([]entities.Signup, error) {
	all, err := s.signupRepo.FindByEvent(ctx, guildID, code)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Signup, 0, len(all))
	for _, su := range all {
		if !su.Removed && domain.IsPlaying(su.Status) {
			out = append(out, su)
		}
	}
	return out, nil
}

func (s *SignupService) Minutemages(ctx context.Context, guildID, code string) ([]entities.Signup, error) {
	all, err := s.signupRepo.FindByEvent(ctx, guildID, code)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Signup, 0, 4)
	for _, su := range all {
		if !su.Removed && su.Status == domain.StatusMinutemage {
			out = append(out, su)
		}
	}
	return out, nil
}
