package application

import (
	"context"
	"fmt"
	"time"

	"draftbot/internal/domain"
	"draftbot/internal/ports/output"
)

type PodService struct {
	signupRepo output.SignupRepository
	eventRepo  output.EventRepository
	leagueRepo output.LeagueRecordRepository
	signups    *SignupService
}

func NewPodService(signupRepo output.SignupRepository, eventRepo output.EventRepository, leagueRepo output.LeagueRecordRepository, signups *SignupService) *PodService {
	return &PodService{signupRepo: signupRepo, eventRepo: eventRepo, leagueRepo: leagueRepo, signups: signups}
}

// AllocatePods builds the pods for the event's confirmed playing roster and,
// on success, advances the event to Fired. Gating (not started, too few,
// odd, too many) happens before any seat math. Firing only after start keeps
// the at-start transition (host guide, odd-count minutemage call) from being
// skipped: the stage cannot jump past Locked while the lock step is still
// ahead.
func (s *PodService) AllocatePods(ctx context.Context, guildID, code string, hosts map[string]bool, seed int64, now time.Time) ([]domain.Pod, error) {
	event, err := s.eventRepo.FindByCode(ctx, guildID, code)
	if err != nil {
		return nil, err
	}
	if !event.Started(now) {
		return nil, domain.ErrEventNotStarted
	}
	roster, err := s.signups.ConfirmedPlaying(ctx, guildID, code)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	records, err := s.leagueRepo.FindByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("load league records: %w", err)
	}
	pods, err := domain.Allocate(roster, records, hosts, seed)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.AdvanceStage(ctx, guildID, code, int(domain.StageFired)); err != nil {
		return nil, fmt.Errorf("advance stage: %w", err)
	}
	return pods, nil
}
