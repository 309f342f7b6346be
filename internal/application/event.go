package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
	"draftbot/internal/ports/output"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 1000
	maxFormatLen      = 60
)

// Event codes encode season/week/region/type, e.g. "S3W5-NA-C".
var codePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{1,15}$`)

type EventService struct {
	eventRepo  output.EventRepository
	signupRepo output.SignupRepository
}

func NewEventService(eventRepo output.EventRepository, signupRepo output.SignupRepository) *EventService {
	return &EventService{eventRepo: eventRepo, signupRepo: signupRepo}
}

// ValidationError carries a user-facing message key for rejected input.
type ValidationError struct {
	Key string
}

func (e *ValidationError) Error() string { return "validation: " + e.Key }

func validateEvent(event *entities.Event, now time.Time) error {
	if !codePattern.MatchString(event.Code) {
		return &ValidationError{Key: "error.bad_code"}
	}
	if strings.TrimSpace(event.Name) == "" || len(event.Name) > maxNameLen {
		return &ValidationError{Key: "error.bad_name"}
	}
	if len(event.Description) > maxDescriptionLen || len(event.Format) > maxFormatLen {
		return &ValidationError{Key: "error.too_long"}
	}
	if event.StartTime.Before(now) {
		return &ValidationError{Key: "error.datetime_in_past"}
	}
	return nil
}

func (s *EventService) CreateEvent(ctx context.Context, event *entities.Event) error {
	if err := validateEvent(event, time.Now()); err != nil {
		return err
	}
	if existing, err := s.eventRepo.FindByCode(ctx, event.GuildID, event.Code); err == nil && existing != nil {
		return domain.ErrEventExists
	}
	event.Stage = int(domain.StageCreated)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *EventService) GetEvent(ctx context.Context, guildID, code string) (*entities.Event, error) {
	return s.eventRepo.FindByCode(ctx, guildID, code)
}

func (s *EventService) GetEventBySignupMessageID(ctx context.Context, messageID string) (*entities.Event, error) {
	return s.eventRepo.FindBySignupMessageID(ctx, messageID)
}

func (s *EventService) UpdateEvent(ctx context.Context, event *entities.Event) error {
	if err := validateEvent(event, time.Now()); err != nil {
		return err
	}
	return s.eventRepo.Update(ctx, event)
}

func (s *EventService) FindNextUpcoming(ctx context.Context, guildID string, now time.Time) (*entities.Event, error) {
	return s.eventRepo.FindNextUpcoming(ctx, guildID, now)
}

func (s *EventService) MarkPosted(ctx context.Context, guildID, code, channelID, detailsID, signupID string) error {
	event, err := s.eventRepo.FindByCode(ctx, guildID, code)
	if err != nil {
		return err
	}
	if event.IsPosted() {
		return domain.ErrEventAlreadyPosted
	}
	if err := s.eventRepo.SetMessageIDs(ctx, guildID, code, channelID, detailsID, signupID); err != nil {
		return fmt.Errorf("set message ids: %w", err)
	}
	if err := s.eventRepo.AdvanceStage(ctx, guildID, code, int(domain.StagePosted)); err != nil {
		return fmt.Errorf("advance stage: %w", err)
	}
	return nil
}

func (s *EventService) ClearPosts(ctx context.Context, guildID, code string) error {
	if err := s.eventRepo.ClearMessageIDs(ctx, guildID, code); err != nil {
		return fmt.Errorf("clear message ids: %w", err)
	}
	return nil
}

func (s *EventService) SetReminderMessage(ctx context.Context, guildID, code, messageID string, at time.Time) error {
	return s.eventRepo.MarkReminderSent(ctx, guildID, code, messageID, at)
}

func (s *EventService) SetTentativePingMessage(ctx context.Context, guildID, code, messageID string, at time.Time) error {
	return s.eventRepo.MarkTentativesPinged(ctx, guildID, code, messageID, at)
}

func (s *EventService) AdvanceStage(ctx context.Context, guildID, code string, stage domain.Stage) error {
	return s.eventRepo.AdvanceStage(ctx, guildID, code, int(stage))
}

// PurgeEvent removes the event and its entire signup ledger.
func (s *EventService) PurgeEvent(ctx context.Context, guildID, code string) error {
	if err := s.signupRepo.DeleteByEvent(ctx, guildID, code); err != nil {
		return fmt.Errorf("purge signups: %w", err)
	}
	if err := s.eventRepo.Delete(ctx, guildID, code); err != nil {
		return fmt.Errorf("purge event: %w", err)
	}
	return nil
}

// IsValidation reports whether err was a rejected-input error rather than an
// internal one.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
