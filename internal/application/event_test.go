package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
)

func validEvent() *entities.Event {
	return &entities.Event{
		GuildID:   "guild",
		Code:      "S3W5-NA-C",
		Name:      "Season 3 Week 5",
		HostID:    "host",
		StartTime: time.Now().Add(48 * time.Hour),
		Duration:  3 * time.Hour,
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), newFakeSignupRepo())
	ctx := context.Background()

	testCases := []struct {
		name    string
		mutate  func(*entities.Event)
		wantKey string
	}{
		{"bad code", func(e *entities.Event) { e.Code = "has spaces" }, "error.bad_code"},
		{"code too short", func(e *entities.Event) { e.Code = "x" }, "error.bad_code"},
		{"empty name", func(e *entities.Event) { e.Name = "  " }, "error.bad_name"},
		{"past start", func(e *entities.Event) { e.StartTime = time.Now().Add(-time.Hour) }, "error.datetime_in_past"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := validEvent()
			tc.mutate(e)
			err := svc.CreateEvent(ctx, e)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.wantKey, ve.Key)
		})
	}
}

func TestCreateEventDuplicateCode(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), newFakeSignupRepo())
	ctx := context.Background()

	require.NoError(t, svc.CreateEvent(ctx, validEvent()))
	err := svc.CreateEvent(ctx, validEvent())
	assert.ErrorIs(t, err, domain.ErrEventExists)
}

func TestMarkPostedOnce(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events, newFakeSignupRepo())
	ctx := context.Background()

	e := validEvent()
	require.NoError(t, svc.CreateEvent(ctx, e))

	require.NoError(t, svc.MarkPosted(ctx, e.GuildID, e.Code, "chan", "details-1", "signup-1"))
	got, err := svc.GetEvent(ctx, e.GuildID, e.Code)
	require.NoError(t, err)
	assert.Equal(t, int(domain.StagePosted), got.Stage)
	assert.Equal(t, "signup-1", got.SignupMessageID)

	err = svc.MarkPosted(ctx, e.GuildID, e.Code, "chan", "details-2", "signup-2")
	assert.ErrorIs(t, err, domain.ErrEventAlreadyPosted)
}

func TestAdvanceStageNeverRewinds(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events, newFakeSignupRepo())
	ctx := context.Background()

	e := validEvent()
	require.NoError(t, svc.CreateEvent(ctx, e))
	require.NoError(t, svc.AdvanceStage(ctx, e.GuildID, e.Code, domain.StageLocked))
	require.NoError(t, svc.AdvanceStage(ctx, e.GuildID, e.Code, domain.StagePosted))

	got, err := svc.GetEvent(ctx, e.GuildID, e.Code)
	require.NoError(t, err)
	assert.Equal(t, int(domain.StageLocked), got.Stage)
}

func TestSetReminderMessageIsOneShot(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events, newFakeSignupRepo())
	ctx := context.Background()

	e := validEvent()
	require.NoError(t, svc.CreateEvent(ctx, e))

	t0 := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	require.NoError(t, svc.SetReminderMessage(ctx, e.GuildID, e.Code, "msg-1", t0))
	require.NoError(t, svc.SetReminderMessage(ctx, e.GuildID, e.Code, "msg-2", t0.Add(time.Minute)))

	got, err := svc.GetEvent(ctx, e.GuildID, e.Code)
	require.NoError(t, err)
	assert.Equal(t, t0, got.ReminderSentAt)
	assert.Equal(t, "msg-1", got.ReminderMessageID)
}

func TestPurgeEventDropsLedger(t *testing.T) {
	events, signups := newFakeEventRepo(), newFakeSignupRepo()
	eventSvc := NewEventService(events, signups)
	signupSvc := NewSignupService(signups, events)
	ctx := context.Background()

	e := validEvent()
	require.NoError(t, eventSvc.CreateEvent(ctx, e))
	require.NoError(t, events.AdvanceStage(ctx, e.GuildID, e.Code, int(domain.StagePosted)))
	_, err := signupSvc.ApplyStatusChange(ctx, e.GuildID, e.Code, "alice", "Alice", domain.StatusCasual, time.Now())
	require.NoError(t, err)

	require.NoError(t, eventSvc.PurgeEvent(ctx, e.GuildID, e.Code))

	_, err = eventSvc.GetEvent(ctx, e.GuildID, e.Code)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	rows, err := signups.FindByEvent(ctx, e.GuildID, e.Code)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAllocatePodsAdvancesToFired(t *testing.T) {
	events, signups := newFakeEventRepo(), newFakeSignupRepo()
	leagues := newFakeLeagueRepo()
	signupSvc := NewSignupService(signups, events)
	podSvc := NewPodService(signups, events, leagues, signupSvc)
	ctx := context.Background()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEvent(t, events, t0.Add(8*time.Hour))
	for i := 0; i < 8; i++ {
		user := string(rune('a' + i))
		_, err := signupSvc.ApplyStatusChange(ctx, "guild", "weekly", user, user, domain.StatusCasual, t0.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	pods, err := podSvc.AllocatePods(ctx, "guild", "weekly", nil, 5, t0.Add(9*time.Hour))
	require.NoError(t, err)
	require.Len(t, pods, 1)
	assert.Equal(t, 8, pods[0].Seats)

	got, err := events.FindByCode(ctx, "guild", "weekly")
	require.NoError(t, err)
	assert.Equal(t, int(domain.StageFired), got.Stage)
}

func TestAllocatePodsOnlyAfterStart(t *testing.T) {
	events, signups := newFakeEventRepo(), newFakeSignupRepo()
	leagues := newFakeLeagueRepo()
	signupSvc := NewSignupService(signups, events)
	podSvc := NewPodService(signups, events, leagues, signupSvc)
	ctx := context.Background()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := t0.Add(8 * time.Hour)
	seedEvent(t, events, start)
	for i := 0; i < 8; i++ {
		user := string(rune('a' + i))
		_, err := signupSvc.ApplyStatusChange(ctx, "guild", "weekly", user, user, domain.StatusCasual, t0.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	// Firing early would jump the stage past Locked and skip the at-start
	// actions, so it is rejected outright.
	_, err := podSvc.AllocatePods(ctx, "guild", "weekly", nil, 5, start.Add(-time.Minute))
	assert.ErrorIs(t, err, domain.ErrEventNotStarted)

	got, err := events.FindByCode(ctx, "guild", "weekly")
	require.NoError(t, err)
	assert.Equal(t, int(domain.StagePosted), got.Stage)

	// At start time exactly, firing is allowed.
	_, err = podSvc.AllocatePods(ctx, "guild", "weekly", nil, 5, start)
	require.NoError(t, err)
}

func TestAllocatePodsGatingBeforeStageChange(t *testing.T) {
	events, signups := newFakeEventRepo(), newFakeSignupRepo()
	leagues := newFakeLeagueRepo()
	signupSvc := NewSignupService(signups, events)
	podSvc := NewPodService(signups, events, leagues, signupSvc)
	ctx := context.Background()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEvent(t, events, t0.Add(8*time.Hour))
	for i := 0; i < 7; i++ {
		user := string(rune('a' + i))
		_, err := signupSvc.ApplyStatusChange(ctx, "guild", "weekly", user, user, domain.StatusCasual, t0.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	_, err := podSvc.AllocatePods(ctx, "guild", "weekly", nil, 5, t0.Add(9*time.Hour))
	assert.ErrorIs(t, err, domain.ErrOddPlayerCount)

	got, err := events.FindByCode(ctx, "guild", "weekly")
	require.NoError(t, err)
	assert.Equal(t, int(domain.StagePosted), got.Stage, "a rejected allocation leaves the stage alone")
}
