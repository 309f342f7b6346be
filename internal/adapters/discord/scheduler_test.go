package discord

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftbot/internal/config"
	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
	"draftbot/internal/ports/input"
)

// recordingTransport answers every REST call with a minimal message body and
// keeps the method+path trail for assertions.
type recordingTransport struct {
	mu   sync.Mutex
	reqs []string
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.mu.Lock()
	rt.reqs = append(rt.reqs, req.Method+" "+req.URL.Path)
	rt.mu.Unlock()
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"id":"msg-1","channel_id":"ch1"}`)),
		Request:    req,
	}, nil
}

func (rt *recordingTransport) requests() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]string(nil), rt.reqs...)
}

func (rt *recordingTransport) saw(method, pathSuffix string) bool {
	for _, r := range rt.requests() {
		m, p, _ := strings.Cut(r, " ")
		if m == method && strings.HasSuffix(p, pathSuffix) {
			return true
		}
	}
	return false
}

type fakeEventUC struct {
	event   *entities.Event
	cleared int
}

func (f *fakeEventUC) copyEvent() (*entities.Event, error) {
	if f.event == nil {
		return nil, domain.ErrEventNotFound
	}
	cp := *f.event
	return &cp, nil
}

func (f *fakeEventUC) CreateEvent(context.Context, *entities.Event) error { return nil }
func (f *fakeEventUC) GetEvent(context.Context, string, string) (*entities.Event, error) {
	return f.copyEvent()
}
func (f *fakeEventUC) GetEventBySignupMessageID(context.Context, string) (*entities.Event, error) {
	return f.copyEvent()
}
func (f *fakeEventUC) UpdateEvent(context.Context, *entities.Event) error { return nil }
func (f *fakeEventUC) FindNextUpcoming(context.Context, string, time.Time) (*entities.Event, error) {
	if f.event == nil || !domain.Stage(f.event.Stage).Active() {
		return nil, domain.ErrEventNotFound
	}
	return f.copyEvent()
}
func (f *fakeEventUC) MarkPosted(context.Context, string, string, string, string, string) error {
	return nil
}
func (f *fakeEventUC) ClearPosts(context.Context, string, string) error {
	f.cleared++
	f.event.ChannelID = ""
	f.event.DetailsMessageID = ""
	f.event.SignupMessageID = ""
	f.event.ReminderMessageID = ""
	f.event.TentativePingMessageID = ""
	return nil
}
func (f *fakeEventUC) SetReminderMessage(_ context.Context, _, _, messageID string, at time.Time) error {
	if f.event.ReminderSentAt.IsZero() {
		f.event.ReminderSentAt = at
		f.event.ReminderMessageID = messageID
	}
	return nil
}
func (f *fakeEventUC) SetTentativePingMessage(_ context.Context, _, _, messageID string, at time.Time) error {
	if f.event.TentativesPingedAt.IsZero() {
		f.event.TentativesPingedAt = at
		f.event.TentativePingMessageID = messageID
	}
	return nil
}
func (f *fakeEventUC) AdvanceStage(_ context.Context, _, _ string, stage domain.Stage) error {
	if int(stage) > f.event.Stage {
		f.event.Stage = int(stage)
	}
	return nil
}
func (f *fakeEventUC) PurgeEvent(context.Context, string, string) error {
	f.event = nil
	return nil
}

type fakeSignupUC struct {
	list []entities.Signup
}

func (f *fakeSignupUC) ApplyStatusChange(context.Context, string, string, string, string, string, time.Time) (*input.StatusChangeResult, error) {
	return nil, nil
}
func (f *fakeSignupUC) RemoveParticipant(context.Context, string, string, string, bool) (*entities.Signup, error) {
	return nil, nil
}
func (f *fakeSignupUC) ListSignups(context.Context, string, string) ([]entities.Signup, error) {
	return f.list, nil
}
func (f *fakeSignupUC) ConfirmedPlaying(context.Context, string, string) ([]entities.Signup, error) {
	var out []entities.Signup
	for _, su := range f.list {
		if !su.Removed && domain.IsPlaying(su.Status) {
			out = append(out, su)
		}
	}
	return out, nil
}
func (f *fakeSignupUC) Minutemages(context.Context, string, string) ([]entities.Signup, error) {
	var out []entities.Signup
	for _, su := range f.list {
		if !su.Removed && su.Status == domain.StatusMinutemage {
			out = append(out, su)
		}
	}
	return out, nil
}

// keyTranslator echoes the message key, keeping content assertions stable.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, _ map[string]any) string { return key }

func newSchedulerFixture(t *testing.T, event *entities.Event) (*Handler, *discordgo.Session, *recordingTransport, *fakeEventUC) {
	t.Helper()
	cfg := &config.Config{
		GuildID:           "g1",
		AnnounceChannelID: "ch1",
		HostChannelID:     "host-ch",
		MinutemageRoleID:  "mm-role",
		Locale:            "en",
		TickInterval:      time.Minute,
	}
	evUC := &fakeEventUC{event: event}
	suUC := &fakeSignupUC{list: []entities.Signup{
		{UserID: "u1", Status: domain.StatusCasual},
		{UserID: "u2", Status: domain.StatusTentative},
	}}
	h := NewHandler(evUC, suUC, nil, keyTranslator{}, cfg)

	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	rt := &recordingTransport{}
	s.Client = &http.Client{Transport: rt}
	return h, s, rt, evUC
}

func schedulerEvent(start time.Time) *entities.Event {
	return &entities.Event{
		GuildID:          "g1",
		Code:             "weekly",
		Name:             "Weekly Draft",
		Stage:            int(domain.StagePosted),
		StartTime:        start,
		ChannelID:        "ch1",
		DetailsMessageID: "dm1",
		SignupMessageID:  "sm1",
	}
}

func TestTickReminderPostsAndRedraws(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	h, s, rt, evUC := newSchedulerFixture(t, schedulerEvent(now.Add(30*time.Minute)))

	h.tick(context.Background(), s, now)

	assert.Equal(t, now, evUC.event.ReminderSentAt)
	assert.True(t, rt.saw(http.MethodPost, "/channels/ch1/messages"),
		"reminder message posted")
	assert.True(t, rt.saw(http.MethodPatch, "/channels/ch1/messages/sm1"),
		"signup post redrawn at the reminder step")

	// The flag is set: a second sweep at the same instant does nothing.
	before := len(rt.requests())
	h.tick(context.Background(), s, now)
	assert.Len(t, rt.requests(), before)
}

func TestTickCompleteTearsDownAndForgetsLock(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	event := schedulerEvent(now.Add(-6 * time.Hour))
	event.Stage = int(domain.StageLocked)
	event.ReminderSentAt = now.Add(-7 * time.Hour)
	event.TentativesPingedAt = now.Add(-7 * time.Hour)
	h, s, rt, evUC := newSchedulerFixture(t, event)

	// Simulate earlier redraw traffic having registered the lock.
	h.redrawLock("sm1")

	h.tick(context.Background(), s, now)

	assert.Equal(t, int(domain.StageComplete), evUC.event.Stage)
	assert.Equal(t, 1, evUC.cleared)
	assert.True(t, rt.saw(http.MethodDelete, "/channels/ch1/messages/dm1"))
	assert.True(t, rt.saw(http.MethodDelete, "/channels/ch1/messages/sm1"))

	h.redrawMu.Lock()
	defer h.redrawMu.Unlock()
	assert.Empty(t, h.redrawLocks, "per-message locks released with the posts")
}
