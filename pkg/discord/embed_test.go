package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
)

func testEvent() *entities.Event {
	return &entities.Event{
		GuildID:   "guild",
		Code:      "S3W5-NA-C",
		Name:      "Season 3 Week 5",
		HostID:    "host",
		StartTime: time.Date(2199, 2, 15, 19, 30, 0, 0, time.UTC),
	}
}

func TestBuildSignupEmbed(t *testing.T) {
	signups := []entities.Signup{
		{UserID: "a", Status: domain.StatusCompetitive},
		{UserID: "b", Status: domain.StatusCasual},
		{UserID: "c", Status: domain.StatusCasual, Removed: true},
		{UserID: "d", Status: domain.StatusTentative},
		{UserID: "e", Status: domain.StatusDecline},
	}
	embed := BuildSignupEmbed(testEvent(), signups)

	assert.Contains(t, embed.Description, "**Confirmed players:** 2",
		"removed and non-playing rows do not count")
	require.Len(t, embed.Fields, 4, "empty sections are omitted")

	var casual *struct{ name, value string }
	for _, f := range embed.Fields {
		if f.Name == "🎲 Casual (2)" {
			casual = &struct{ name, value string }{f.Name, f.Value}
		}
	}
	require.NotNil(t, casual)
	assert.Contains(t, casual.value, "<@b>")
	assert.Contains(t, casual.value, "~~<@c>~~", "removed signups stay visible, struck through")
}

func TestBuildReminderContent(t *testing.T) {
	signups := []entities.Signup{
		{UserID: "a", Status: domain.StatusCompetitive},
		{UserID: "b", Status: domain.StatusTentative},
		{UserID: "c", Status: domain.StatusDecline},
		{UserID: "d", Status: domain.StatusCasual, Removed: true},
	}
	content := BuildReminderContent("Starting soon!", signups)

	assert.Contains(t, content, "Starting soon!")
	assert.Contains(t, content, "<@a>")
	assert.Contains(t, content, "<@b>", "tentatives still get the reminder")
	assert.NotContains(t, content, "<@c>")
	assert.NotContains(t, content, "<@d>")
}

func TestBuildTentativePingContent(t *testing.T) {
	signups := []entities.Signup{
		{UserID: "a", Status: domain.StatusCompetitive},
		{UserID: "b", Status: domain.StatusTentative},
		{UserID: "c", Status: domain.StatusTentative, Removed: true},
	}
	content := BuildTentativePingContent("Last call:", signups)
	assert.Contains(t, content, "<@b>")
	assert.NotContains(t, content, "<@a>")
	assert.NotContains(t, content, "<@c>")

	assert.Empty(t, BuildTentativePingContent("Last call:", nil),
		"no tentatives, no message")
}

func TestBuildPodsEmbed(t *testing.T) {
	pods := []domain.Pod{
		{Seats: 8, Players: []domain.SeatAssignment{
			{UserID: "a", Reason: domain.ReasonHost},
			{UserID: "b", Reason: domain.ReasonRandom},
		}},
		{Seats: 6, Players: []domain.SeatAssignment{
			{UserID: "c", Reason: domain.ReasonShark},
		}},
	}
	embed := BuildPodsEmbed(testEvent(), pods)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Pod 1 — 8 seats", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "<@a> (host)")
	assert.Contains(t, embed.Fields[1].Value, "<@c> (shark)")
}
