package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
)

const (
	embedColor       = 0x5865F2
	detailsTitlePre  = "📅 "
	signupTitlePre   = "✍️ Signups — "
	reminderTitlePre = "⏰ "
)

// BuildDetailsEmbed builds the public details post for an event.
func BuildDetailsEmbed(event *entities.Event) *discordgo.MessageEmbed {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**Hosted by:** <@%s>\n\n", event.HostID))
	if event.Description != "" {
		b.WriteString(event.Description)
		b.WriteString("\n\n")
	}
	b.WriteString(fmt.Sprintf("**When:** %s", FormatEventDateTime(event.StartTime)))
	if event.Duration > 0 {
		b.WriteString(fmt.Sprintf(" (about %s)", event.Duration))
	}
	if event.Format != "" {
		b.WriteString(fmt.Sprintf("\n**Format:** %s", event.Format))
	}
	return &discordgo.MessageEmbed{
		Title:       detailsTitlePre + event.Name,
		Description: b.String(),
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Draft " + event.Code},
	}
}

var statusSections = []struct {
	status string
	label  string
}{
	{domain.StatusCompetitive, "🏆 Competitive"},
	{domain.StatusCasual, "🎲 Casual"},
	{domain.StatusFlexible, "🤝 Flexible"},
	{domain.StatusTentative, "❔ Tentative"},
	{domain.StatusMinutemage, "🧙 Minutemage"},
	{domain.StatusDecline, "🚫 Declined"},
}

// BuildSignupEmbed renders the signup sheet: one section per status, signups
// in queue order, removed participants struck through.
func BuildSignupEmbed(event *entities.Event, signups []entities.Signup) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(statusSections))
	confirmed := 0
	for _, sec := range statusSections {
		var lines []string
		for _, su := range signups {
			if su.Status != sec.status {
				continue
			}
			line := fmt.Sprintf("- <@%s>", su.UserID)
			if su.Removed {
				line = fmt.Sprintf("- ~~<@%s>~~", su.UserID)
			} else if domain.IsPlaying(su.Status) {
				confirmed++
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s (%d)", sec.label, len(lines)),
			Value:  strings.Join(lines, "\n"),
			Inline: true,
		})
	}
	return &discordgo.MessageEmbed{
		Title:       signupTitlePre + event.Name,
		Description: fmt.Sprintf("**Confirmed players:** %d", confirmed),
		Color:       embedColor,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Draft " + event.Code},
	}
}

// BuildReminderContent mentions everyone who has not declined (and is not
// removed), for the hour-before reminder.
func BuildReminderContent(header string, signups []entities.Signup) string {
	var b strings.Builder
	b.WriteString(header)
	var mentions []string
	for _, su := range signups {
		if su.Removed || su.Status == domain.StatusDecline {
			continue
		}
		mentions = append(mentions, fmt.Sprintf("<@%s>", su.UserID))
	}
	if len(mentions) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(mentions, " "))
	}
	return b.String()
}

// BuildTentativePingContent mentions everyone currently tentative.
func BuildTentativePingContent(header string, signups []entities.Signup) string {
	var mentions []string
	for _, su := range signups {
		if !su.Removed && su.Status == domain.StatusTentative {
			mentions = append(mentions, fmt.Sprintf("<@%s>", su.UserID))
		}
	}
	if len(mentions) == 0 {
		return ""
	}
	return header + "\n" + strings.Join(mentions, " ")
}

// BuildPodsEmbed renders an allocation result for the host channel.
func BuildPodsEmbed(event *entities.Event, pods []domain.Pod) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(pods))
	for i, pod := range pods {
		var lines []string
		for _, p := range pod.Players {
			lines = append(lines, fmt.Sprintf("- <@%s> (%s)", p.UserID, p.Reason))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Pod %d — %d seats", i+1, pod.Seats),
			Value: strings.Join(lines, "\n"),
		})
	}
	return &discordgo.MessageEmbed{
		Title:  "🔥 Pods — " + event.Name,
		Color:  embedColor,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: "Draft " + event.Code},
	}
}
