package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
	pkgdiscord "draftbot/pkg/discord"
)

type signupButton struct {
	status string
	label  string
	style  discordgo.ButtonStyle
}

var signupButtons = []signupButton{
	{domain.StatusCompetitive, "🏆 Competitive", discordgo.PrimaryButton},
	{domain.StatusCasual, "🎲 Casual", discordgo.PrimaryButton},
	{domain.StatusFlexible, "🤝 Flexible", discordgo.PrimaryButton},
	{domain.StatusTentative, "❔ Tentative", discordgo.SecondaryButton},
	{domain.StatusMinutemage, "🧙 Minutemage", discordgo.SecondaryButton},
	{domain.StatusDecline, "🚫 Decline", discordgo.DangerButton},
}

const buttonsPerRow = 3

// buildSignupComponents renders the signup buttons with the lock state the
// lifecycle dictates: Tentative locks once tentatives were pinged; the
// playing statuses lock at start, when only Minutemage (and Decline) remain
// useful.
func buildSignupComponents(event *entities.Event) []discordgo.MessageComponent {
	locked := domain.Stage(event.Stage) >= domain.StageLocked
	tentativeLocked := locked || !event.TentativesPingedAt.IsZero()

	var buttons []discordgo.MessageComponent
	for _, sb := range signupButtons {
		disabled := false
		switch {
		case domain.IsPlaying(sb.status):
			disabled = locked
		case sb.status == domain.StatusTentative:
			disabled = tentativeLocked
		}
		buttons = append(buttons, discordgo.Button{
			Label:    sb.label,
			Style:    sb.style,
			CustomID: "signup_" + sb.status,
			Disabled: disabled,
		})
	}

	var components []discordgo.MessageComponent
	for i := 0; i < len(buttons); i += buttonsPerRow {
		end := min(i+buttonsPerRow, len(buttons))
		components = append(components, discordgo.ActionsRow{Components: buttons[i:end]})
	}
	return components
}

// redrawSignupMessage rebuilds and re-submits the public signup post.
// Redraws for the same message are serialized so a slow edit cannot
// overwrite a newer one.
func (h *Handler) redrawSignupMessage(ctx context.Context, s *discordgo.Session, event *entities.Event) {
	if event.SignupMessageID == "" {
		return
	}
	mu := h.redrawLock(event.SignupMessageID)
	mu.Lock()
	defer mu.Unlock()

	// Re-fetch inside the critical section so the last redraw wins with the
	// freshest ledger.
	fresh, err := h.eventUseCase.GetEvent(ctx, event.GuildID, event.Code)
	if err != nil {
		log.Error().Err(err).Str("code", event.Code).Msg("redraw: reload event")
		return
	}
	signups, err := h.signupUseCase.ListSignups(ctx, fresh.GuildID, fresh.Code)
	if err != nil {
		log.Error().Err(err).Str("code", fresh.Code).Msg("redraw: load signups")
		return
	}

	embed := pkgdiscord.BuildSignupEmbed(fresh, signups)
	components := buildSignupComponents(fresh)
	embeds := []*discordgo.MessageEmbed{embed}
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         fresh.SignupMessageID,
		Channel:    fresh.ChannelID,
		Embeds:     &embeds,
		Components: &components,
	}); err != nil {
		log.Error().Err(err).Str("code", fresh.Code).Msg("redraw: edit signup message")
	}
}

// deletePresentationPosts tears down every public post the event owns.
// Failures are logged and skipped; the handles get cleared regardless.
func deletePresentationPosts(s *discordgo.Session, event *entities.Event) {
	for _, messageID := range []string{
		event.DetailsMessageID,
		event.SignupMessageID,
		event.ReminderMessageID,
		event.TentativePingMessageID,
	} {
		if messageID == "" {
			continue
		}
		if err := s.ChannelMessageDelete(event.ChannelID, messageID); err != nil {
			log.Warn().Err(err).Str("message", messageID).Msg("delete presentation post")
		}
	}
}
