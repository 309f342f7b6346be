package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"draftbot/internal/domain"
	pkgdiscord "draftbot/pkg/discord"
)

// HandleSignupButton reacts to a click on one of the signup-sheet buttons.
// status is the requested signup status (taken from the CustomID).
func (h *Handler) HandleSignupButton(s *discordgo.Session, i *discordgo.InteractionCreate, status string) {
	ctx := context.Background()
	now := time.Now()

	event, err := h.eventUseCase.GetEventBySignupMessageID(ctx, i.Message.ID)
	if err != nil {
		log.Error().Err(err).Str("message", i.Message.ID).Msg("signup click: resolve event")
		h.respondKey(s, i.Interaction, pkgdiscord.MessageKey(err), nil)
		return
	}

	// Lifecycle locks. Disabled buttons normally prevent these clicks, but a
	// stale embed can still deliver them.
	stage := domain.Stage(event.Stage)
	if stage >= domain.StageLocked && domain.IsPlaying(status) {
		h.respondKey(s, i.Interaction, "signup.playing_locked", nil)
		return
	}
	if status == domain.StatusTentative && (stage >= domain.StageLocked || !event.TentativesPingedAt.IsZero()) {
		h.respondKey(s, i.Interaction, "signup.tentative_locked", nil)
		return
	}

	userID := i.Member.User.ID
	result, err := h.signupUseCase.ApplyStatusChange(
		ctx, event.GuildID, event.Code, userID, resolveDisplayName(i.Member), status, now,
	)
	if err != nil {
		log.Error().Err(err).
			Str("guild", event.GuildID).Str("code", event.Code).Str("user", userID).
			Msg("signup click: apply status change")
		h.respondKey(s, i.Interaction, pkgdiscord.MessageKey(err), nil)
		return
	}

	h.redrawSignupMessage(ctx, s, event)
	h.respondKey(s, i.Interaction, "signup."+status, nil)

	if result.LateMinutemage {
		name := result.Signup.PreferredName
		if name == "" {
			name = "<@" + userID + ">"
		}
		if _, err := s.ChannelMessageSend(h.cfg.HostChannelID,
			h.t("minutemage.late", map[string]any{"Name": name}),
		); err != nil {
			log.Warn().Err(err).Str("code", event.Code).Msg("late minutemage alert")
		}
	}
}
