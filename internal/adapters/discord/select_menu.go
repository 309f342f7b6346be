package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	pkgdiscord "draftbot/pkg/discord"
)

// handleRemoveMenu answers /draft remove with an ephemeral select menu over
// the event's current (non-removed) signups. The noshow flag rides along in
// the CustomID.
func (h *Handler) handleRemoveMenu(s *discordgo.Session, i *discordgo.InteractionCreate, code string, noshow bool) {
	ctx := context.Background()
	event, ok := h.requireHost(ctx, s, i, code)
	if !ok {
		return
	}
	signups, err := h.signupUseCase.ListSignups(ctx, event.GuildID, event.Code)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("remove menu: load signups")
		h.respondKey(s, i.Interaction, "error.internal", nil)
		return
	}

	var options []discordgo.SelectMenuOption
	for _, su := range signups {
		if su.Removed {
			continue
		}
		label := su.PreferredName
		if label == "" {
			label = su.UserID
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       label,
			Value:       su.UserID,
			Description: su.Status,
		})
	}
	if len(options) == 0 {
		h.respondKey(s, i.Interaction, "error.signup_not_found", nil)
		return
	}

	customID := "select_remove_" + code
	if noshow {
		customID += ":noshow"
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Pick the participant to remove:",
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{CustomID: customID, Options: options},
				}},
			},
		},
	})
}

// HandleRemoveSelect applies the removal chosen in the select menu. The
// suffix is "<code>" or "<code>:noshow".
func (h *Handler) HandleRemoveSelect(s *discordgo.Session, i *discordgo.InteractionCreate, suffix string) {
	ctx := context.Background()
	code, flags, _ := strings.Cut(suffix, ":")
	noshow := flags == "noshow"

	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}
	userID := values[0]

	event, ok := h.requireHost(ctx, s, i, code)
	if !ok {
		return
	}
	signup, err := h.signupUseCase.RemoveParticipant(ctx, event.GuildID, event.Code, userID, noshow)
	if err != nil {
		log.Error().Err(err).Str("code", code).Str("user", userID).Msg("remove participant")
		h.respondKey(s, i.Interaction, pkgdiscord.MessageKey(err), nil)
		return
	}

	h.redrawSignupMessage(ctx, s, event)
	name := signup.PreferredName
	if name == "" {
		name = "<@" + userID + ">"
	}
	h.respondKey(s, i.Interaction, "signup.removed", map[string]any{"Name": name})
}
