package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	pkgdiscord "draftbot/pkg/discord"
	"draftbot/pkg/tz"
)

// handleEditMenu opens the edit modal prefilled with the event's authored
// fields. Schedule and text can change; the code cannot.
func (h *Handler) handleEditMenu(s *discordgo.Session, i *discordgo.InteractionCreate, code string) {
	ctx := context.Background()
	event, ok := h.requireHost(ctx, s, i, code)
	if !ok {
		return
	}

	start := event.StartTime
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "edit_draft_modal:" + event.Code,
			Title:    "Edit " + event.Code,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "name", Label: "Name", Style: discordgo.TextInputShort, Required: true, Value: event.Name},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "date", Label: "Date", Style: discordgo.TextInputShort, Required: true, Value: start.In(tz.Location).Format("02/01/2006")},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "time", Label: "Start time", Style: discordgo.TextInputShort, Required: true, Value: start.In(tz.Location).Format("15:04")},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "desc", Label: "Description", Style: discordgo.TextInputParagraph, Required: false, Value: event.Description},
				}},
			},
		},
	})
}

// HandleEditModalSubmit applies the edited fields and redraws the public
// posts so they reflect the new schedule.
func (h *Handler) HandleEditModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	ctx := context.Background()
	code := strings.TrimPrefix(customID, "edit_draft_modal:")
	event, ok := h.requireHost(ctx, s, i, code)
	if !ok {
		return
	}

	data := i.ModalSubmitData()
	startTime, err := pkgdiscord.ParseEventDateTime(modalValue(data, "date"), modalValue(data, "time"))
	if err != nil {
		respondEphemeral(s, i.Interaction, err.Error())
		return
	}

	event.Name = modalValue(data, "name")
	event.Description = modalValue(data, "desc")
	event.StartTime = startTime
	if err := h.eventUseCase.UpdateEvent(ctx, event); err != nil {
		log.Error().Err(err).Str("code", code).Msg("edit event")
		h.respondKey(s, i.Interaction, pkgdiscord.MessageKey(err), nil)
		return
	}

	if event.DetailsMessageID != "" {
		if _, err := s.ChannelMessageEditEmbed(event.ChannelID, event.DetailsMessageID, pkgdiscord.BuildDetailsEmbed(event)); err != nil {
			log.Warn().Err(err).Str("code", code).Msg("edit details post")
		}
	}
	h.redrawSignupMessage(ctx, s, event)
	respondEphemeral(s, i.Interaction, "✏️ Draft **"+event.Code+"** updated.")
}
