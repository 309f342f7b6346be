package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
	pkgdiscord "draftbot/pkg/discord"
)

const (
	placeholderCode = "e.g. S3W5-NA-C (season/week/region/type)"
	placeholderName = "e.g. Season 3 Week 5 — NA Competitive"
	placeholderDate = "e.g. 15/02/2026 (day/month/year)"
	placeholderTime = "e.g. 19:30"
	placeholderDesc = "Format notes, prizes, anything players should know"
)

func (h *Handler) openCreateModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "create_draft_modal",
			Title:    "Create a draft",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "code", Label: "Draft code", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderCode},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "name", Label: "Name", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderName},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "date", Label: "Date", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderDate},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "time", Label: "Start time", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderTime},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "desc", Label: "Description", Style: discordgo.TextInputParagraph, Required: false, Placeholder: placeholderDesc},
				}},
			},
		},
	})
}

func modalValue(data discordgo.ModalSubmitInteractionData, id string) string {
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			if ti, ok := c.(*discordgo.TextInput); ok && ti.CustomID == id {
				return ti.Value
			}
		}
	}
	return ""
}

// HandleCreateModalSubmit validates the authored fields and creates the
// event at stage Created. Nothing is posted publicly until /draft post.
func (h *Handler) HandleCreateModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	data := i.ModalSubmitData()

	startTime, err := pkgdiscord.ParseEventDateTime(modalValue(data, "date"), modalValue(data, "time"))
	if err != nil {
		respondEphemeral(s, i.Interaction, err.Error())
		return
	}

	event := &entities.Event{
		GuildID:     h.cfg.GuildID,
		Code:        modalValue(data, "code"),
		Name:        modalValue(data, "name"),
		Description: modalValue(data, "desc"),
		HostID:      i.Member.User.ID,
		StartTime:   startTime,
		Duration:    3 * time.Hour,
		Stage:       int(domain.StageCreated),
	}
	if err := h.eventUseCase.CreateEvent(ctx, event); err != nil {
		log.Error().Err(err).Str("guild", event.GuildID).Str("code", event.Code).Msg("create event")
		h.respondKey(s, i.Interaction, pkgdiscord.MessageKey(err), nil)
		return
	}
	respondEphemeral(s, i.Interaction, "✅ Draft **"+event.Code+"** created. Use `/draft post` to publish it.")
}
