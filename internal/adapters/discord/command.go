package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"draftbot/internal/domain/entities"
	pkgdiscord "draftbot/pkg/discord"
)

var draftCommand = &discordgo.ApplicationCommand{
	Name:        "draft",
	Description: "Manage league drafts",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "create",
			Description: "Create a new draft event",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "edit",
			Description: "Edit an event's name, schedule or description",
			Options:     []*discordgo.ApplicationCommandOption{codeOption()},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "post",
			Description: "Publish the details and signup posts",
			Options:     []*discordgo.ApplicationCommandOption{codeOption()},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "delete",
			Description: "Take the public posts down (the event itself stays)",
			Options:     []*discordgo.ApplicationCommandOption{codeOption()},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "pods",
			Description: "Allocate the confirmed players into pods and fire",
			Options:     []*discordgo.ApplicationCommandOption{codeOption()},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "remove",
			Description: "Remove a participant from the signup sheet",
			Options: []*discordgo.ApplicationCommandOption{
				codeOption(),
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "noshow",
					Description: "Record the removal as a no-show",
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "purge",
			Description: "Delete the event and its entire signup ledger",
			Options:     []*discordgo.ApplicationCommandOption{codeOption()},
		},
	},
}

func codeOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "code",
		Description: "Draft code, e.g. S3W5-NA-C",
		Required:    true,
	}
}

func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	opts := map[string]*discordgo.ApplicationCommandInteractionDataOption{}
	for _, o := range sub.Options {
		opts[o.Name] = o
	}
	code := ""
	if o, ok := opts["code"]; ok {
		code = o.StringValue()
	}

	switch sub.Name {
	case "create":
		h.openCreateModal(s, i)
	case "edit":
		h.handleEditMenu(s, i, code)
	case "post":
		h.handlePost(s, i, code)
	case "delete":
		h.handleDelete(s, i, code)
	case "pods":
		h.handlePods(s, i, code)
	case "remove":
		noshow := false
		if o, ok := opts["noshow"]; ok {
			noshow = o.BoolValue()
		}
		h.handleRemoveMenu(s, i, code, noshow)
	case "purge":
		h.handlePurge(s, i, code)
	}
}

// requireHost loads the event and checks the invoker may run authoring
// actions on it: the event host, or anyone holding the host role.
func (h *Handler) requireHost(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, code string) (*entities.Event, bool) {
	event, err := h.eventUseCase.GetEvent(ctx, h.cfg.GuildID, code)
	if err != nil {
		h.respondKey(s, i.Interaction, pkgdiscord.MessageKey(err), nil)
		return nil, false
	}
	userID := i.Member.User.ID
	if userID != event.HostID && !h.memberHasRole(s, h.cfg.GuildID, userID, h.cfg.HostRoleID) {
		h.respondKey(s, i.Interaction, "error.not_host", nil)
		return nil, false
	}
	return event, true
}

// handlePost publishes the details post, then the signup post, then persists
// the handles. The ordering matters only in that the details post is issued
// first; a failure persisting after a successful post is logged and the
// operator can delete and re-post.
func (h *Handler) handlePost(s *discordgo.Session, i *discordgo.InteractionCreate, code string) {
	ctx := context.Background()
	event, ok := h.requireHost(ctx, s, i, code)
	if !ok {
		return
	}
	if event.IsPosted() {
		h.respondKey(s, i.Interaction, "error.already_posted", nil)
		return
	}

	channelID := h.cfg.AnnounceChannelID
	detailsMsg, err := s.ChannelMessageSendEmbed(channelID, pkgdiscord.BuildDetailsEmbed(event))
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("post details message")
		h.respondKey(s, i.Interaction, "error.internal", nil)
		return
	}

	signups, _ := h.signupUseCase.ListSignups(ctx, event.GuildID, event.Code)
	components := buildSignupComponents(event)
	signupMsg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{pkgdiscord.BuildSignupEmbed(event, signups)},
		Components: components,
	})
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("post signup message")
		h.respondKey(s, i.Interaction, "error.internal", nil)
		return
	}

	if err := h.eventUseCase.MarkPosted(ctx, event.GuildID, event.Code, channelID, detailsMsg.ID, signupMsg.ID); err != nil {
		log.Error().Err(err).Str("code", code).Msg("persist post handles")
		h.respondKey(s, i.Interaction, pkgdiscord.MessageKey(err), nil)
		return
	}
	respondEphemeral(s, i.Interaction, "📣 Posted.")
}

// handleDelete tears the public posts down without touching the lifecycle
// stage; the event can be re-posted.
func (h *Handler) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, code string) {
	ctx := context.Background()
	event, ok := h.requireHost(ctx, s, i, code)
	if !ok {
		return
	}
	deletePresentationPosts(s, event)
	if err := h.eventUseCase.ClearPosts(ctx, event.GuildID, event.Code); err != nil {
		log.Error().Err(err).Str("code", code).Msg("clear post handles")
		h.respondKey(s, i.Interaction, "error.internal", nil)
		return
	}
	h.forgetRedrawLock(event.SignupMessageID)
	respondEphemeral(s, i.Interaction, "🗑️ Posts removed.")
}

func (h *Handler) handlePods(s *discordgo.Session, i *discordgo.InteractionCreate, code string) {
	ctx := context.Background()
	event, ok := h.requireHost(ctx, s, i, code)
	if !ok {
		return
	}

	// Role membership is a Discord-side fact, resolved here and handed to
	// the allocator as plain data.
	roster, err := h.signupUseCase.ConfirmedPlaying(ctx, event.GuildID, event.Code)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("pods: load roster")
		h.respondKey(s, i.Interaction, "error.internal", nil)
		return
	}
	hosts := make(map[string]bool, len(roster))
	for _, su := range roster {
		if h.memberHasRole(s, event.GuildID, su.UserID, h.cfg.HostRoleID) {
			hosts[su.UserID] = true
		}
	}

	now := time.Now()
	pods, err := h.podUseCase.AllocatePods(ctx, event.GuildID, event.Code, hosts, now.UnixNano(), now)
	if err != nil {
		h.respondKey(s, i.Interaction, pkgdiscord.MessageKey(err), nil)
		return
	}

	if _, err := s.ChannelMessageSendEmbed(h.cfg.HostChannelID, pkgdiscord.BuildPodsEmbed(event, pods)); err != nil {
		log.Error().Err(err).Str("code", code).Msg("pods: post allocation")
	}
	respondEphemeral(s, i.Interaction, "🔥 Pods fired.")
}

func (h *Handler) handlePurge(s *discordgo.Session, i *discordgo.InteractionCreate, code string) {
	ctx := context.Background()
	event, ok := h.requireHost(ctx, s, i, code)
	if !ok {
		return
	}
	deletePresentationPosts(s, event)
	if err := h.eventUseCase.PurgeEvent(ctx, event.GuildID, event.Code); err != nil {
		log.Error().Err(err).Str("code", code).Msg("purge event")
		h.respondKey(s, i.Interaction, "error.internal", nil)
		return
	}
	h.forgetRedrawLock(event.SignupMessageID)
	respondEphemeral(s, i.Interaction, "🧹 Event purged.")
}
