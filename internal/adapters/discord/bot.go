package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"draftbot/internal/config"
	"draftbot/internal/ports/input"
	"draftbot/internal/ports/output"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewBot creates a Bot and wires ports: use cases -> handler -> session.
func NewBot(
	cfg *config.Config,
	eventUC input.EventUseCase,
	signupUC input.SignupUseCase,
	podUC input.PodUseCase,
	translator output.T,
) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	handler := NewHandler(eventUC, signupUC, podUC, translator, cfg)
	bot := &Bot{
		session: s,
		config:  cfg,
		handler: handler,
	}
	s.AddHandler(bot.handleInteraction)
	return bot, nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == "draft" {
			b.handler.HandleCommand(s, i)
		}
	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		switch {
		case customID == "create_draft_modal":
			b.handler.HandleCreateModalSubmit(s, i)
		case strings.HasPrefix(customID, "edit_draft_modal:"):
			b.handler.HandleEditModalSubmit(s, i, customID)
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, "signup_"):
			b.handler.HandleSignupButton(s, i, strings.TrimPrefix(customID, "signup_"))
		case strings.HasPrefix(customID, "select_remove_"):
			b.handler.HandleRemoveSelect(s, i, strings.TrimPrefix(customID, "select_remove_"))
		}
	}
}

// Start opens the session and registers the application commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	if _, err := b.session.ApplicationCommandCreate(
		b.session.State.User.ID, b.config.GuildID, draftCommand,
	); err != nil {
		log.Warn().Err(err).Msg("register /draft command")
	}

	log.Info().Msg("bot online")
	return nil
}

// Run drives the lifecycle sweep until ctx is cancelled, then closes the
// session.
func (b *Bot) Run(ctx context.Context) {
	defer b.session.Close()
	b.handler.RunScheduler(ctx, b.session)
}
