package discord

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
	pkgdiscord "draftbot/pkg/discord"
)

// RunScheduler drives the time-based lifecycle transitions. Every tick it
// looks up the next upcoming event fresh (no cross-tick state) and executes
// whatever transitions are due — possibly several at once after downtime.
func (h *Handler) RunScheduler(ctx context.Context, s *discordgo.Session) {
	ticker := time.NewTicker(h.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.tick(ctx, s, time.Now())
		}
	}
}

func (h *Handler) tick(ctx context.Context, s *discordgo.Session, now time.Time) {
	// A stuck tick must not outlive its slot.
	ctx, cancel := context.WithTimeout(ctx, h.cfg.TickInterval)
	defer cancel()

	event, err := h.eventUseCase.FindNextUpcoming(ctx, h.cfg.GuildID, now)
	if err != nil {
		if !errors.Is(err, domain.ErrEventNotFound) {
			log.Error().Err(err).Msg("tick: find next upcoming event")
		}
		return
	}

	for _, transition := range domain.DueTransitions(event, now) {
		// Side effect first, guard persisted after: a failed persist leaves
		// the guard unset, so the next tick retries the whole step. Duplicate
		// notifications in that window are accepted.
		var err error
		switch transition {
		case domain.TransitionReminder:
			err = h.sendReminder(ctx, s, event, now)
		case domain.TransitionTentatives:
			err = h.pingTentatives(ctx, s, event, now)
		case domain.TransitionLock:
			err = h.lockEvent(ctx, s, event, now)
		case domain.TransitionComplete:
			err = h.completeEvent(ctx, s, event)
		}
		if err != nil {
			log.Error().Err(err).
				Str("guild", event.GuildID).Str("code", event.Code).
				Stringer("transition", transition).
				Msg("tick: transition failed, will retry next tick")
			continue
		}
		// Keep the in-memory view consistent for transitions later in the
		// same sweep.
		h.applyLocally(event, transition, now)
	}
}

func (h *Handler) applyLocally(event *entities.Event, transition domain.Transition, now time.Time) {
	switch transition {
	case domain.TransitionReminder:
		event.ReminderSentAt = now
	case domain.TransitionTentatives:
		event.TentativesPingedAt = now
	case domain.TransitionLock:
		event.Stage = int(domain.StageLocked)
	case domain.TransitionComplete:
		event.Stage = int(domain.StageComplete)
	}
}

// sendReminder posts the hour-before reminder mentioning everyone who has
// not declined, then sets the one-shot flag.
func (h *Handler) sendReminder(ctx context.Context, s *discordgo.Session, event *entities.Event, now time.Time) error {
	signups, err := h.signupUseCase.ListSignups(ctx, event.GuildID, event.Code)
	if err != nil {
		return err
	}
	content := pkgdiscord.BuildReminderContent(
		h.t("reminder.header", map[string]any{"Name": event.Name}), signups,
	)
	msg, err := s.ChannelMessageSend(event.ChannelID, content)
	if err != nil {
		return err
	}
	if err := h.eventUseCase.SetReminderMessage(ctx, event.GuildID, event.Code, msg.ID, now); err != nil {
		return err
	}
	h.redrawSignupMessage(ctx, s, event)
	return nil
}

// pingTentatives redraws the signup post (locking the Tentative button) and
// pings everyone still tentative, then sets the one-shot flag.
func (h *Handler) pingTentatives(ctx context.Context, s *discordgo.Session, event *entities.Event, now time.Time) error {
	signups, err := h.signupUseCase.ListSignups(ctx, event.GuildID, event.Code)
	if err != nil {
		return err
	}

	messageID := ""
	if content := pkgdiscord.BuildTentativePingContent(h.t("tentative.ping", nil), signups); content != "" {
		msg, err := s.ChannelMessageSend(event.ChannelID, content)
		if err != nil {
			return err
		}
		messageID = msg.ID
	}
	if err := h.eventUseCase.SetTentativePingMessage(ctx, event.GuildID, event.Code, messageID, now); err != nil {
		return err
	}
	event.TentativesPingedAt = now
	h.redrawSignupMessage(ctx, s, event)
	return nil
}

// lockEvent runs the at-start transition: host guide, odd-count minutemage
// call, redraw with playing statuses locked, stage advance.
func (h *Handler) lockEvent(ctx context.Context, s *discordgo.Session, event *entities.Event, now time.Time) error {
	if _, err := s.ChannelMessageSend(h.cfg.HostChannelID,
		h.t("host.guide", map[string]any{"Code": event.Code}),
	); err != nil {
		return err
	}

	playing, err := h.signupUseCase.ConfirmedPlaying(ctx, event.GuildID, event.Code)
	if err != nil {
		return err
	}
	if len(playing)%2 == 1 {
		if err := h.callMinutemage(ctx, s, event); err != nil {
			return err
		}
	}

	if err := h.eventUseCase.AdvanceStage(ctx, event.GuildID, event.Code, domain.StageLocked); err != nil {
		return err
	}
	event.Stage = int(domain.StageLocked)
	h.redrawSignupMessage(ctx, s, event)
	return nil
}

// callMinutemage picks one declared volunteer at random, or falls back to
// broadcasting to the minutemage role when nobody volunteered.
func (h *Handler) callMinutemage(ctx context.Context, s *discordgo.Session, event *entities.Event) error {
	volunteers, err := h.signupUseCase.Minutemages(ctx, event.GuildID, event.Code)
	if err != nil {
		return err
	}
	var content string
	if chosen := domain.ChooseMinutemage(volunteers, rand.Intn); chosen != "" {
		content = h.t("minutemage.call", map[string]any{"Mention": "<@" + chosen + ">"})
	} else {
		content = h.t("minutemage.broadcast", map[string]any{"Role": "<@&" + h.cfg.MinutemageRoleID + ">"})
	}
	_, err = s.ChannelMessageSend(event.ChannelID, content)
	return err
}

// completeEvent tears the public posts down and closes out the lifecycle.
func (h *Handler) completeEvent(ctx context.Context, s *discordgo.Session, event *entities.Event) error {
	deletePresentationPosts(s, event)
	if err := h.eventUseCase.ClearPosts(ctx, event.GuildID, event.Code); err != nil {
		return err
	}
	if err := h.eventUseCase.AdvanceStage(ctx, event.GuildID, event.Code, domain.StageComplete); err != nil {
		return err
	}
	h.forgetRedrawLock(event.SignupMessageID)
	return nil
}
