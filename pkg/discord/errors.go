package discord

import (
	"errors"

	"draftbot/internal/application"
	"draftbot/internal/domain"
)

// MessageKey maps an error to the i18n key of its user-facing message.
// Validation errors carry their own key; domain errors map here; anything
// else is an internal error (logged by the caller, generic notice shown).
func MessageKey(err error) string {
	if err == nil {
		return ""
	}
	var ve *application.ValidationError
	if errors.As(err, &ve) {
		return ve.Key
	}
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return "error.event_not_found"
	case errors.Is(err, domain.ErrEventExists):
		return "error.event_exists"
	case errors.Is(err, domain.ErrEventAlreadyPosted):
		return "error.already_posted"
	case errors.Is(err, domain.ErrEventNotPosted):
		return "error.not_posted"
	case errors.Is(err, domain.ErrEventNotStarted):
		return "error.not_started"
	case errors.Is(err, domain.ErrDateTimeInPast):
		return "error.datetime_in_past"
	case errors.Is(err, domain.ErrSignupNotFound):
		return "error.signup_not_found"
	case errors.Is(err, domain.ErrNotHost):
		return "error.not_host"
	case errors.Is(err, domain.ErrTooFewPlayers):
		return "error.too_few"
	case errors.Is(err, domain.ErrTooManyPlayers):
		return "error.too_many"
	case errors.Is(err, domain.ErrOddPlayerCount):
		return "error.odd_count"
	}
	return "error.internal"
}
