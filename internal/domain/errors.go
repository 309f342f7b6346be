package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventExists        = errors.New("event already exists")
	ErrEventAlreadyPosted = errors.New("event already posted")
	ErrEventNotPosted     = errors.New("event not posted")
	ErrEventNotStarted    = errors.New("event not started")
	ErrDateTimeInPast     = errors.New("start time must be in the future")
	ErrSignupNotFound     = errors.New("signup not found")
	ErrNotHost            = errors.New("only the event host can do that")
	ErrTooFewPlayers      = errors.New("not enough confirmed players")
	ErrTooManyPlayers     = errors.New("too many confirmed players")
	ErrOddPlayerCount     = errors.New("odd number of confirmed players")
	ErrUnknownStatus      = errors.New("unknown signup status")
)
