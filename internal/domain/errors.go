package domain

import "errors"

// Error kinds. Every error returned by the game service wraps exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not authorized")
	ErrInvalidState = errors.New("invalid state")
	ErrExhausted    = errors.New("exhausted")
)

var (
	// ErrRoomNotFound is returned when a room code does not resolve.
	ErrRoomNotFound = wrap(ErrNotFound, "room not found")
	// ErrPlayerNotFound is returned when a player id is not registered in the room.
	ErrPlayerNotFound = wrap(ErrNotFound, "player not found")
	// ErrNotHost is returned when a non-host attempts a host-only transition.
	ErrNotHost = wrap(ErrUnauthorized, "only the host can do this")
	// ErrAlreadyStarted is returned when joining or starting a room that left the lobby.
	ErrAlreadyStarted = wrap(ErrInvalidState, "game already started or finished")
	// ErrGameNotStarted is returned for in-game operations outside the playing phase.
	ErrGameNotStarted = wrap(ErrInvalidState, "game not started")
	// ErrNoMoreQuestions is returned when the cursor is past the end of the bank.
	ErrNoMoreQuestions = wrap(ErrExhausted, "no more questions")
	// ErrNicknameRequired indicates a blank nickname.
	ErrNicknameRequired = wrap(ErrValidation, "nickname is required")
	// ErrNicknameTooLong indicates a nickname above MaxNicknameLength runes.
	ErrNicknameTooLong = wrap(ErrValidation, "nickname is too long")
	// ErrRoomCodeRequired indicates a blank room code.
	ErrRoomCodeRequired = wrap(ErrValidation, "room code is required")
	// ErrInvalidAnswer indicates an option index or elapsed time out of range.
	ErrInvalidAnswer = wrap(ErrValidation, "invalid answer")
	// ErrInvalidRequest indicates a request body or parameter that could not be decoded.
	ErrInvalidRequest = wrap(ErrValidation, "invalid request")
)

type kindError struct {
	kind error
	msg  string
}

func wrap(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// Kind names the error kind of err, or "internal" when err wraps none of the known kinds.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrExhausted):
		return "exhausted"
	default:
		return "internal"
	}
}
