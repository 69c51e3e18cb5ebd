package game

import "fmt"

// ErrorCode is the closed set of realtime validation error codes.
type ErrorCode string

const (
	ErrInvalidAction     ErrorCode = "INVALID_ACTION"
	ErrNotYourTurn       ErrorCode = "NOT_YOUR_TURN"
	ErrInsufficientChips ErrorCode = "INSUFFICIENT_CHIPS"
	ErrTableFull         ErrorCode = "TABLE_FULL"
	ErrBuyinOutOfRange   ErrorCode = "BUYIN_OUT_OF_RANGE"
	ErrAlreadySeated     ErrorCode = "ALREADY_SEATED"
	ErrAuthExpired       ErrorCode = "AUTH_EXPIRED"
)

// CommandError is a synchronous, side-effect-free validation rejection.
// Callers must treat it as authoritative "nothing happened".
type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func rejectf(code ErrorCode, format string, args ...any) *CommandError {
	return &CommandError{Code: code, Message: fmt.Sprintf(format, args...)}
}
