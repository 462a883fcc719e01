package internal

import "errors"

// Failure taxonomy shared across the module. Callers match with errors.Is.
var (
	// ErrOracleUnavailable covers transport, auth, and timeout failures
	// reaching the generative model. Retryable from the client's side.
	ErrOracleUnavailable = errors.New("model oracle unavailable")

	// ErrParseFailure means the oracle reply carried no decodable payload.
	ErrParseFailure = errors.New("could not parse oracle reply")

	// ErrSchemaViolation means the payload decoded but breaks the goal
	// schema (milestone/subtask cardinality, field typing).
	ErrSchemaViolation = errors.New("goal schema violation")

	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

func (e *AppError) Error() string { return e.Message }
