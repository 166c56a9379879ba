package utils

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Error kinds. Every error a service returns unwraps to exactly one of these,
// HandleServiceError maps them to status codes.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// ServiceError carries a kind, a message that is safe to show to the client
// and optionally the underlying cause, which is only logged.
type ServiceError struct {
	Kind    error
	Message string
	Details map[string]interface{}
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Kind
}

func NewServiceError(kind error, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns a copy of the error carrying extra response data.
func (e *ServiceError) WithDetails(details map[string]interface{}) *ServiceError {
	cp := *e
	cp.Details = details
	return &cp
}

func Validation(format string, args ...interface{}) error {
	return NewServiceError(ErrValidation, format, args...)
}

// Internal hides cause from the client. The cause keeps a stack trace for
// the log line written by HandleServiceError.
func Internal(cause error, message string) error {
	return &ServiceError{Kind: ErrInternal, Message: message, Cause: pkgerrors.WithStack(cause)}
}

var (
	ErrInvalidCredentials = NewServiceError(ErrForbidden, "invalid email or password")
	ErrEmailAlreadyExists = NewServiceError(ErrConflict, "email already registered")
	ErrUserNotFound       = NewServiceError(ErrNotFound, "user not found")
	ErrAthleteNotFound    = NewServiceError(ErrNotFound, "athlete not found")
	ErrCoachNotFound      = NewServiceError(ErrNotFound, "coach not found")
	ErrLinkNotFound       = NewServiceError(ErrNotFound, "link not found")
	ErrNotLinkParty       = NewServiceError(ErrForbidden, "you are not a party to this link")
	ErrNotLinkCoach       = NewServiceError(ErrForbidden, "link belongs to another coach")
	ErrSelfLink           = NewServiceError(ErrValidation, "cannot link a user to themself")
	ErrRunnerOnly         = NewServiceError(ErrForbidden, "only runners can perform this action")
	ErrCoachOnly          = NewServiceError(ErrForbidden, "only coaches can perform this action")
	ErrAccessDenied       = NewServiceError(ErrForbidden, "not authorized to access this athlete's data")
	ErrNotOwner           = NewServiceError(ErrForbidden, "resource belongs to another user")
	ErrActivityNotFound   = NewServiceError(ErrNotFound, "activity not found")
	ErrCommentNotFound    = NewServiceError(ErrNotFound, "comment not found")
	ErrDiaryNotFound      = NewServiceError(ErrNotFound, "diary entry not found")
	ErrDietLogNotFound    = NewServiceError(ErrNotFound, "diet log not found")
	ErrGoalNotFound       = NewServiceError(ErrNotFound, "goal not found")
	ErrNoteNotFound       = NewServiceError(ErrNotFound, "training note not found")
	ErrStravaNotLinked    = NewServiceError(ErrValidation, "strava account is not connected")
	ErrStravaDisabled     = NewServiceError(ErrValidation, "strava integration is not configured")
	ErrInvalidOAuthState  = NewServiceError(ErrValidation, "invalid or expired oauth state")
	ErrInvalidResetToken  = NewServiceError(ErrValidation, "invalid or expired reset token")
)
