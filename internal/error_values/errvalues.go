package errorvalues

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrUserExists       = errors.New("username already taken")
	ErrUserNotFound     = errors.New("unknown userId")
	ErrMissingUserID    = errors.New("userId is required")
	ErrActivityNotFound = errors.New("activity doesn't exist")
)

// Error kinds reported to API clients.
const (
	KindValidation    = "ValidationError"
	KindConflict      = "Conflict"
	KindUnknownUser   = "UnknownUser"
	KindMissingUserID = "MissingUserId"
	KindStoreFailure  = "StoreFailure"
)

// KindOf classifies err. Anything that is not a known sentinel is a store failure.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidDate):
		return KindValidation
	case errors.Is(err, ErrMissingUserID):
		return KindMissingUserID
	case errors.Is(err, ErrUserNotFound):
		return KindUnknownUser
	case errors.Is(err, ErrUserExists):
		return KindConflict
	default:
		return KindStoreFailure
	}
}
