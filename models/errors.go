package models

import "errors"

// Failure kinds surfaced by repositories and the transaction manager. Callers
// wrap them with context via fmt.Errorf("%w: ...") and the transport layer maps
// them to status codes; storage failures carry database.ErrStoreUnavailable.
var (
	ErrNotFound         = errors.New("record not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
)
