package workflow

import "errors"

var (
	// ErrInvalidRole is returned when an owner role is not INTERN, ADMIN, MANAGER or VENDOR
	ErrInvalidRole = errors.New("owner_role must be one of INTERN, ADMIN, MANAGER, VENDOR")

	// ErrEmptyStage is returned when a stage label normalizes to nothing
	ErrEmptyStage = errors.New("stage must not be empty")
)
