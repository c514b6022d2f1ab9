package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors with
// resource-specific messages.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
