package domain

import "errors"

// Domain error kinds. Repositories and use cases wrap these with
// fmt.Errorf("...: %w", ...) so the delivery layer can map them to
// HTTP statuses with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrPreconditionFailed = errors.New("precondition failed")
)
