package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidSchema indicates a schema document that is not a well-formed pack.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrUnsupportedSource indicates a pack reference with an unknown scheme.
	ErrUnsupportedSource = errors.New("unsupported pack source")

	// ErrRateLimited indicates the remote API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrTemplateNotFound indicates a named template does not exist in a pack.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrSelectionConflict indicates a selection set where one selection
	// excludes another.
	ErrSelectionConflict = errors.New("conflicting selections")
)
