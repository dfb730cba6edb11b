package tui

import "errors"

// ErrMissingPackService is returned when the pack service is not provided.
var ErrMissingPackService = errors.New("tui: pack service is required")

// ErrMissingComposeService is returned when the compose service is not provided.
var ErrMissingComposeService = errors.New("tui: compose service is required")
