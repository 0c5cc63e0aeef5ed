package domain

import "errors"

// ErrContextNotFound is returned when no flow state has been stored for a user.
var ErrContextNotFound = errors.New("context not found")

// ErrInvalidFlowState is returned when a value is not one of the known flow states.
var ErrInvalidFlowState = errors.New("invalid flow state")
