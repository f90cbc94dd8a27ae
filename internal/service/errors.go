package service

import "errors"

var (
	ErrInvalidArgument      = errors.New("invalid counter name")
	ErrStoreUnavailable     = errors.New("counter store unavailable")
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
