package api

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrBackpressure    = errors.New("analysis queue is full, retry later")
	ErrInvalidTopParam = errors.New("top must be a positive integer")
)
