package model

import "errors"

// Sentinel kinds for decoding errors.
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidTip   = errors.New("invalid tip")
)
