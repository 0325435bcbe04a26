package repository

import "errors"

// Sentinel kinds for collection loading errors.
var (
	ErrLoad         = errors.New("load event collection failed")
	ErrNotSequence  = errors.New("collection is not a sequence")
	ErrTrailingData = errors.New("unexpected data after collection")
	ErrKeyCase      = errors.New("field name has the wrong case")
)
