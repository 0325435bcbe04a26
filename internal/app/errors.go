package service

import (
	"errors"
	"fmt"
)

// Pipeline stages, used in diagnostics and metrics labels.
const (
	StageTemplates = "templates"
	StageLoad      = "load"
	StagePartition = "partition"
	StageCompose   = "compose"
	StageAssemble  = "assemble"
	StageWrite     = "write"
)

// ErrNotConfigured is returned when a required component is missing.
var ErrNotConfigured = errors.New("service not configured")

// StageError tags a pipeline failure with the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FailedStage returns the stage of the first StageError in err's chain.
func FailedStage(err error) (string, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
