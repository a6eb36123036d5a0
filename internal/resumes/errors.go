package resumes

import "fmt"

// Pipeline stage names, in execution order. A failed analysis reports
// the stage it halted at.
const (
	StageUpload   = "upload"
	StageConvert  = "convert"
	StagePreview  = "preview"
	StageSave     = "save"
	StageAnalyze  = "analyze"
	StageExtract  = "extract"
	StageParse    = "parse"
	StageValidate = "validate"
	StagePersist  = "persist"
)

// StageError reports which pipeline stage halted and a user-facing
// status message. Err carries the underlying cause for logs.
type StageError struct {
	Stage  string
	Status string
	Err    error
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("pipeline stage %s: %s", e.Stage, e.Status)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage, status string, err error) *StageError {
	return &StageError{Stage: stage, Status: status, Err: err}
}

// ValidationError reports rejected analysis input. Field names the
// offending form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
