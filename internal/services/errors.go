package services

import (
	"errors"
	"fmt"
)

// Error kinds the pipeline distinguishes. Template and configuration problems
// abort an action without retry; an unparsable ATS result is a valid outcome,
// not a failure; a failed export leaves the generated content intact.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrMissingVariable  = errors.New("missing template variable")
	ErrConfiguration    = errors.New("configuration error")
	ErrUnparsableResult = errors.New("response is not valid JSON")
	ErrExport           = errors.New("export write failed")
)

// GenerationError reports an unrecoverable remote generation failure after the
// retry budget was exhausted (or immediately, for non-transient errors).
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
