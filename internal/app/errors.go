package app

import (
	"errors"
	"fmt"
)

// Validation failures. Reported before any collaborator call is made.
var (
	ErrEmptyDocument = errors.New("document contains no extractable text")
	ErrEmptyQuestion = errors.New("question is empty")
)

// ServiceError wraps a collaborator failure with the pipeline stage that
// produced it ("embedding", "retrieval", "generation", "store"). The
// request that hit it is aborted; nothing is retried.
type ServiceError struct {
	Stage string
	Err   error
}

func (e *ServiceError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IngestError is a ServiceError that additionally reports how many batches
// were committed before the failure. There is no rollback: those batches
// stay in the index, and callers decide whether to resume or discard.
type IngestError struct {
	Stage          string
	BatchesWritten int
	Err            error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("%s failed after %d batches: %v", e.Stage, e.BatchesWritten, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}
