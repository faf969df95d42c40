package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFileRequired     = errors.New("file_required")
	ErrPayloadTooLarge  = errors.New("payload_too_large")
	ErrMalformedFile    = errors.New("malformed_file")
	ErrClearFailed      = errors.New("clear_failed")
	ErrIngestInProgress = errors.New("ingest_in_progress")
)

// BatchInsertError reports the batch that failed and how many rows were
// stored before it. Earlier batches are not rolled back.
type BatchInsertError struct {
	Index    int
	Offset   int
	Inserted int
	Err      error
}

func (e *BatchInsertError) Error() string {
	return fmt.Sprintf("insert batch %d (rows from %d, %d already inserted): %v", e.Index, e.Offset, e.Inserted, e.Err)
}

func (e *BatchInsertError) Unwrap() error {
	return e.Err
}
