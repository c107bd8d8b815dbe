package diag

import "fmt"

// BatchItemError wraps a failure for one resource inside a batch run.
// The batch continues past it; the wrapper keeps the resource name
// attached for the final report.
type BatchItemError struct {
	Resource string
	Err      error
}

// Error implements the error interface
func (e *BatchItemError) Error() string {
	return fmt.Sprintf("%s: resource %s: %v", CodeBatchItemFailure, e.Resource, e.Err)
}

// Unwrap returns the underlying per-resource error
func (e *BatchItemError) Unwrap() error {
	return e.Err
}

// WrapBatchItem attaches a resource name to a per-item failure. A nil
// err passes through as nil.
func WrapBatchItem(resource string, err error) error {
	if err == nil {
		return nil
	}
	return &BatchItemError{Resource: resource, Err: err}
}
