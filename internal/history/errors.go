package history

import "fmt"

// StorageError reports a failed read or write against the backing store.
// Message is safe to show to end users.
type StorageError struct {
	Op      string
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func newStorageError(op string, cause error) *StorageError {
	msg := "failed to save analysis: storage may be full"
	switch op {
	case opRemove:
		msg = "failed to delete analysis"
	case opClear:
		msg = "failed to clear history"
	case opUpdate:
		msg = "failed to update analysis: storage may be full"
	}
	return &StorageError{Op: op, Message: msg, Cause: cause}
}

// newReadError reports that op was abandoned because the collection could not be read.
func newReadError(op string, cause error) *StorageError {
	return &StorageError{Op: op, Message: "failed to read history: storage unavailable", Cause: cause}
}
