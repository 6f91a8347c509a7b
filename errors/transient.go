package errors

type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }

func (e *transientError) Unwrap() error { return e.err }

// Transient marks an error as retryable by the caller. The engine itself never
// retries generation; it only reports whether a retry is safe.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err (or any error it wraps) was marked transient.
func IsTransient(err error) bool {
	var te *transientError
	return As(err, &te)
}
