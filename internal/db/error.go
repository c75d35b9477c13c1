package db

import "errors"

// DuplicateKeyError is returned when a document that must be unique already
// exists.
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func IsDuplicateKeyError(err error) bool {
	var duplicate *DuplicateKeyError
	return errors.As(err, &duplicate)
}

// NotFoundError is returned when a requested document does not exist
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
