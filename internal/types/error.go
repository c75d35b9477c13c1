package types

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError       ErrorCode = "INTERNAL_SERVICE_ERROR"
	ValidationError            ErrorCode = "VALIDATION_ERROR"
	NotFound                   ErrorCode = "NOT_FOUND"
	BadRequest                 ErrorCode = "BAD_REQUEST"
	Unauthorized               ErrorCode = "UNAUTHORIZED"
	Disabled                   ErrorCode = "DISABLED"
	InvalidInput               ErrorCode = "INVALID_INPUT"
	UnacceptableToken          ErrorCode = "UNACCEPTABLE_TOKEN"
	StakingRecordIndexOverflow ErrorCode = "STAKING_RECORD_INDEX_OVERFLOW"
	StakingRecordNotFound      ErrorCode = "STAKING_RECORD_NOT_FOUND"
	NotEnoughReward            ErrorCode = "NOT_ENOUGH_REWARD"
	NotEnoughStake             ErrorCode = "NOT_ENOUGH_STAKE"
	CannotMigrate              ErrorCode = "CANNOT_MIGRATE"
	Overflow                   ErrorCode = "OVERFLOW"
	NotInitialized             ErrorCode = "NOT_INITIALIZED"
	AlreadyInitialized         ErrorCode = "ALREADY_INITIALIZED"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error is returned by the service and contract layers. StatusCode is the
// HTTP status the API responds with.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}

// AsError returns err as *Error, wrapping anything else as an internal
// service error. A nil err yields nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return NewInternalServiceError(err)
}
