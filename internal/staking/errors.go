package staking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
)

var (
	ErrUnauthorized               = errors.New("unauthorized")
	ErrDisabled                   = errors.New("staking is disabled")
	ErrInvalidInput               = errors.New("invalid input")
	ErrUnacceptableToken          = errors.New("unacceptable token")
	ErrStakingRecordIndexOverflow = errors.New("staking record index overflow")
	ErrStakingRecordNotFound      = errors.New("staking record not found")
	ErrNotEnoughReward            = errors.New("not enough reward")
	ErrNotEnoughStake             = errors.New("not enough stake")
	ErrCannotMigrate              = errors.New("cannot migrate")
	ErrOverflow                   = errors.New("arithmetic overflow")
	ErrNotInitialized             = errors.New("ledger is not initialized")
	ErrAlreadyInitialized         = errors.New("ledger is already initialized")
)

type errorClass struct {
	status int
	code   types.ErrorCode
}

var errorClasses = map[error]errorClass{
	ErrUnauthorized:               {http.StatusForbidden, types.Unauthorized},
	ErrDisabled:                   {http.StatusForbidden, types.Disabled},
	ErrInvalidInput:               {http.StatusBadRequest, types.InvalidInput},
	ErrUnacceptableToken:          {http.StatusBadRequest, types.UnacceptableToken},
	ErrStakingRecordIndexOverflow: {http.StatusNotFound, types.StakingRecordIndexOverflow},
	ErrStakingRecordNotFound:      {http.StatusNotFound, types.StakingRecordNotFound},
	ErrNotEnoughReward:            {http.StatusConflict, types.NotEnoughReward},
	ErrNotEnoughStake:             {http.StatusConflict, types.NotEnoughStake},
	ErrCannotMigrate:              {http.StatusBadRequest, types.CannotMigrate},
	ErrOverflow:                   {http.StatusUnprocessableEntity, types.Overflow},
	ErrNotInitialized:             {http.StatusPreconditionFailed, types.NotInitialized},
	ErrAlreadyInitialized:         {http.StatusConflict, types.AlreadyInitialized},
}

// newError wraps one of the sentinel errors above into a *types.Error,
// optionally with detail appended to the message.
func newError(sentinel error, format string, args ...any) *types.Error {
	class, ok := errorClasses[sentinel]
	if !ok {
		return types.NewInternalServiceError(sentinel)
	}

	err := sentinel
	if format != "" {
		err = fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
	}

	return types.NewError(class.status, class.code, err)
}

func internalError(msg string, err error) *types.Error {
	return types.NewInternalServiceError(fmt.Errorf("%s: %w", msg, err))
}

// overflowError classifies an arithmetic failure already wrapping ErrOverflow.
func overflowError(err error) *types.Error {
	class := errorClasses[ErrOverflow]
	return types.NewError(class.status, class.code, err)
}
