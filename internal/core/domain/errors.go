package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the root of every request-shape failure; concrete
	// errors wrap it so callers can match the whole category.
	ErrValidation = errors.New("invalid request")
	// ErrState is the root of every wrong-lifecycle failure, such as
	// operating on a locked wallet or an unknown request id.
	ErrState = errors.New("invalid state")

	// ErrPasswordTooShort ...
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLen)
	// ErrMalformedWIF ...
	ErrMalformedWIF = fmt.Errorf("%w: malformed WIF secret", ErrValidation)
	// ErrAccountAlreadyExists ...
	ErrAccountAlreadyExists = fmt.Errorf("%w: account already exists", ErrValidation)
	// ErrEmptyAccountName ...
	ErrEmptyAccountName = fmt.Errorf("%w: account name must not be empty", ErrValidation)
	// ErrAccountIndexOutOfRange ...
	ErrAccountIndexOutOfRange = fmt.Errorf("%w: account index out of range", ErrValidation)
	// ErrLastAccount ...
	ErrLastAccount = fmt.Errorf("%w: cannot delete the only account", ErrValidation)

	// ErrWalletLocked ...
	ErrWalletLocked = fmt.Errorf("%w: wallet is locked", ErrState)
	// ErrNoAccounts is returned when unlocking a wallet that has no
	// accounts yet.
	ErrNoAccounts = fmt.Errorf("%w: wallet has no accounts", ErrState)
	// ErrSwitchIndexOutOfRange keeps account switching in the state
	// category: the index names a slot that does not exist right now.
	ErrSwitchIndexOutOfRange = fmt.Errorf("%w: account index out of range", ErrState)
)
