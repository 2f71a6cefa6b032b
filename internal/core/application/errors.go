package application

import (
	"errors"
	"fmt"

	"github.com/coinwarden/signerd/internal/core/domain"
)

var (
	// ErrRequestNotFound is returned when approving a signing request whose
	// id was never submitted or was already resolved.
	ErrRequestNotFound = fmt.Errorf("%w: request not found", domain.ErrState)
	// ErrRequestAlreadyPending is returned when a request id is submitted
	// twice while the first submission is still awaiting a decision.
	ErrRequestAlreadyPending = fmt.Errorf("%w: request already pending", domain.ErrState)
	// ErrUserRejected is delivered to the requester when the user declines
	// to sign.
	ErrUserRejected = errors.New("user rejected the signing request")
)
