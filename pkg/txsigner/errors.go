package txsigner

import "errors"

var (
	// ErrMalformedTransaction is returned when raw transaction bytes cannot
	// be decoded: truncated buffers, bad hex, or field lengths running past
	// the end of the payload.
	ErrMalformedTransaction = errors.New("malformed transaction")
	// ErrInvalidSecretKey is returned when the secret key is not 32 bytes.
	ErrInvalidSecretKey = errors.New("secret key must be 32 bytes")
	// ErrInputIndexOutOfRange ...
	ErrInputIndexOutOfRange = errors.New("input index out of range")
	// ErrSigning is returned when the underlying curve primitive rejects the
	// signing request.
	ErrSigning = errors.New("signing primitive failure")
)
