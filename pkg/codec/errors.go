package codec

import "errors"

var (
	// ErrInvalidBase58Char is returned when decoding a string containing a
	// character outside the bitcoin base58 alphabet.
	ErrInvalidBase58Char = errors.New("invalid base58 character")
	// ErrInvalidWIFLength is returned when a decoded WIF payload is not a
	// 32-byte secret key, with or without the compressed-key flag.
	ErrInvalidWIFLength = errors.New("invalid WIF payload length")
)
