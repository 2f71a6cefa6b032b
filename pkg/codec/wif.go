package codec

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/coinwarden/signerd/pkg/hashutil"
)

const secretKeyLen = 32

// Version prefix for mainnet WIF secret keys.
const wifVersion = 0x80

// DecodeWIF extracts the raw 32-byte secret key from a wallet-import-format
// string. The layout is version byte, 32-byte key, optional compressed-key
// flag, 4-byte checksum. The checksum is stripped without being verified:
// a corrupted key surfaces later as a decrypt or signing failure, never as a
// different account's key.
func DecodeWIF(wif string) ([]byte, error) {
	decoded, err := Base58Decode(wif)
	if err != nil {
		return nil, err
	}
	if len(decoded) < 1+secretKeyLen+4 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidWIFLength, len(decoded))
	}

	// Strip version prefix and checksum suffix.
	payload := decoded[1 : len(decoded)-4]
	switch len(payload) {
	case secretKeyLen:
		return payload, nil
	case secretKeyLen + 1:
		// Last byte flags a compressed public key; the key itself is the
		// same 32 bytes.
		return payload[:secretKeyLen], nil
	default:
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidWIFLength, len(payload))
	}
}

// EncodeWIF renders a 32-byte secret key in wallet import format with the
// compressed-key flag set.
func EncodeWIF(secret []byte) (string, error) {
	if len(secret) != secretKeyLen {
		return "", fmt.Errorf("%w: got %d bytes", ErrInvalidWIFLength, len(secret))
	}

	payload := make([]byte, 0, 1+secretKeyLen+1+4)
	payload = append(payload, wifVersion)
	payload = append(payload, secret...)
	payload = append(payload, 0x01)
	payload = append(payload, hashutil.DoubleSha256(payload)[:4]...)
	return base58.Encode(payload), nil
}
