// Package codec implements the textual and binary encodings the signing
// engine relies on: base58 decoding, WIF secret-key decoding and DER
// signature assembly.
package codec

import (
	"fmt"
	"math/big"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var base58Index = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i, c := range base58Alphabet {
		idx[c] = int8(i)
	}
	return idx
}()

// Base58Decode decodes a base58 string into the minimal big-endian byte
// representation of its integer value. Any character outside the bitcoin
// alphabet makes the whole string invalid.
func Base58Decode(s string) ([]byte, error) {
	value := new(big.Int)
	radix := big.NewInt(58)
	for i := 0; i < len(s); i++ {
		digit := base58Index[s[i]]
		if digit < 0 {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidBase58Char, s[i], i)
		}
		value.Mul(value, radix)
		value.Add(value, big.NewInt(int64(digit)))
	}
	return value.Bytes(), nil
}
