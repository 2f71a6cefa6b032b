// Package hashutil exposes the digest combinations used across the daemon:
// single and double SHA-256 and the 20-byte hash160 used by P2PKH scripts.
package hashutil

import (
	"crypto/sha256"

	"github.com/coinwarden/signerd/pkg/ripemd160"
)

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// DoubleSha256 returns SHA256(SHA256(data)), the digest convention used for
// transaction hashing and base58check checksums.
func DoubleSha256(data []byte) []byte {
	return Sha256(Sha256(data))
}

// Hash160 returns RIPEMD160(SHA256(data)).
func Hash160(data []byte) []byte {
	sum := ripemd160.Sum(Sha256(data))
	return sum[:]
}
