// Package vault implements password-based authenticated encryption for
// secret key material kept at rest. Blobs are self-contained: a fresh random
// salt and nonce are drawn on every call, so encrypting the same plaintext
// twice under the same password yields different ciphertexts.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen  = 16
	nonceLen = 12
	keyLen   = 32

	// Iteration count for PBKDF2-HMAC-SHA256 key stretching.
	pbkdf2Iterations = 100_000
)

var (
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("text to encrypt must not be null")
	// ErrNullPassword ...
	ErrNullPassword = errors.New("password must not be null")
	// ErrInvalidCipherText is returned when a blob is not base64 or is too
	// short to contain salt, nonce and ciphertext.
	ErrInvalidCipherText = errors.New("cipher text is malformed")
	// ErrAuthentication is returned whenever the GCM tag does not verify.
	// A wrong password and a corrupted blob are deliberately reported the
	// same way so the error gives no oracle for password guessing.
	ErrAuthentication = errors.New("incorrect password or corrupted data")
)

// EncryptOpts is the struct given to the Encrypt method.
type EncryptOpts struct {
	PlainText string
	Password  string
}

func (o EncryptOpts) validate() error {
	if len(o.PlainText) <= 0 {
		return ErrNullPlainText
	}
	if len(o.Password) <= 0 {
		return ErrNullPassword
	}
	return nil
}

// Encrypt encrypts the plaintext with AES-256-GCM under a key derived from
// the password. The returned blob is base64(salt || nonce || ciphertext+tag).
func Encrypt(opts EncryptOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	gcm, err := newGCM(opts.Password, salt)
	if err != nil {
		return "", err
	}

	blob := make([]byte, 0, saltLen+nonceLen+len(opts.PlainText)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, []byte(opts.PlainText), nil)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptOpts is the struct given to the Decrypt method.
type DecryptOpts struct {
	CipherText string
	Password   string
}

func (o DecryptOpts) validate() error {
	if len(o.CipherText) <= 0 {
		return ErrInvalidCipherText
	}
	if len(o.Password) <= 0 {
		return ErrNullPassword
	}
	return nil
}

// Decrypt reverses Encrypt for the matching password. Any tag verification
// failure is reported as ErrAuthentication.
func Decrypt(opts DecryptOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	blob, err := base64.StdEncoding.DecodeString(opts.CipherText)
	if err != nil {
		return "", ErrInvalidCipherText
	}
	if len(blob) < saltLen+nonceLen {
		return "", ErrInvalidCipherText
	}

	salt, nonce, cipherText :=
		blob[:saltLen], blob[saltLen:saltLen+nonceLen], blob[saltLen+nonceLen:]

	gcm, err := newGCM(opts.Password, salt)
	if err != nil {
		return "", err
	}

	plainText, err := gcm.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return "", ErrAuthentication
	}
	return string(plainText), nil
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLen, sha256.New)

	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("initializing cipher: %w", err)
	}
	return cipher.NewGCM(blockCipher)
}
