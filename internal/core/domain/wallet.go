package domain

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/coinwarden/signerd/pkg/codec"
	"github.com/coinwarden/signerd/pkg/txsigner"
	"github.com/coinwarden/signerd/pkg/vault"
)

const (
	// MinPasswordLen is the minimum accepted password length.
	MinPasswordLen = 8

	wifUncompressedLen = 51
	wifCompressedLen   = 52
)

// Wallet is the aggregate owning the account list, the current-account
// cursor and the single unlocked slot. The unexported secret is the only
// place raw key material may live, it is never serialized, and it always
// belongs to the account at CurrentIndex.
type Wallet struct {
	Accounts     []Account `json:"accounts"`
	CurrentIndex int       `json:"currentAccountIndex"`

	currentSecret []byte
}

// NewWallet returns an empty, locked wallet.
func NewWallet() *Wallet {
	return &Wallet{Accounts: []Account{}}
}

// IsInitialized reports whether at least one account exists.
func (w *Wallet) IsInitialized() bool {
	return len(w.Accounts) > 0
}

// IsUnlocked reports whether the current account's secret is held in memory.
func (w *Wallet) IsUnlocked() bool {
	return w.currentSecret != nil
}

// Clone returns a deep copy, including the unlocked slot. The wallet service
// mutates a clone and only adopts it once the storage write succeeded.
func (w *Wallet) Clone() *Wallet {
	accounts := make([]Account, len(w.Accounts))
	copy(accounts, w.Accounts)

	var secret []byte
	if w.currentSecret != nil {
		secret = append([]byte{}, w.currentSecret...)
	}
	return &Wallet{
		Accounts:      accounts,
		CurrentIndex:  w.CurrentIndex,
		currentSecret: secret,
	}
}

// CurrentAccount returns the account selected by CurrentIndex.
func (w *Wallet) CurrentAccount() (Account, error) {
	if !w.IsInitialized() {
		return Account{}, ErrNoAccounts
	}
	return w.Accounts[w.CurrentIndex], nil
}

// Secret returns the raw secret key of the current account. Callers must not
// retain the slice beyond the operation they need it for.
func (w *Wallet) Secret() ([]byte, error) {
	if !w.IsUnlocked() {
		return nil, ErrWalletLocked
	}
	return w.currentSecret, nil
}

// CreateAccount generates a fresh secret key, encrypts it under the password
// and appends the account with a sequential label. The new account becomes
// current and unlocked.
func (w *Wallet) CreateAccount(password string, net *chaincfg.Params) (Account, error) {
	if len(password) < MinPasswordLen {
		return Account{}, ErrPasswordTooShort
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return Account{}, fmt.Errorf("generating secret key: %w", err)
	}

	wif, err := codec.EncodeWIF(secret)
	if err != nil {
		return Account{}, err
	}
	address, err := txsigner.AddressFromSecret(secret, net)
	if err != nil {
		return Account{}, err
	}

	account, err := w.appendAccount(address, wif, password)
	if err != nil {
		return Account{}, err
	}
	w.CurrentIndex = len(w.Accounts) - 1
	w.currentSecret = secret
	return account, nil
}

// ImportAccount encrypts a caller-supplied WIF secret and appends it under
// the caller-supplied address. The address is trusted as-is: it is not
// re-derived from the secret. The imported account becomes current and
// unlocked.
func (w *Wallet) ImportAccount(address, wifSecret, password string) (Account, error) {
	if len(password) < MinPasswordLen {
		return Account{}, ErrPasswordTooShort
	}
	if len(wifSecret) != wifUncompressedLen && len(wifSecret) != wifCompressedLen {
		return Account{}, ErrMalformedWIF
	}
	secret, err := codec.DecodeWIF(wifSecret)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrMalformedWIF, err)
	}
	for _, account := range w.Accounts {
		if account.Address == address {
			return Account{}, ErrAccountAlreadyExists
		}
	}

	account, err := w.appendAccount(address, wifSecret, password)
	if err != nil {
		return Account{}, err
	}
	w.CurrentIndex = len(w.Accounts) - 1
	w.currentSecret = secret
	return account, nil
}

// Unlock decrypts the current account's secret with the password. On failure
// the wallet state is left untouched.
func (w *Wallet) Unlock(password string) error {
	if !w.IsInitialized() {
		return ErrNoAccounts
	}

	wif, err := vault.Decrypt(vault.DecryptOpts{
		CipherText: w.Accounts[w.CurrentIndex].EncryptedSecret,
		Password:   password,
	})
	if err != nil {
		return err
	}
	secret, err := codec.DecodeWIF(wif)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedWIF, err)
	}

	w.currentSecret = secret
	return nil
}

// Lock wipes the in-memory secret. Locking a locked wallet is a no-op.
func (w *Wallet) Lock() {
	for i := range w.currentSecret {
		w.currentSecret[i] = 0
	}
	w.currentSecret = nil
}

// SwitchAccount makes the account at index current. With a password the
// wallet ends up unlocked for that account; without one it ends up locked.
func (w *Wallet) SwitchAccount(index int, password string) (Account, error) {
	if index < 0 || index >= len(w.Accounts) {
		return Account{}, ErrSwitchIndexOutOfRange
	}

	if password == "" {
		w.CurrentIndex = index
		w.Lock()
		return w.Accounts[index], nil
	}

	previousIndex := w.CurrentIndex
	w.CurrentIndex = index
	if err := w.Unlock(password); err != nil {
		w.CurrentIndex = previousIndex
		return Account{}, err
	}
	return w.Accounts[index], nil
}

// RenameAccount sets a new display name for the account at index.
func (w *Wallet) RenameAccount(index int, newName string) error {
	if index < 0 || index >= len(w.Accounts) {
		return ErrAccountIndexOutOfRange
	}
	name := strings.TrimSpace(newName)
	if name == "" {
		return ErrEmptyAccountName
	}
	w.Accounts[index].Name = name
	return nil
}

// DeleteAccount removes the account at index. The last account cannot be
// deleted. The wallet is locked afterwards regardless of which account was
// removed, since the unlocked secret may have belonged to it.
func (w *Wallet) DeleteAccount(index int) error {
	if index < 0 || index >= len(w.Accounts) {
		return ErrAccountIndexOutOfRange
	}
	if len(w.Accounts) == 1 {
		return ErrLastAccount
	}

	w.Accounts = append(w.Accounts[:index], w.Accounts[index+1:]...)
	if index <= w.CurrentIndex && w.CurrentIndex > 0 {
		w.CurrentIndex--
	}
	w.Lock()
	return nil
}

func (w *Wallet) appendAccount(address, wif, password string) (Account, error) {
	encrypted, err := vault.Encrypt(vault.EncryptOpts{
		PlainText: wif,
		Password:  password,
	})
	if err != nil {
		return Account{}, err
	}

	account := Account{
		Name:            fmt.Sprintf("Account %d", len(w.Accounts)+1),
		Address:         address,
		EncryptedSecret: encrypted,
	}
	w.Accounts = append(w.Accounts, account)
	return account, nil
}
