package application

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/coinwarden/signerd/internal/core/domain"
)

// WalletService owns the in-memory wallet and serializes every operation
// that touches it. Mutations follow copy-mutate-save-swap against the
// repository so a storage failure never leaves memory and disk out of sync.
type WalletService struct {
	repo domain.WalletRepository
	net  *chaincfg.Params

	mtx    sync.Mutex
	wallet *domain.Wallet

	// unlockLimiter throttles password attempts: the vault's uniform
	// authentication error on purpose gives no oracle, and rate limiting
	// keeps online guessing slow as well.
	unlockLimiter ratelimit.Limiter
}

// NewWalletService loads the persisted wallet, if any, and returns the
// service guarding it.
func NewWalletService(
	ctx context.Context, repo domain.WalletRepository, net *chaincfg.Params,
) (*WalletService, error) {
	wallet, err := repo.GetWallet(ctx)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = domain.NewWallet()
	} else {
		log.Infof(
			"loaded wallet with %d account(s), current index %d",
			len(wallet.Accounts), wallet.CurrentIndex,
		)
	}

	return &WalletService{
		repo:          repo,
		net:           net,
		wallet:        wallet,
		unlockLimiter: ratelimit.New(1),
	}, nil
}

// Status reports the public snapshot of the wallet.
func (s *WalletService) Status(_ context.Context) StatusInfo {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	info := StatusInfo{
		HasWallet:     s.wallet.IsInitialized(),
		IsUnlocked:    s.wallet.IsUnlocked(),
		CurrentIndex:  s.wallet.CurrentIndex,
		TotalAccounts: len(s.wallet.Accounts),
	}
	if account, err := s.wallet.CurrentAccount(); err == nil {
		info.Address = account.Address
		info.AccountName = account.Name
	}
	return info
}

// CreateWallet generates a new account encrypted under the password. On the
// first call this initializes the wallet; later calls append accounts.
func (s *WalletService) CreateWallet(ctx context.Context, password string) (AccountInfo, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var account domain.Account
	if err := s.commit(ctx, func(w *domain.Wallet) error {
		var err error
		account, err = w.CreateAccount(password, s.net)
		return err
	}); err != nil {
		return AccountInfo{}, err
	}

	log.Infof("created account %q (%s)", account.Name, account.Address)
	return s.accountInfo(account), nil
}

// ImportWallet appends an account from a caller-supplied address and WIF
// secret.
func (s *WalletService) ImportWallet(
	ctx context.Context, address, wifSecret, password string,
) (AccountInfo, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var account domain.Account
	if err := s.commit(ctx, func(w *domain.Wallet) error {
		var err error
		account, err = w.ImportAccount(address, wifSecret, password)
		return err
	}); err != nil {
		return AccountInfo{}, err
	}

	log.Infof("imported account %q (%s)", account.Name, account.Address)
	return s.accountInfo(account), nil
}

// Unlock decrypts the current account's secret. Attempts are rate limited.
func (s *WalletService) Unlock(_ context.Context, password string) (string, error) {
	s.unlockLimiter.Take()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.wallet.Unlock(password); err != nil {
		return "", err
	}
	account, err := s.wallet.CurrentAccount()
	if err != nil {
		return "", err
	}
	log.Infof("wallet unlocked for %s", account.Address)
	return account.Address, nil
}

// Lock wipes the in-memory secret. Idempotent.
func (s *WalletService) Lock(_ context.Context) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.wallet.Lock()
	log.Info("wallet locked")
}

// SwitchAccount changes the current account. With a password the target
// account is unlocked, without one the wallet ends up locked.
func (s *WalletService) SwitchAccount(
	ctx context.Context, index int, password string,
) (AccountInfo, error) {
	if password != "" {
		s.unlockLimiter.Take()
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	var account domain.Account
	if err := s.commit(ctx, func(w *domain.Wallet) error {
		var err error
		account, err = w.SwitchAccount(index, password)
		return err
	}); err != nil {
		return AccountInfo{}, err
	}
	return s.accountInfo(account), nil
}

// ListAccounts returns every account with its list position.
func (s *WalletService) ListAccounts(_ context.Context) []AccountInfo {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	accounts := make([]AccountInfo, 0, len(s.wallet.Accounts))
	for i, account := range s.wallet.Accounts {
		accounts = append(accounts, AccountInfo{
			Index:     i,
			Name:      account.Name,
			Address:   account.Address,
			IsCurrent: i == s.wallet.CurrentIndex,
		})
	}
	return accounts
}

// RenameAccount changes an account's display name.
func (s *WalletService) RenameAccount(ctx context.Context, index int, newName string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.commit(ctx, func(w *domain.Wallet) error {
		return w.RenameAccount(index, newName)
	})
}

// DeleteAccount removes an account and locks the wallet.
func (s *WalletService) DeleteAccount(ctx context.Context, index int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.commit(ctx, func(w *domain.Wallet) error {
		return w.DeleteAccount(index)
	}); err != nil {
		return err
	}
	log.Infof("deleted account %d, wallet locked", index)
	return nil
}

// Secret hands out the raw secret of the current account for a single
// signing operation, or ErrWalletLocked. The returned slice is a copy: Lock
// zeroes the wallet's own buffer in place, and a signing already in flight
// must keep reading intact key material.
func (s *WalletService) Secret(_ context.Context) ([]byte, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	secret, err := s.wallet.Secret()
	if err != nil {
		return nil, err
	}
	return append([]byte{}, secret...), nil
}

// commit runs a mutation against a clone of the wallet, persists the clone
// and only then swaps it in. Callers must hold s.mtx.
func (s *WalletService) commit(ctx context.Context, mutate func(w *domain.Wallet) error) error {
	clone := s.wallet.Clone()
	if err := mutate(clone); err != nil {
		return err
	}
	if err := s.repo.SaveWallet(ctx, clone); err != nil {
		log.WithError(err).Error("discarding wallet mutation: storage write failed")
		return err
	}
	s.wallet = clone
	return nil
}

func (s *WalletService) accountInfo(account domain.Account) AccountInfo {
	return AccountInfo{
		Index:     s.wallet.CurrentIndex,
		Name:      account.Name,
		Address:   account.Address,
		IsCurrent: true,
	}
}
