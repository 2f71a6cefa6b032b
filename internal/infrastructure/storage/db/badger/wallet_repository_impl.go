package dbbadger

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/coinwarden/signerd/internal/core/domain"
)

// walletKey is the fixed key of the single wallet record.
const walletKey = "wallet"

// walletRecord is the stored shape of the wallet. The legacy fields belong to
// the retired single-account layout and are still decoded so an old record
// can be migrated in place on first open.
type walletRecord struct {
	Accounts     []domain.Account `json:"accounts,omitempty"`
	CurrentIndex int              `json:"currentAccountIndex"`

	LegacyEncryptedSecret string `json:"encryptedSecret,omitempty"`
	LegacyAddress         string `json:"address,omitempty"`
}

type walletRepositoryImpl struct {
	db *DbManager
}

// NewWalletRepositoryImpl returns a badger-backed WalletRepository.
func NewWalletRepositoryImpl(db *DbManager) domain.WalletRepository {
	return &walletRepositoryImpl{db: db}
}

func (r *walletRepositoryImpl) GetWallet(
	_ context.Context,
) (*domain.Wallet, error) {
	var record walletRecord
	if err := r.db.Store.Get(walletKey, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if migrated := record.migrate(); migrated {
		if err := r.db.Store.Upsert(walletKey, record); err != nil {
			return nil, err
		}
		log.Info("migrated single-account wallet record to account list layout")
	}

	return &domain.Wallet{
		Accounts:     record.Accounts,
		CurrentIndex: record.CurrentIndex,
	}, nil
}

func (r *walletRepositoryImpl) SaveWallet(
	_ context.Context, w *domain.Wallet,
) error {
	return r.db.Store.Upsert(walletKey, walletRecord{
		Accounts:     w.Accounts,
		CurrentIndex: w.CurrentIndex,
	})
}

func (r *walletRepositoryImpl) Close() error {
	return r.db.Close()
}

// migrate rewrites a legacy single-account record into the account list
// layout. It reports whether anything changed.
func (w *walletRecord) migrate() bool {
	if len(w.Accounts) > 0 || w.LegacyEncryptedSecret == "" {
		return false
	}

	w.Accounts = []domain.Account{{
		Name:            "Account 1",
		Address:         w.LegacyAddress,
		EncryptedSecret: w.LegacyEncryptedSecret,
	}}
	w.CurrentIndex = 0
	w.LegacyEncryptedSecret = ""
	w.LegacyAddress = ""
	return true
}
