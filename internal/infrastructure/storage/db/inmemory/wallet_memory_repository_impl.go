package inmemory

import (
	"context"
	"sync"

	"github.com/coinwarden/signerd/internal/core/domain"
)

// WalletRepositoryImpl represents an in memory storage
type WalletRepositoryImpl struct {
	locker sync.Mutex
	wallet *domain.Wallet
}

// NewWalletRepositoryImpl returns a new empty WalletRepositoryImpl
func NewWalletRepositoryImpl() domain.WalletRepository {
	return &WalletRepositoryImpl{}
}

func (r *WalletRepositoryImpl) GetWallet(
	_ context.Context,
) (*domain.Wallet, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.wallet == nil {
		return nil, nil
	}
	return r.wallet.Clone(), nil
}

func (r *WalletRepositoryImpl) SaveWallet(
	_ context.Context, w *domain.Wallet,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	// Only the durable subset is retained, like any on-disk store would.
	stored := w.Clone()
	stored.Lock()
	r.wallet = stored
	return nil
}

func (r *WalletRepositoryImpl) Close() error {
	return nil
}
