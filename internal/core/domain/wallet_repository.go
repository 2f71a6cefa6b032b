package domain

import "context"

// WalletRepository persists the wallet's durable subset: the account list and
// the current-account index. The unlocked secret never reaches storage.
//
// Writers follow a copy-mutate-save-swap discipline: the wallet service
// applies a mutation to a copy, saves it, and only adopts the copy in memory
// once the save succeeded, so a storage failure never leaves memory and disk
// disagreeing.
type WalletRepository interface {
	// GetWallet returns the stored wallet, or nil when none exists yet.
	GetWallet(ctx context.Context) (*Wallet, error)
	// SaveWallet writes the wallet's durable subset atomically.
	SaveWallet(ctx context.Context, w *Wallet) error
	// Close releases the underlying store.
	Close() error
}
