package application_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coinwarden/signerd/internal/core/application"
	"github.com/coinwarden/signerd/internal/core/domain"
	"github.com/coinwarden/signerd/pkg/txsigner"
)

func newSignerFixture(t *testing.T) (*application.SignerService, *application.WalletService) {
	t.Helper()
	walletSvc, _ := newWalletService(t)
	_, err := walletSvc.CreateWallet(context.Background(), testPassword)
	require.NoError(t, err)
	return application.NewSignerService(walletSvc), walletSvc
}

// newUnsignedTx builds a one-in one-out transaction spending an output owned
// by the wallet's current account.
func newUnsignedTx(t *testing.T, walletSvc *application.WalletService) string {
	t.Helper()

	secret, err := walletSvc.Secret(context.Background())
	require.NoError(t, err)
	pubKey, err := txsigner.PubKeyFromSecret(secret)
	require.NoError(t, err)
	script := txsigner.P2PKHScript(pubKey)

	tx := &txsigner.Transaction{
		Version: 1,
		Inputs: []*txsigner.Input{{
			PreviousHash:  bytes.Repeat([]byte{0x11}, 32),
			PreviousIndex: 0,
			Script:        script,
			Sequence:      0xffffffff,
		}},
		Outputs: []*txsigner.Output{{
			Value:  50_000,
			Script: script,
		}},
	}
	txHex, err := tx.Serialize()
	require.NoError(t, err)
	return txHex
}

func awaitResult(t *testing.T, ch <-chan application.SignResult) application.SignResult {
	t.Helper()
	select {
	case result := <-ch:
		return result
	case <-time.After(time.Second):
		t.Fatal("signing request was never resolved")
		return application.SignResult{}
	}
}

func TestNewRequestWhileLocked(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	signerSvc, walletSvc := newSignerFixture(t)
	txHex := newUnsignedTx(t, walletSvc)
	walletSvc.Lock(ctx)

	_, err := signerSvc.NewRequest(ctx, "req-1", txHex, "")
	require.ErrorIs(t, err, domain.ErrState)
	require.Contains(t, err.Error(), "locked")
	require.Empty(t, signerSvc.PendingRequests(ctx))
}

func TestDuplicateRequest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	signerSvc, walletSvc := newSignerFixture(t)
	txHex := newUnsignedTx(t, walletSvc)

	_, err := signerSvc.NewRequest(ctx, "req-1", txHex, "")
	require.NoError(t, err)

	_, err = signerSvc.NewRequest(ctx, "req-1", txHex, "")
	require.ErrorIs(t, err, application.ErrRequestAlreadyPending)
	require.Len(t, signerSvc.PendingRequests(ctx), 1)
}

func TestApproveUnknownRequest(t *testing.T) {
	t.Parallel()

	signerSvc, _ := newSignerFixture(t)
	err := signerSvc.Approve(context.Background(), "never-submitted")
	require.ErrorIs(t, err, application.ErrRequestNotFound)
}

func TestApproveSigns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	signerSvc, walletSvc := newSignerFixture(t)
	txHex := newUnsignedTx(t, walletSvc)

	resultCh, err := signerSvc.NewRequest(ctx, "req-1", txHex, "payout #42")
	require.NoError(t, err)

	pending := signerSvc.PendingRequests(ctx)
	require.Len(t, pending, 1)
	require.Equal(t, "req-1", pending[0].ID)
	require.Equal(t, "payout #42", pending[0].Details)
	require.Equal(t, 1, pending[0].NumInputs)
	require.Equal(t, 1, pending[0].NumOutputs)
	require.Equal(t, "0.0005 BTC", pending[0].TotalOutput)

	require.NoError(t, signerSvc.Approve(ctx, "req-1"))

	result := awaitResult(t, resultCh)
	require.NoError(t, result.Err)

	signed, err := txsigner.ParseTransaction(result.SignedTx)
	require.NoError(t, err)
	require.NotEmpty(t, signed.Inputs[0].Script)
	require.NotEqual(t, txHex, result.SignedTx)

	require.Empty(t, signerSvc.PendingRequests(ctx))
	require.ErrorIs(t, signerSvc.Approve(ctx, "req-1"), application.ErrRequestNotFound)
}

func TestPendingSummaryLargeTotal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	signerSvc, _ := newSignerFixture(t)

	// An output sum past the int64 range must still display correctly.
	tx := &txsigner.Transaction{
		Version: 1,
		Inputs: []*txsigner.Input{{
			PreviousHash: bytes.Repeat([]byte{0x33}, 32),
			Sequence:     0xffffffff,
		}},
		Outputs: []*txsigner.Output{{Value: 1 << 63, Script: []byte{0x51}}},
	}
	txHex, err := tx.Serialize()
	require.NoError(t, err)

	_, err = signerSvc.NewRequest(ctx, "req-1", txHex, "")
	require.NoError(t, err)

	pending := signerSvc.PendingRequests(ctx)
	require.Len(t, pending, 1)
	require.Equal(t, "92233720368.54775808 BTC", pending[0].TotalOutput)
}

func TestRejectIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	signerSvc, walletSvc := newSignerFixture(t)
	txHex := newUnsignedTx(t, walletSvc)

	resultCh, err := signerSvc.NewRequest(ctx, "req-1", txHex, "")
	require.NoError(t, err)

	require.NoError(t, signerSvc.Reject(ctx, "req-1"))
	result := awaitResult(t, resultCh)
	require.ErrorIs(t, result.Err, application.ErrUserRejected)

	// A second rejection of the same id is a no-op, not an error.
	require.NoError(t, signerSvc.Reject(ctx, "req-1"))
	require.NoError(t, signerSvc.Reject(ctx, "never-submitted"))
	require.Empty(t, signerSvc.PendingRequests(ctx))
}

func TestApproveAfterLock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	signerSvc, walletSvc := newSignerFixture(t)
	txHex := newUnsignedTx(t, walletSvc)

	resultCh, err := signerSvc.NewRequest(ctx, "req-1", txHex, "")
	require.NoError(t, err)

	walletSvc.Lock(ctx)

	// The approval itself succeeds: the decision was made, and the
	// requester gets the signing failure instead of hanging forever.
	require.NoError(t, signerSvc.Approve(ctx, "req-1"))
	result := awaitResult(t, resultCh)
	require.ErrorIs(t, result.Err, domain.ErrState)
	require.Empty(t, signerSvc.PendingRequests(ctx))
}

func TestUnparseableRequestFailsAtSigning(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	signerSvc, _ := newSignerFixture(t)

	resultCh, err := signerSvc.NewRequest(ctx, "req-1", "not-hex", "")
	require.NoError(t, err)

	pending := signerSvc.PendingRequests(ctx)
	require.Len(t, pending, 1)
	require.Zero(t, pending[0].NumInputs)
	require.Empty(t, pending[0].TotalOutput)

	require.NoError(t, signerSvc.Approve(ctx, "req-1"))
	result := awaitResult(t, resultCh)
	require.ErrorIs(t, result.Err, txsigner.ErrMalformedTransaction)
}
