package application

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/coinwarden/signerd/pkg/txsigner"
)

// satoshisPerBTC converts output values for the approval display.
var satoshisPerBTC = decimal.NewFromInt(100_000_000)

type pendingRequest struct {
	PendingRequest
	resultCh chan SignResult
}

// SignerService is the approval state machine between untrusted signing
// requests and the wallet's unlocked secret. Each request lives in the
// pending table from arrival until the user approves or rejects it; the
// requester blocks on the returned channel for that long. Requests are
// independent: outstanding entries never serialize one another, only the
// signing of an approved request is atomic end to end.
type SignerService struct {
	walletSvc *WalletService

	mtx     sync.Mutex
	pending map[string]*pendingRequest
}

// NewSignerService returns an empty coordinator bound to the wallet service.
func NewSignerService(walletSvc *WalletService) *SignerService {
	return &SignerService{
		walletSvc: walletSvc,
		pending:   map[string]*pendingRequest{},
	}
}

// NewRequest files an incoming signing request. It fails immediately when the
// wallet is locked and never creates an entry in that case. The returned
// channel resolves with the signed hex or an error once the user decides.
func (s *SignerService) NewRequest(
	ctx context.Context, requestID, unsignedTx, details string,
) (<-chan SignResult, error) {
	if _, err := s.walletSvc.Secret(ctx); err != nil {
		return nil, err
	}

	req := &pendingRequest{
		PendingRequest: PendingRequest{
			ID:         requestID,
			UnsignedTx: unsignedTx,
			Details:    details,
			CreatedAt:  time.Now(),
		},
		// Buffered so resolving never blocks on a requester that has
		// already gone away.
		resultCh: make(chan SignResult, 1),
	}
	req.summarize()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.pending[requestID]; ok {
		return nil, ErrRequestAlreadyPending
	}
	s.pending[requestID] = req

	signRequestsReceived.Inc()
	signRequestsPending.Inc()
	log.Infof("signing request %s pending approval", requestID)

	return req.resultCh, nil
}

// Approve signs the pending request with the currently unlocked secret and
// resolves the requester's channel. Whether signing succeeds or fails, the
// entry is removed: an approval never leaves a dangling pending request.
func (s *SignerService) Approve(ctx context.Context, requestID string) error {
	req, err := s.take(requestID)
	if err != nil {
		return err
	}

	result := s.sign(ctx, req.UnsignedTx)
	if result.Err != nil {
		signRequestsFailed.Inc()
		log.WithError(result.Err).Warnf("signing request %s failed after approval", requestID)
	} else {
		signRequestsApproved.Inc()
		log.Infof("signing request %s approved", requestID)
	}

	req.resultCh <- result
	return nil
}

// Reject resolves the request with ErrUserRejected. Rejecting an id that is
// not pending is a no-op success, so the approval surface may retry freely.
func (s *SignerService) Reject(_ context.Context, requestID string) error {
	req, err := s.take(requestID)
	if err != nil {
		return nil
	}

	signRequestsRejected.Inc()
	log.Infof("signing request %s rejected", requestID)

	req.resultCh <- SignResult{Err: ErrUserRejected}
	return nil
}

// PendingRequests lists outstanding requests for the approval surface.
func (s *SignerService) PendingRequests(_ context.Context) []PendingRequest {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	list := make([]PendingRequest, 0, len(s.pending))
	for _, req := range s.pending {
		list = append(list, req.PendingRequest)
	}
	return list
}

// take atomically removes and returns the pending entry for requestID.
func (s *SignerService) take(requestID string) (*pendingRequest, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	req, ok := s.pending[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	delete(s.pending, requestID)
	signRequestsPending.Dec()
	return req, nil
}

func (s *SignerService) sign(ctx context.Context, unsignedTx string) SignResult {
	secret, err := s.walletSvc.Secret(ctx)
	if err != nil {
		return SignResult{Err: err}
	}

	signedTx, err := txsigner.SignTransactionWithSecret(secret, unsignedTx)
	if err != nil {
		return SignResult{Err: err}
	}
	return SignResult{SignedTx: signedTx}
}

// summarize enriches the display metadata with what the raw transaction
// reveals. Parse failures are not fatal here: the request still reaches the
// approval surface and fails at signing time instead.
func (r *pendingRequest) summarize() {
	tx, err := txsigner.ParseTransaction(r.UnsignedTx)
	if err != nil {
		log.WithError(err).Debugf("signing request %s: unparseable transaction", r.ID)
		return
	}

	r.NumInputs = len(tx.Inputs)
	r.NumOutputs = len(tx.Outputs)
	total := new(big.Int).SetUint64(tx.TotalOutputValue())
	r.TotalOutput = decimal.NewFromBigInt(total, 0).
		Div(satoshisPerBTC).String() + " BTC"
}
