package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/thanhpk/randstr"

	"github.com/coinwarden/signerd/internal/core/application"
	"github.com/coinwarden/signerd/internal/core/domain"
)

// connHandler serves one websocket connection. Reads happen on the caller's
// goroutine; every write goes through sendCh so deferred SIGN_TRANSACTION
// resolutions cannot interleave frames with regular responses.
type connHandler struct {
	id        string
	conn      *websocket.Conn
	walletSvc *application.WalletService
	signerSvc *application.SignerService
	sendCh    chan Response
	closed    chan struct{}
}

func newConnHandler(
	conn *websocket.Conn,
	walletSvc *application.WalletService,
	signerSvc *application.SignerService,
) *connHandler {
	return &connHandler{
		id:        randstr.Hex(8),
		conn:      conn,
		walletSvc: walletSvc,
		signerSvc: signerSvc,
		sendCh:    make(chan Response, 16),
		closed:    make(chan struct{}),
	}
}

func (h *connHandler) serve(ctx context.Context) {
	log.Debugf("connection %s opened", h.id)
	defer log.Debugf("connection %s closed", h.id)

	writeDone := make(chan struct{})
	go h.writePump(writeDone)
	defer func() {
		close(h.closed)
		<-writeDone
	}()

	for {
		_, raw, err := h.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
			) {
				log.WithError(err).Debugf("connection %s read failed", h.id)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(raw, &req); err != nil {
			h.sendCh <- errResponse("", fmt.Errorf("malformed request: %v", err))
			continue
		}
		h.dispatch(ctx, req)
	}
}

func (h *connHandler) writePump(done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case resp := <-h.sendCh:
			if err := h.conn.WriteJSON(resp); err != nil {
				log.WithError(err).Debugf("connection %s write failed", h.id)
				return
			}
		case <-h.closed:
			return
		}
	}
}

func (h *connHandler) dispatch(ctx context.Context, req Request) {
	switch req.Method {
	case GetStatus:
		h.sendCh <- okResponse(req.ID, h.walletSvc.Status(ctx))

	case CreateWallet:
		var params createWalletParams
		if !h.decodeParams(req, &params) {
			return
		}
		account, err := h.walletSvc.CreateWallet(ctx, params.Password)
		h.reply(req.ID, account, err)

	case ImportWallet:
		var params importWalletParams
		if !h.decodeParams(req, &params) {
			return
		}
		account, err := h.walletSvc.ImportWallet(
			ctx, params.Address, params.WIFSecret, params.Password,
		)
		h.reply(req.ID, account, err)

	case Unlock:
		var params unlockParams
		if !h.decodeParams(req, &params) {
			return
		}
		address, err := h.walletSvc.Unlock(ctx, params.Password)
		h.reply(req.ID, map[string]string{"address": address}, err)

	case Lock:
		h.walletSvc.Lock(ctx)
		h.sendCh <- okResponse(req.ID, nil)

	case SwitchAccount:
		var params switchAccountParams
		if !h.decodeParams(req, &params) {
			return
		}
		account, err := h.walletSvc.SwitchAccount(ctx, params.Index, params.Password)
		h.reply(req.ID, account, err)

	case GetAccounts:
		h.sendCh <- okResponse(req.ID, h.walletSvc.ListAccounts(ctx))

	case RenameAccount:
		var params renameAccountParams
		if !h.decodeParams(req, &params) {
			return
		}
		h.reply(req.ID, nil, h.walletSvc.RenameAccount(ctx, params.Index, params.NewName))

	case DeleteAccount:
		var params deleteAccountParams
		if !h.decodeParams(req, &params) {
			return
		}
		h.reply(req.ID, nil, h.walletSvc.DeleteAccount(ctx, params.Index))

	case SignTransaction:
		var params signTransactionParams
		if !h.decodeParams(req, &params) {
			return
		}
		h.signTransaction(ctx, req.ID, params)

	case ApproveSigning:
		var params requestIDParams
		if !h.decodeParams(req, &params) {
			return
		}
		h.reply(req.ID, nil, h.signerSvc.Approve(ctx, params.RequestID))

	case RejectSigning:
		var params requestIDParams
		if !h.decodeParams(req, &params) {
			return
		}
		h.reply(req.ID, nil, h.signerSvc.Reject(ctx, params.RequestID))

	case GetPendingRequests:
		h.sendCh <- okResponse(req.ID, h.signerSvc.PendingRequests(ctx))

	default:
		h.sendCh <- errResponse(
			req.ID, fmt.Errorf("%w: unknown method %q", domain.ErrValidation, req.Method),
		)
	}
}

// signTransaction files the request and defers the response until the user
// decides. The connection keeps serving other commands meanwhile.
func (h *connHandler) signTransaction(
	ctx context.Context, id string, params signTransactionParams,
) {
	resultCh, err := h.signerSvc.NewRequest(
		ctx, params.RequestID, params.UnsignedTx, params.Details,
	)
	if err != nil {
		h.sendCh <- errResponse(id, err)
		return
	}

	go func() {
		result := <-resultCh
		if result.Err != nil {
			h.trySend(errResponse(id, result.Err))
			return
		}
		h.trySend(okResponse(id, map[string]string{"signedTx": result.SignedTx}))
	}()
}

// trySend delivers a deferred response unless the connection is gone.
func (h *connHandler) trySend(resp Response) {
	select {
	case h.sendCh <- resp:
	case <-h.closed:
		log.Debugf("connection %s gone, dropping response %s", h.id, resp.ID)
	}
}

func (h *connHandler) decodeParams(req Request, out interface{}) bool {
	if err := json.Unmarshal(req.Params, out); err != nil {
		h.sendCh <- errResponse(
			req.ID, fmt.Errorf("%w: malformed params: %v", domain.ErrValidation, err),
		)
		return false
	}
	return true
}

func (h *connHandler) reply(id string, data interface{}, err error) {
	if err != nil {
		h.sendCh <- errResponse(id, err)
		return
	}
	h.sendCh <- okResponse(id, data)
}
