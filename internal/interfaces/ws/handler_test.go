package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/coinwarden/signerd/internal/core/application"
	"github.com/coinwarden/signerd/internal/infrastructure/storage/db/inmemory"
	"github.com/coinwarden/signerd/pkg/txsigner"
)

const testPassword = "abcdefgh"

type bridgeClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func newBridge(t *testing.T) (*bridgeClient, *application.WalletService) {
	t.Helper()

	walletSvc, err := application.NewWalletService(
		context.Background(), inmemory.NewWalletRepositoryImpl(), &chaincfg.MainNetParams,
	)
	require.NoError(t, err)
	signerSvc := application.NewSignerService(walletSvc)

	server := httptest.NewServer(NewService("", walletSvc, signerSvc).Handler())
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &bridgeClient{t: t, conn: conn}, walletSvc
}

func (c *bridgeClient) send(id string, method Method, params interface{}) {
	c.t.Helper()
	req := Request{ID: id, Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		require.NoError(c.t, err)
		req.Params = raw
	}
	require.NoError(c.t, c.conn.WriteJSON(req))
}

func (c *bridgeClient) read() Response {
	c.t.Helper()
	var resp Response
	require.NoError(c.t, c.conn.ReadJSON(&resp))
	return resp
}

// call does a synchronous round trip for the short-lived commands.
func (c *bridgeClient) call(id string, method Method, params interface{}) Response {
	c.t.Helper()
	c.send(id, method, params)
	resp := c.read()
	require.Equal(c.t, id, resp.ID)
	return resp
}

func dataAs(t *testing.T, resp Response, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestWalletCommands(t *testing.T) {
	client, _ := newBridge(t)

	resp := client.call("1", GetStatus, nil)
	require.True(t, resp.Success)
	var status application.StatusInfo
	dataAs(t, resp, &status)
	require.False(t, status.HasWallet)

	resp = client.call("2", CreateWallet, createWalletParams{Password: testPassword})
	require.True(t, resp.Success)
	var account application.AccountInfo
	dataAs(t, resp, &account)
	require.NotEmpty(t, account.Address)

	resp = client.call("3", GetStatus, nil)
	dataAs(t, resp, &status)
	require.True(t, status.HasWallet)
	require.True(t, status.IsUnlocked)
	require.Equal(t, 1, status.TotalAccounts)

	resp = client.call("4", Lock, nil)
	require.True(t, resp.Success)

	resp = client.call("5", Unlock, unlockParams{Password: "wrong-password"})
	require.False(t, resp.Success)
	require.Contains(t, resp.Error, "incorrect password")

	resp = client.call("6", Unlock, unlockParams{Password: testPassword})
	require.True(t, resp.Success)

	resp = client.call("7", GetAccounts, nil)
	var accounts []application.AccountInfo
	dataAs(t, resp, &accounts)
	require.Len(t, accounts, 1)
	require.True(t, accounts[0].IsCurrent)
}

func TestUnknownMethod(t *testing.T) {
	client, _ := newBridge(t)

	resp := client.call("1", Method("SELF_DESTRUCT"), nil)
	require.False(t, resp.Success)
	require.Contains(t, resp.Error, "unknown method")
}

func TestSignFlowOverBridge(t *testing.T) {
	client, walletSvc := newBridge(t)

	resp := client.call("1", CreateWallet, createWalletParams{Password: testPassword})
	require.True(t, resp.Success)

	secret, err := walletSvc.Secret(context.Background())
	require.NoError(t, err)
	pubKey, err := txsigner.PubKeyFromSecret(secret)
	require.NoError(t, err)
	script := txsigner.P2PKHScript(pubKey)
	tx := &txsigner.Transaction{
		Version: 1,
		Inputs: []*txsigner.Input{{
			PreviousHash: bytes.Repeat([]byte{0x22}, 32),
			Script:       script,
			Sequence:     0xffffffff,
		}},
		Outputs: []*txsigner.Output{{Value: 1_000, Script: script}},
	}
	txHex, err := tx.Serialize()
	require.NoError(t, err)

	// The signing response is deferred: the approval resolves it, so two
	// frames arrive in whichever order the pumps deliver them.
	client.send("sign", SignTransaction, signTransactionParams{
		RequestID:  "req-1",
		UnsignedTx: txHex,
	})
	client.send("approve", ApproveSigning, requestIDParams{RequestID: "req-1"})

	responses := map[string]Response{}
	for i := 0; i < 2; i++ {
		resp := client.read()
		responses[resp.ID] = resp
	}

	require.True(t, responses["approve"].Success)
	require.True(t, responses["sign"].Success)

	var signData map[string]string
	dataAs(t, responses["sign"], &signData)
	signed, err := txsigner.ParseTransaction(signData["signedTx"])
	require.NoError(t, err)
	require.NotEmpty(t, signed.Inputs[0].Script)
}

func TestRejectOverBridge(t *testing.T) {
	client, _ := newBridge(t)

	resp := client.call("1", CreateWallet, createWalletParams{Password: testPassword})
	require.True(t, resp.Success)

	client.send("sign", SignTransaction, signTransactionParams{
		RequestID:  "req-1",
		UnsignedTx: "00",
	})
	client.send("pending", GetPendingRequests, nil)

	pendingResp := client.read()
	require.Equal(t, "pending", pendingResp.ID)
	var pending []application.PendingRequest
	dataAs(t, pendingResp, &pending)
	require.Len(t, pending, 1)
	require.Equal(t, "req-1", pending[0].ID)

	client.send("reject", RejectSigning, requestIDParams{RequestID: "req-1"})

	responses := map[string]Response{}
	for i := 0; i < 2; i++ {
		resp := client.read()
		responses[resp.ID] = resp
	}
	require.True(t, responses["reject"].Success)
	require.False(t, responses["sign"].Success)
	require.Contains(t, responses["sign"].Error, "rejected")
}
