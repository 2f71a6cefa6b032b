package ws

import "encoding/json"

// Method discriminates the commands of the bridge protocol. The set is
// closed: anything else fails at decode time.
type Method string

const (
	GetStatus          Method = "GET_STATUS"
	CreateWallet       Method = "CREATE_WALLET"
	ImportWallet       Method = "IMPORT_WALLET"
	Unlock             Method = "UNLOCK"
	Lock               Method = "LOCK"
	SwitchAccount      Method = "SWITCH_ACCOUNT"
	GetAccounts        Method = "GET_ACCOUNTS"
	RenameAccount      Method = "RENAME_ACCOUNT"
	DeleteAccount      Method = "DELETE_ACCOUNT"
	SignTransaction    Method = "SIGN_TRANSACTION"
	ApproveSigning     Method = "APPROVE_SIGNING"
	RejectSigning      Method = "REJECT_SIGNING"
	GetPendingRequests Method = "GET_PENDING_REQUESTS"
)

// Request is the envelope of every incoming frame. ID correlates the
// response: SIGN_TRANSACTION resolves long after later requests on the same
// connection, so responses are not ordered.
type Request struct {
	ID     string          `json:"id"`
	Method Method          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is the envelope of every outgoing frame. Exactly one of Data and
// Error is set.
type Response struct {
	ID      string      `json:"id"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type createWalletParams struct {
	Password string `json:"password"`
}

type importWalletParams struct {
	Address   string `json:"address"`
	WIFSecret string `json:"wifSecret"`
	Password  string `json:"password"`
}

type unlockParams struct {
	Password string `json:"password"`
}

type switchAccountParams struct {
	Index    int    `json:"index"`
	Password string `json:"password,omitempty"`
}

type renameAccountParams struct {
	Index   int    `json:"index"`
	NewName string `json:"newName"`
}

type deleteAccountParams struct {
	Index int `json:"index"`
}

type signTransactionParams struct {
	RequestID  string `json:"requestId"`
	UnsignedTx string `json:"unsignedTx"`
	Details    string `json:"details,omitempty"`
}

type requestIDParams struct {
	RequestID string `json:"requestId"`
}

func okResponse(id string, data interface{}) Response {
	return Response{ID: id, Success: true, Data: data}
}

func errResponse(id string, err error) Response {
	return Response{ID: id, Success: false, Error: err.Error()}
}
