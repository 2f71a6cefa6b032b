package application

import "time"

// StatusInfo is the public snapshot of the wallet state.
type StatusInfo struct {
	HasWallet     bool   `json:"hasWallet"`
	IsUnlocked    bool   `json:"isUnlocked"`
	Address       string `json:"address,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	CurrentIndex  int    `json:"currentIndex"`
	TotalAccounts int    `json:"totalAccounts"`
}

// AccountInfo describes one account in the list surface.
type AccountInfo struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	IsCurrent bool   `json:"isCurrent"`
}

// PendingRequest is what the approval surface gets to display for an
// outstanding signing request. The transaction summary fields are best
// effort: a transaction that cannot be parsed still reaches the approval
// surface and fails later, at signing time.
type PendingRequest struct {
	ID          string    `json:"requestId"`
	UnsignedTx  string    `json:"unsignedTx"`
	Details     string    `json:"details,omitempty"`
	NumInputs   int       `json:"numInputs,omitempty"`
	NumOutputs  int       `json:"numOutputs,omitempty"`
	TotalOutput string    `json:"totalOutput,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SignResult resolves a signing request: exactly one of SignedTx or Err is
// set.
type SignResult struct {
	SignedTx string
	Err      error
}
