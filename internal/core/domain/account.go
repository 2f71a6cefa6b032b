package domain

// Account couples a public address with the vault blob guarding its secret
// key. The blob is opaque here: only Wallet methods ever decrypt it.
type Account struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	EncryptedSecret string `json:"encryptedSecret"`
}
