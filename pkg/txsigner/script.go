package txsigner

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/coinwarden/signerd/pkg/hashutil"
)

// PubKeyFromSecret derives the compressed secp256k1 public key (33 bytes)
// for a 32-byte secret key.
func PubKeyFromSecret(secret []byte) ([]byte, error) {
	if len(secret) != 32 {
		return nil, ErrInvalidSecretKey
	}
	_, pubKey := btcec.PrivKeyFromBytes(secret)
	return pubKey.SerializeCompressed(), nil
}

// AddressFromPubKey renders the base58check P2PKH address of a public key
// for the given network.
func AddressFromPubKey(pubKey []byte, net *chaincfg.Params) string {
	payload := append([]byte{net.PubKeyHashAddrID}, hashutil.Hash160(pubKey)...)
	checksum := hashutil.DoubleSha256(payload)[:4]
	return base58.Encode(append(payload, checksum...))
}

// AddressFromSecret derives the P2PKH address directly from a secret key.
func AddressFromSecret(secret []byte, net *chaincfg.Params) (string, error) {
	pubKey, err := PubKeyFromSecret(secret)
	if err != nil {
		return "", err
	}
	return AddressFromPubKey(pubKey, net), nil
}

// P2PKHScript builds the canonical pay-to-pubkey-hash locking script:
// OP_DUP OP_HASH160 <20-byte pubkey hash> OP_EQUALVERIFY OP_CHECKSIG.
func P2PKHScript(pubKey []byte) []byte {
	pubKeyHash := hashutil.Hash160(pubKey)

	script := make([]byte, 0, 25)
	script = append(script, txscript.OP_DUP, txscript.OP_HASH160, txscript.OP_DATA_20)
	script = append(script, pubKeyHash...)
	return append(script, txscript.OP_EQUALVERIFY, txscript.OP_CHECKSIG)
}
