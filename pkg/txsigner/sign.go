package txsigner

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/txscript"

	"github.com/coinwarden/signerd/pkg/bufferutil"
	"github.com/coinwarden/signerd/pkg/codec"
	"github.com/coinwarden/signerd/pkg/hashutil"
)

// halfOrder is used to enforce the canonical low-s signature form.
var halfOrder = new(big.Int).Rsh(btcec.S256().N, 1)

// SignatureHash computes the digest to sign for the input at the given index:
// the transaction is re-serialized with that input's script replaced by the
// previous output's scriptPubKey, every other input script emptied, and a
// 4-byte SIGHASH_ALL word appended; the digest is double SHA-256 of that.
func SignatureHash(tx *Transaction, index int, scriptPubKey []byte) ([]byte, error) {
	if index < 0 || index >= len(tx.Inputs) {
		return nil, ErrInputIndexOutOfRange
	}

	s := bufferutil.NewSerializer()
	s.WriteUint32(tx.Version)

	s.WriteUint8(uint8(len(tx.Inputs)))
	for i, in := range tx.Inputs {
		s.WriteSlice(in.PreviousHash)
		s.WriteUint32(in.PreviousIndex)
		script := []byte{}
		if i == index {
			script = scriptPubKey
		}
		if err := s.WriteVarSlice(script); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		s.WriteUint32(in.Sequence)
	}

	s.WriteUint8(uint8(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		s.WriteUint64(out.Value)
		if err := s.WriteVarSlice(out.Script); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
	}

	s.WriteUint32(tx.Locktime)
	s.WriteUint32(uint32(txscript.SigHashAll))

	return hashutil.DoubleSha256(s.Bytes()), nil
}

// SignHash produces a deterministic (RFC6979) ECDSA signature over the given
// 32-byte digest and returns the (r, s) pair with s normalized to the lower
// half of the curve order.
func SignHash(secret, hash []byte) (r, s *big.Int, err error) {
	if len(secret) != 32 {
		return nil, nil, ErrInvalidSecretKey
	}

	privKey, _ := btcec.PrivKeyFromBytes(secret)
	compact, err := ecdsa.SignCompact(privKey, hash, true)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSigning, err)
	}

	// Compact layout: 1-byte recovery header, 32-byte r, 32-byte s.
	r = new(big.Int).SetBytes(compact[1:33])
	s = new(big.Int).SetBytes(compact[33:65])
	if s.Cmp(halfOrder) > 0 {
		s.Sub(btcec.S256().N, s)
	}
	return r, s, nil
}

// SignInput signs the input at the given index with the secret key, assuming
// the previous output pays to the key's P2PKH script, and replaces the input
// script with the unlocking scriptSig.
func SignInput(tx *Transaction, index int, secret []byte) error {
	if index < 0 || index >= len(tx.Inputs) {
		return ErrInputIndexOutOfRange
	}

	pubKey, err := PubKeyFromSecret(secret)
	if err != nil {
		return err
	}

	hash, err := SignatureHash(tx, index, P2PKHScript(pubKey))
	if err != nil {
		return err
	}

	r, s, err := SignHash(secret, hash)
	if err != nil {
		return err
	}

	signature := append(codec.SignatureDER(r, s), byte(txscript.SigHashAll))

	scriptSig := bufferutil.NewSerializer()
	if err := scriptSig.WriteVarSlice(signature); err != nil {
		return fmt.Errorf("%w: %v", ErrSigning, err)
	}
	if err := scriptSig.WriteVarSlice(pubKey); err != nil {
		return fmt.Errorf("%w: %v", ErrSigning, err)
	}

	tx.Inputs[index].Script = scriptSig.Bytes()
	return nil
}

// SignTransaction decodes the WIF secret, parses the unsigned transaction and
// signs every input in index order with the same key, returning the signed
// hex. Single-key wallets satisfy all inputs with the same P2PKH script.
func SignTransaction(wifSecret, unsignedHex string) (string, error) {
	secret, err := codec.DecodeWIF(wifSecret)
	if err != nil {
		return "", err
	}
	return SignTransactionWithSecret(secret, unsignedHex)
}

// SignTransactionWithSecret is SignTransaction for an already-decoded 32-byte
// secret key.
func SignTransactionWithSecret(secret []byte, unsignedHex string) (string, error) {
	tx, err := ParseTransaction(unsignedHex)
	if err != nil {
		return "", err
	}

	for i := range tx.Inputs {
		if err := SignInput(tx, i, secret); err != nil {
			return "", err
		}
	}

	return tx.Serialize()
}
