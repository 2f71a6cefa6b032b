package txsigner_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"

	"github.com/coinwarden/signerd/pkg/codec"
	"github.com/coinwarden/signerd/pkg/hashutil"
	"github.com/coinwarden/signerd/pkg/txsigner"
)

// secretOne is the scalar 1; its compressed public key is the curve
// generator, whose P2PKH address is a published fixture.
var secretOne = append(make([]byte, 31), 0x01)

func TestPubKeyFromSecret(t *testing.T) {
	t.Parallel()

	pubKey, err := txsigner.PubKeyFromSecret(secretOne)
	require.NoError(t, err)
	require.Equal(
		t,
		"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		hex.EncodeToString(pubKey),
	)

	_, err = txsigner.PubKeyFromSecret([]byte{0x01, 0x02})
	require.ErrorIs(t, err, txsigner.ErrInvalidSecretKey)
}

func TestAddressFromSecret(t *testing.T) {
	t.Parallel()

	addr, err := txsigner.AddressFromSecret(secretOne, &chaincfg.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", addr)
}

func TestP2PKHScript(t *testing.T) {
	t.Parallel()

	pubKey, err := txsigner.PubKeyFromSecret(secretOne)
	require.NoError(t, err)

	script := txsigner.P2PKHScript(pubKey)
	require.Len(t, script, 25)
	require.Equal(t, byte(0x76), script[0])         // OP_DUP
	require.Equal(t, byte(0xa9), script[1])         // OP_HASH160
	require.Equal(t, byte(0x14), script[2])         // push 20 bytes
	require.Equal(t, hashutil.Hash160(pubKey), script[3:23])
	require.Equal(t, byte(0x88), script[23])        // OP_EQUALVERIFY
	require.Equal(t, byte(0xac), script[24])        // OP_CHECKSIG
}

func TestSignHashLowS(t *testing.T) {
	t.Parallel()

	half := new(big.Int).Rsh(btcec.S256().N, 1)

	for i := byte(1); i <= 16; i++ {
		hash := hashutil.DoubleSha256([]byte{i})
		r, s, err := txsigner.SignHash(secretOne, hash)
		require.NoError(t, err)
		require.True(t, r.Sign() > 0)
		require.True(t, s.Sign() > 0)
		require.LessOrEqual(t, s.Cmp(half), 0, "s must be in the lower half of the order")
	}
}

func TestSignHashVerifies(t *testing.T) {
	t.Parallel()

	hash := hashutil.DoubleSha256([]byte("message to sign"))
	r, s, err := txsigner.SignHash(secretOne, hash)
	require.NoError(t, err)

	sig, err := ecdsa.ParseDERSignature(codec.SignatureDER(r, s))
	require.NoError(t, err)

	privKey, _ := btcec.PrivKeyFromBytes(secretOne)
	require.True(t, sig.Verify(hash, privKey.PubKey()))
}

func TestSignHashDeterministic(t *testing.T) {
	t.Parallel()

	hash := hashutil.DoubleSha256([]byte("same digest"))

	r1, s1, err := txsigner.SignHash(secretOne, hash)
	require.NoError(t, err)
	r2, s2, err := txsigner.SignHash(secretOne, hash)
	require.NoError(t, err)

	require.Zero(t, r1.Cmp(r2))
	require.Zero(t, s1.Cmp(s2))
}

func TestSignatureHashPerInput(t *testing.T) {
	t.Parallel()

	tx := newTestTx()
	pubKey, err := txsigner.PubKeyFromSecret(secretOne)
	require.NoError(t, err)
	script := txsigner.P2PKHScript(pubKey)

	h0, err := txsigner.SignatureHash(tx, 0, script)
	require.NoError(t, err)
	require.Len(t, h0, 32)

	h1, err := txsigner.SignatureHash(tx, 1, script)
	require.NoError(t, err)
	require.NotEqual(t, h0, h1, "each input commits to a distinct digest")

	_, err = txsigner.SignatureHash(tx, 2, script)
	require.ErrorIs(t, err, txsigner.ErrInputIndexOutOfRange)

	// Computing the hash must not touch the transaction itself.
	require.Equal(t, newTestTx(), tx)
}

func TestSignTransaction(t *testing.T) {
	t.Parallel()

	unsignedHex, err := newTestTx().Serialize()
	require.NoError(t, err)

	signedHex, err := txsigner.SignTransactionWithSecret(secretOne, unsignedHex)
	require.NoError(t, err)

	signed, err := txsigner.ParseTransaction(signedHex)
	require.NoError(t, err)
	require.Len(t, signed.Inputs, 2)

	pubKey, err := txsigner.PubKeyFromSecret(secretOne)
	require.NoError(t, err)
	script := txsigner.P2PKHScript(pubKey)

	// The unsigned transaction is what every signature hash commits to.
	unsigned, err := txsigner.ParseTransaction(unsignedHex)
	require.NoError(t, err)
	// Input scripts are emptied in the digest, so recomputing against the
	// unsigned transaction must validate the scriptSig of each input.
	for i, in := range signed.Inputs {
		scriptSig := in.Script
		sigLen := int(scriptSig[0])
		sigWithHashType := scriptSig[1 : 1+sigLen]
		require.Equal(t, byte(0x01), sigWithHashType[len(sigWithHashType)-1], "SIGHASH_ALL byte")

		pubLen := int(scriptSig[1+sigLen])
		require.Equal(t, 33, pubLen)
		require.Equal(t, pubKey, scriptSig[2+sigLen:2+sigLen+pubLen])

		hash, err := txsigner.SignatureHash(unsigned, i, script)
		require.NoError(t, err)

		sig, err := ecdsa.ParseDERSignature(sigWithHashType[:len(sigWithHashType)-1])
		require.NoError(t, err)

		privKey, _ := btcec.PrivKeyFromBytes(secretOne)
		require.True(t, sig.Verify(hash, privKey.PubKey()), "input %d signature", i)
	}

	// Everything but the input scripts survives signing untouched.
	require.Equal(t, unsigned.Version, signed.Version)
	require.Equal(t, unsigned.Outputs, signed.Outputs)
	require.Equal(t, unsigned.Locktime, signed.Locktime)
}

func TestSignTransactionFromWIF(t *testing.T) {
	t.Parallel()

	unsignedHex, err := newTestTx().Serialize()
	require.NoError(t, err)

	// WIF for the well-known key 0c28fca3...72aa1d.
	signedHex, err := txsigner.SignTransaction(
		"5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ", unsignedHex,
	)
	require.NoError(t, err)
	require.NotEmpty(t, signedHex)

	_, err = txsigner.SignTransaction("not$a$wif", unsignedHex)
	require.ErrorIs(t, err, codec.ErrInvalidBase58Char)
}
