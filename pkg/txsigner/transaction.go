// Package txsigner parses, signs and serializes legacy (pre-segwit)
// bitcoin-style transactions.
//
// The wire format handled here uses a single byte for input and output counts
// and for script lengths, instead of bitcoin's variable-length integers. This
// caps transactions at 255 inputs, 255 outputs and 255-byte scripts and
// diverges from network transactions beyond that range; within the range the
// two encodings are byte-identical.
package txsigner

import (
	"encoding/hex"
	"fmt"

	"github.com/coinwarden/signerd/pkg/bufferutil"
)

const prevHashLen = 32

// Input is a reference to a previous output, plus the script that will
// eventually satisfy it.
type Input struct {
	PreviousHash  []byte
	PreviousIndex uint32
	Script        []byte
	Sequence      uint32
}

// Output pays Value satoshis to whoever can satisfy Script.
type Output struct {
	Value  uint64
	Script []byte
}

// Transaction is the in-memory form of a legacy transaction. It lives for a
// single signing operation: parsed, mutated input by input, re-serialized.
type Transaction struct {
	Version  uint32
	Inputs   []*Input
	Outputs  []*Output
	Locktime uint32
}

// ParseTransaction decodes a hex-encoded transaction.
func ParseTransaction(txHex string) (*Transaction, error) {
	raw, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex: %v", ErrMalformedTransaction, err)
	}

	d := bufferutil.NewDeserializer(raw)
	tx := &Transaction{}

	if tx.Version, err = d.ReadUint32(); err != nil {
		return nil, decodeErr("version", err)
	}

	inCount, err := d.ReadUint8()
	if err != nil {
		return nil, decodeErr("input count", err)
	}
	tx.Inputs = make([]*Input, 0, inCount)
	for i := 0; i < int(inCount); i++ {
		in := &Input{}
		if in.PreviousHash, err = d.ReadSlice(prevHashLen); err != nil {
			return nil, decodeErr("previous hash", err)
		}
		if in.PreviousIndex, err = d.ReadUint32(); err != nil {
			return nil, decodeErr("previous index", err)
		}
		if in.Script, err = d.ReadVarSlice(); err != nil {
			return nil, decodeErr("input script", err)
		}
		if in.Sequence, err = d.ReadUint32(); err != nil {
			return nil, decodeErr("sequence", err)
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	outCount, err := d.ReadUint8()
	if err != nil {
		return nil, decodeErr("output count", err)
	}
	tx.Outputs = make([]*Output, 0, outCount)
	for i := 0; i < int(outCount); i++ {
		out := &Output{}
		if out.Value, err = d.ReadUint64(); err != nil {
			return nil, decodeErr("output value", err)
		}
		if out.Script, err = d.ReadVarSlice(); err != nil {
			return nil, decodeErr("output script", err)
		}
		tx.Outputs = append(tx.Outputs, out)
	}

	if tx.Locktime, err = d.ReadUint32(); err != nil {
		return nil, decodeErr("locktime", err)
	}

	return tx, nil
}

// Serialize encodes the transaction back to hex, field for field the inverse
// of ParseTransaction.
func (tx *Transaction) Serialize() (string, error) {
	s := bufferutil.NewSerializer()

	s.WriteUint32(tx.Version)

	if len(tx.Inputs) > 0xff {
		return "", fmt.Errorf("%w: %d inputs exceed single-byte count", ErrMalformedTransaction, len(tx.Inputs))
	}
	s.WriteUint8(uint8(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		s.WriteSlice(in.PreviousHash)
		s.WriteUint32(in.PreviousIndex)
		if err := s.WriteVarSlice(in.Script); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		s.WriteUint32(in.Sequence)
	}

	if len(tx.Outputs) > 0xff {
		return "", fmt.Errorf("%w: %d outputs exceed single-byte count", ErrMalformedTransaction, len(tx.Outputs))
	}
	s.WriteUint8(uint8(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		s.WriteUint64(out.Value)
		if err := s.WriteVarSlice(out.Script); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
	}

	s.WriteUint32(tx.Locktime)

	return hex.EncodeToString(s.Bytes()), nil
}

// TotalOutputValue sums the satoshi amounts of all outputs.
func (tx *Transaction) TotalOutputValue() uint64 {
	var total uint64
	for _, out := range tx.Outputs {
		total += out.Value
	}
	return total
}

func decodeErr(field string, err error) error {
	return fmt.Errorf("%w: reading %s: %v", ErrMalformedTransaction, field, err)
}
