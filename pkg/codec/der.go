package codec

import "math/big"

const (
	derTagInteger  = 0x02
	derTagSequence = 0x30
)

// SignatureDER encodes an ECDSA (r, s) pair as a DER SEQUENCE of two
// INTEGERs, the encoding expected inside a transaction's scriptSig.
func SignatureDER(r, s *big.Int) []byte {
	rBytes := derInteger(r)
	sBytes := derInteger(s)

	sig := make([]byte, 0, 2+len(rBytes)+len(sBytes))
	sig = append(sig, derTagSequence, byte(len(rBytes)+len(sBytes)))
	sig = append(sig, rBytes...)
	sig = append(sig, sBytes...)
	return sig
}

// derInteger encodes a non-negative integer as a DER INTEGER: minimal
// big-endian bytes, with a leading zero whenever the top bit is set so the
// value cannot be read as negative.
func derInteger(n *big.Int) []byte {
	value := n.Bytes()
	if len(value) == 0 {
		value = []byte{0x00}
	}
	if value[0]&0x80 != 0 {
		value = append([]byte{0x00}, value...)
	}

	out := make([]byte, 0, 2+len(value))
	out = append(out, derTagInteger, byte(len(value)))
	return append(out, value...)
}
