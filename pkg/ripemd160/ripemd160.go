// Package ripemd160 implements the RIPEMD-160 hash algorithm as defined by
// Dobbertin, Bosselaers and Preneel. It is used for building pay-to-pubkey-hash
// scripts and base58check addresses, where the 20-byte digest of
// RIPEMD160(SHA256(pubkey)) identifies the key owner.
package ripemd160

import "hash"

// Size is the size of a RIPEMD-160 checksum in bytes.
const Size = 20

// BlockSize is the block size of RIPEMD-160 in bytes.
const BlockSize = 64

const (
	s0 = 0x67452301
	s1 = 0xefcdab89
	s2 = 0x98badcfe
	s3 = 0x10325476
	s4 = 0xc3d2e1f0
)

type digest struct {
	s   [5]uint32
	x   [BlockSize]byte
	nx  int
	len uint64
}

// New returns a new hash.Hash computing the RIPEMD-160 checksum.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Sum returns the RIPEMD-160 checksum of the data.
func Sum(data []byte) [Size]byte {
	d := new(digest)
	d.Reset()
	d.Write(data)
	var out [Size]byte
	copy(out[:], d.checkSum())
	return out
}

func (d *digest) Reset() {
	d.s = [5]uint32{s0, s1, s2, s3, s4}
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			block(d, d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	for len(p) >= BlockSize {
		block(d, p[:BlockSize])
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

func (d *digest) Sum(in []byte) []byte {
	// Make a copy so callers can keep writing.
	d0 := *d
	return append(in, d0.checkSum()...)
}

// checkSum applies the MD4-family padding (0x80, zeros, 64-bit little-endian
// bit length) and returns the final digest, little-endian per state word.
func (d *digest) checkSum() []byte {
	bitLen := d.len << 3

	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	padLen := BlockSize - int((d.len+8)%BlockSize)
	for i := 0; i < 8; i++ {
		pad[padLen+i] = byte(bitLen >> (8 * uint(i)))
	}
	d.Write(pad[:padLen+8])

	out := make([]byte, Size)
	for i, w := range d.s {
		out[i*4] = byte(w)
		out[i*4+1] = byte(w >> 8)
		out[i*4+2] = byte(w >> 16)
		out[i*4+3] = byte(w >> 24)
	}
	return out
}
