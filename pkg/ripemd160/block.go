package ripemd160

import "math/bits"

// Message word selection order per round, left and right lanes.
var rhoLeft = [80]uint{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	7, 4, 13, 1, 10, 6, 15, 3, 12, 0, 9, 5, 2, 14, 11, 8,
	3, 10, 14, 4, 9, 15, 8, 1, 2, 7, 0, 6, 13, 11, 5, 12,
	1, 9, 11, 10, 0, 8, 12, 4, 13, 3, 7, 15, 14, 5, 6, 2,
	4, 0, 5, 9, 7, 12, 2, 10, 14, 1, 3, 8, 11, 6, 15, 13,
}

var rhoRight = [80]uint{
	5, 14, 7, 0, 9, 2, 11, 4, 13, 6, 15, 8, 1, 10, 3, 12,
	6, 11, 3, 7, 0, 13, 5, 10, 14, 15, 8, 12, 4, 9, 1, 2,
	15, 5, 1, 3, 7, 14, 6, 9, 11, 8, 12, 2, 10, 0, 4, 13,
	8, 6, 4, 1, 3, 11, 15, 0, 5, 12, 2, 13, 9, 7, 10, 14,
	12, 15, 10, 4, 1, 5, 8, 7, 6, 2, 13, 14, 0, 3, 9, 11,
}

// Left-rotate amounts per round, left and right lanes.
var shiftLeft = [80]uint{
	11, 14, 15, 12, 5, 8, 7, 9, 11, 13, 14, 15, 6, 7, 9, 8,
	7, 6, 8, 13, 11, 9, 7, 15, 7, 12, 15, 9, 11, 7, 13, 12,
	11, 13, 6, 7, 14, 9, 13, 15, 14, 8, 13, 6, 5, 12, 7, 5,
	11, 12, 14, 15, 14, 15, 9, 8, 9, 14, 5, 6, 8, 6, 5, 12,
	9, 15, 5, 11, 6, 8, 13, 12, 5, 12, 13, 14, 11, 8, 5, 6,
}

var shiftRight = [80]uint{
	8, 9, 9, 11, 13, 15, 15, 5, 7, 7, 8, 11, 14, 14, 12, 6,
	9, 13, 15, 7, 12, 8, 9, 11, 7, 7, 12, 7, 6, 15, 13, 11,
	9, 7, 15, 11, 8, 6, 6, 14, 12, 13, 5, 14, 13, 13, 7, 5,
	15, 5, 8, 11, 14, 14, 6, 14, 6, 9, 12, 9, 12, 5, 15, 8,
	8, 5, 12, 9, 12, 5, 14, 6, 8, 13, 6, 5, 15, 13, 11, 11,
}

var kLeft = [5]uint32{0x00000000, 0x5a827999, 0x6ed9eba1, 0x8f1bbcdc, 0xa953fd4e}

var kRight = [5]uint32{0x50a28be6, 0x5c4dd124, 0x6d703ef3, 0x7a6d76e9, 0x00000000}

// round applies the boolean function of round r (0..4). The right lane uses
// the functions in reverse order by passing 4-r.
func round(r int, x, y, z uint32) uint32 {
	switch r {
	case 0:
		return x ^ y ^ z
	case 1:
		return (x & y) | (^x & z)
	case 2:
		return (x | ^y) ^ z
	case 3:
		return (x & z) | (y & ^z)
	default:
		return x ^ (y | ^z)
	}
}

func block(d *digest, p []byte) {
	var x [16]uint32
	for i := 0; i < 16; i++ {
		x[i] = uint32(p[i*4]) | uint32(p[i*4+1])<<8 |
			uint32(p[i*4+2])<<16 | uint32(p[i*4+3])<<24
	}

	a, b, c, e, f := d.s[0], d.s[1], d.s[2], d.s[3], d.s[4]
	aa, bb, cc, ee, ff := a, b, c, e, f

	for j := 0; j < 80; j++ {
		r := j / 16

		t := bits.RotateLeft32(a+round(r, b, c, e)+x[rhoLeft[j]]+kLeft[r], int(shiftLeft[j])) + f
		a, f, e, c, b = f, e, bits.RotateLeft32(c, 10), b, t

		t = bits.RotateLeft32(aa+round(4-r, bb, cc, ee)+x[rhoRight[j]]+kRight[r], int(shiftRight[j])) + ff
		aa, ff, ee, cc, bb = ff, ee, bits.RotateLeft32(cc, 10), bb, t
	}

	t := d.s[1] + c + ee
	d.s[1] = d.s[2] + e + ff
	d.s[2] = d.s[3] + f + aa
	d.s[3] = d.s[4] + a + bb
	d.s[4] = d.s[0] + b + cc
	d.s[0] = t
}
