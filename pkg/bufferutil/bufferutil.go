// Package bufferutil provides little-endian binary readers and writers for
// the fixed-layout transaction wire format.
package bufferutil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer is returned by every Deserializer read that runs past the
// end of the underlying buffer.
var ErrShortBuffer = errors.New("unexpected end of buffer")

// Serializer accumulates little-endian encoded fields.
type Serializer struct {
	buf bytes.Buffer
}

// NewSerializer returns an empty Serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// WriteUint8 appends a single byte.
func (s *Serializer) WriteUint8(v uint8) {
	s.buf.WriteByte(v)
}

// WriteUint32 appends v as 4 little-endian bytes.
func (s *Serializer) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	s.buf.Write(b[:])
}

// WriteUint64 appends v as 8 little-endian bytes.
func (s *Serializer) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	s.buf.Write(b[:])
}

// WriteSlice appends the raw bytes of v.
func (s *Serializer) WriteSlice(v []byte) {
	s.buf.Write(v)
}

// WriteVarSlice appends a single length byte followed by the bytes of v.
// Slices longer than 255 bytes do not fit the length prefix.
func (s *Serializer) WriteVarSlice(v []byte) error {
	if len(v) > 0xff {
		return fmt.Errorf("slice of %d bytes exceeds single-byte length prefix", len(v))
	}
	s.buf.WriteByte(byte(len(v)))
	s.buf.Write(v)
	return nil
}

// Bytes returns the serialized buffer.
func (s *Serializer) Bytes() []byte {
	return s.buf.Bytes()
}

// Deserializer reads little-endian encoded fields from a byte slice.
type Deserializer struct {
	data   []byte
	offset int
}

// NewDeserializer wraps data for sequential reads.
func NewDeserializer(data []byte) *Deserializer {
	return &Deserializer{data: data}
}

// ReadUint8 consumes one byte.
func (d *Deserializer) ReadUint8() (uint8, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint32 consumes 4 bytes as a little-endian uint32.
func (d *Deserializer) ReadUint32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadUint64 consumes 8 bytes as a little-endian uint64.
func (d *Deserializer) ReadUint64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadSlice consumes exactly n bytes and returns a copy.
func (d *Deserializer) ReadSlice(n int) ([]byte, error) {
	b, err := d.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadVarSlice consumes a single length byte followed by that many bytes.
func (d *Deserializer) ReadVarSlice() ([]byte, error) {
	n, err := d.ReadUint8()
	if err != nil {
		return nil, err
	}
	return d.ReadSlice(int(n))
}

// Done reports whether the whole buffer has been consumed.
func (d *Deserializer) Done() bool {
	return d.offset >= len(d.data)
}

func (d *Deserializer) take(n int) ([]byte, error) {
	if d.offset+n > len(d.data) {
		return nil, fmt.Errorf(
			"%w: need %d bytes at offset %d of %d",
			ErrShortBuffer, n, d.offset, len(d.data),
		)
	}
	b := d.data[d.offset : d.offset+n]
	d.offset += n
	return b, nil
}
