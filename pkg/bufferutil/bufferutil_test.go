package bufferutil_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinwarden/signerd/pkg/bufferutil"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	s := bufferutil.NewSerializer()
	s.WriteUint8(0x7a)
	s.WriteUint32(0xdeadbeef)
	s.WriteUint64(21_000_000_0000_0000)
	s.WriteSlice([]byte{1, 2, 3})
	require.NoError(t, s.WriteVarSlice([]byte{4, 5}))

	d := bufferutil.NewDeserializer(s.Bytes())

	u8, err := d.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x7a), u8)

	u32, err := d.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), u32)

	u64, err := d.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(21_000_000_0000_0000), u64)

	slice, err := d.ReadSlice(3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, slice)

	varSlice, err := d.ReadVarSlice()
	require.NoError(t, err)
	require.Equal(t, []byte{4, 5}, varSlice)

	require.True(t, d.Done())
}

func TestLittleEndianLayout(t *testing.T) {
	t.Parallel()

	s := bufferutil.NewSerializer()
	s.WriteUint32(1)
	require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, s.Bytes())
}

func TestTruncatedReads(t *testing.T) {
	t.Parallel()

	d := bufferutil.NewDeserializer([]byte{0x01, 0x02})

	_, err := d.ReadUint32()
	require.ErrorIs(t, err, bufferutil.ErrShortBuffer)

	// A var slice whose declared length exceeds the remaining bytes.
	d = bufferutil.NewDeserializer([]byte{0x05, 0x01})
	_, err = d.ReadVarSlice()
	require.ErrorIs(t, err, bufferutil.ErrShortBuffer)
}

func TestWriteVarSliceTooLong(t *testing.T) {
	t.Parallel()

	s := bufferutil.NewSerializer()
	err := s.WriteVarSlice(bytes.Repeat([]byte{0xaa}, 256))
	require.Error(t, err)
}
