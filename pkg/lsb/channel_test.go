package lsb

import (
	"bitsteg/internal/bits"
	"bitsteg/pkg/bitmap"
	"bitsteg/test"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func fill(value byte, size int) []byte {
	return bytes.Repeat([]byte{value}, size)
}

func openBitmap(t *testing.T, file []byte) *bitmap.Bitmap {
	t.Helper()
	bm, err := bitmap.FromBytes(file)
	require.NoError(t, err)
	return bm
}

func TestMasks(t *testing.T) {
	tests := []struct {
		name         string
		file         []byte
		masks        [4]uint32
		bitsPerPixel uint8
	}{
		{
			name:         "rgb24",
			file:         test.GenerateBMP(2, 2, 24),
			masks:        [4]uint32{0x010000, 0x0100, 0x01, 0},
			bitsPerPixel: 3,
		},
		{
			name:         "rgb8",
			file:         test.GenerateBMP(4, 2, 8),
			masks:        [4]uint32{0x01, 0, 0, 0},
			bitsPerPixel: 1,
		},
		{
			name:         "bitfields32",
			file:         test.GenerateBitfieldsBMP(2, 2, 32, [4]uint32{0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000}),
			masks:        [4]uint32{0x01000000, 0x010000, 0x0100, 0x01},
			bitsPerPixel: 4,
		},
		{
			name:         "bitfields16",
			file:         test.GenerateBitfieldsBMP(2, 2, 16, [4]uint32{0xf800, 0x07e0, 0x001f, 0}),
			masks:        [4]uint32{0x0100, 0x08, 0x01, 0},
			bitsPerPixel: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChannel(openBitmap(t, tt.file))
			require.Equal(t, tt.masks, c.Masks())
			require.Equal(t, tt.bitsPerPixel, c.BitsPerPixel())
		})
	}
}

func TestCapacity(t *testing.T) {
	require.EqualValues(t, 6, NewChannel(openBitmap(t, test.GenerateBMP(4, 4, 24))).Capacity())
	require.EqualValues(t, 1, NewChannel(openBitmap(t, test.GenerateBMP(2, 2, 24))).Capacity())
	require.EqualValues(t, 3, NewChannel(openBitmap(t, test.GenerateBMP(5, 5, 8))).Capacity())
}

func TestWriteBitPlacement(t *testing.T) {
	req := require.New(t)
	file := test.BuildBMP(2, 2, 24, 0, nil, fill(0xfe, 16))
	c := NewChannel(openBitmap(t, file))

	n, err := c.Write([]byte{0xb5})
	req.NoError(err)
	req.Equal(1, n)
	req.NoError(c.Flush())

	// 0xb5 = 101 101 01, the last pixel is untouched
	req.Equal([]byte{
		0xff, 0xfe, 0xff, 0xff, 0xfe, 0xff, 0xfe, 0xfe,
		0xfe, 0xff, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe,
	}, file[54:])
}

func TestReadBitPlacement(t *testing.T) {
	req := require.New(t)
	file := test.BuildBMP(2, 2, 24, 0, nil, []byte{
		0xff, 0xfe, 0xff, 0xff, 0xfe, 0xff, 0x00, 0x00,
		0xfe, 0xff, 0xfe, 0xfe, 0xfe, 0xfe, 0x00, 0x00,
	})
	c := NewChannel(openBitmap(t, file))

	buf := make([]byte, 2)
	n, err := c.Read(buf)
	req.ErrorIs(err, io.EOF)
	req.Equal(1, n)
	req.EqualValues(0xb5, buf[0])
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		file []byte
	}{
		{"rgb24", test.GenerateBMP(33, 17, 24)},
		{"rgb8", test.GenerateBMP(40, 8, 8)},
		{"rgb1", test.GenerateBMP(64, 8, 1)},
		{"bitfields32", test.GenerateBitfieldsBMP(9, 9, 32, [4]uint32{0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000})},
		{"bitfields16", test.GenerateBitfieldsBMP(11, 7, 16, [4]uint32{0xf800, 0x07e0, 0x001f, 0})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			c := NewChannel(openBitmap(t, tt.file))
			payload := test.GenerateRandomBytes(int(c.Capacity()))

			n, err := c.Write(payload)
			req.NoError(err)
			req.Equal(len(payload), n)
			req.NoError(c.Flush())

			// a fresh bitmap over the same bytes must see what was committed
			reader := NewChannel(openBitmap(t, tt.file))
			read := make([]byte, len(payload))
			_, err = io.ReadFull(reader, read)
			req.NoError(err)
			req.Equal(payload, read)
		})
	}
}

func TestSplitWritesMatchSingleWrite(t *testing.T) {
	req := require.New(t)
	pixelData := test.GenerateRandomBytes(test.RowSize(9, 24) * 8)
	first := test.BuildBMP(9, 8, 24, 0, nil, append([]byte(nil), pixelData...))
	second := test.BuildBMP(9, 8, 24, 0, nil, append([]byte(nil), pixelData...))
	payload := []byte("bytes straddle pixels")
	req.LessOrEqual(uint64(len(payload)), NewChannel(openBitmap(t, first)).Capacity())

	whole := NewChannel(openBitmap(t, first))
	_, err := whole.Write(payload)
	req.NoError(err)
	req.NoError(whole.Flush())

	pieces := NewChannel(openBitmap(t, second))
	for _, b := range payload {
		n, err := pieces.Write([]byte{b})
		req.NoError(err)
		req.Equal(1, n)
	}
	req.NoError(pieces.Flush())

	req.Equal(first, second)
}

func TestShortWrite(t *testing.T) {
	req := require.New(t)
	file := test.GenerateBMP(2, 2, 24)
	c := NewChannel(openBitmap(t, file))

	n, err := c.Write([]byte{0x5a, 0xa5})
	req.ErrorIs(err, io.ErrShortWrite)
	req.Equal(1, n)

	// stays exhausted
	n, err = c.Write([]byte{0x01})
	req.ErrorIs(err, io.ErrShortWrite)
	req.Zero(n)
	n, err = c.Read(make([]byte, 1))
	req.ErrorIs(err, io.EOF)
	req.Zero(n)

	c.Reset()
	got := make([]byte, 1)
	_, err = io.ReadFull(c, got)
	req.NoError(err)
	req.EqualValues(0x5a, got[0])
}

func TestNoUsableChannel(t *testing.T) {
	req := require.New(t)
	bm, err := bitmap.New(bits.NewMemStore(make([]byte, 8)), bitmap.Descriptor{
		Width: 2, Height: 2, RowBitStride: 16, Format: bitmap.PixelFormat{Depth: 8},
	})
	req.NoError(err)

	c := NewChannel(bm)
	req.Zero(c.BitsPerPixel())
	req.Zero(c.Capacity())

	n, err := c.Write([]byte{1})
	req.ErrorIs(err, io.ErrShortWrite)
	req.Zero(n)
	n, err = c.Read(make([]byte, 1))
	req.ErrorIs(err, io.EOF)
	req.Zero(n)
}

func TestResetRewinds(t *testing.T) {
	req := require.New(t)
	c := NewChannel(openBitmap(t, test.GenerateBMP(8, 8, 24)))

	_, err := c.Write([]byte("first"))
	req.NoError(err)
	c.Reset()
	_, err = c.Write([]byte("xy"))
	req.NoError(err)
	c.Reset()

	got := make([]byte, 5)
	_, err = io.ReadFull(c, got)
	req.NoError(err)
	req.Equal("xyrst", string(got))
}
