package image

import (
	"bitsteg/pkg/config"
	"bitsteg/pkg/lsb"
	"bitsteg/test"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// hideRaw writes bytes through the channel without any framing
func hideRaw(t *testing.T, file []byte, raw []byte) {
	t.Helper()
	c := lsb.NewChannel(openBitmap(t, file))
	_, err := c.Write(raw)
	require.NoError(t, err)
	require.NoError(t, c.Flush())
}

func lengthPrefix(length uint32) []byte {
	prefix := make([]byte, lengthPrefixSize)
	binary.LittleEndian.PutUint32(prefix, length)
	return prefix
}

func TestDecodeFileBounds(t *testing.T) {
	tests := []struct {
		name string
		file []byte
		raw  []byte
	}{
		{"prefix-too-large", test.GenerateBMP(10, 10, 24), lengthPrefix(34)},
		{"prefix-max", test.GenerateBMP(10, 10, 24), lengthPrefix(0xffffffff)},
		{"no-room-for-prefix", test.GenerateBMP(2, 2, 24), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.raw != nil {
				hideRaw(t, tt.file, tt.raw)
			}
			_, err := NewImageDecoder(openBitmap(t, tt.file), config.DecodeConfig{}).Decode()
			require.ErrorIs(t, err, ErrDecodeFileBounds)
		})
	}
}

func TestDecodeLargestPayload(t *testing.T) {
	file := test.GenerateBMP(10, 10, 24)
	hideRaw(t, file, lengthPrefix(33))

	decoded, err := NewImageDecoder(openBitmap(t, file), config.DecodeConfig{}).Decode()
	require.NoError(t, err)
	require.Len(t, decoded, 33)
}

func TestDecodeEmptyPayload(t *testing.T) {
	file := test.GenerateBMP(10, 10, 24)
	hideRaw(t, file, lengthPrefix(0))

	decoded, err := NewImageDecoder(openBitmap(t, file), config.DecodeConfig{}).Decode()
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestDecodeMaxAllocExceeded(t *testing.T) {
	file := test.GenerateBMP(10, 10, 24)
	require.NoError(t, NewImageEncoder(openBitmap(t, file), config.EncodeConfig{}).Encode([]byte("0123456789")))

	_, err := NewImageDecoder(openBitmap(t, file), config.DecodeConfig{MaxPayloadSize: 9}).Decode()
	require.ErrorIs(t, err, ErrMaxAllocExceeded)

	decoded, err := NewImageDecoder(openBitmap(t, file), config.DecodeConfig{MaxPayloadSize: 10}).Decode()
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(decoded))
}

func TestDecodeTextInvalidUTF8(t *testing.T) {
	file := test.GenerateBMP(10, 10, 24)
	require.NoError(t, NewImageEncoder(openBitmap(t, file), config.EncodeConfig{}).Encode([]byte{0xff, 0xfe, 0x41}))

	decoder := NewImageDecoder(openBitmap(t, file), config.DecodeConfig{})
	_, err := decoder.DecodeText()
	require.ErrorIs(t, err, ErrEncoding)

	raw, err := decoder.Decode()
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xfe, 0x41}, raw)
	require.EqualValues(t, lengthPrefixSize+3, decoder.Stats().BytesRead)
}

func TestInfo(t *testing.T) {
	info := Info(openBitmap(t, test.GenerateBitfieldsBMP(10, 4, 16, [4]uint32{0xf800, 0x07e0, 0x001f, 0})))

	require.EqualValues(t, 10, info.Width)
	require.EqualValues(t, 4, info.Height)
	require.EqualValues(t, 16, info.Depth)
	require.Equal(t, [4]uint32{0x00f8, 0xe007, 0x1f00, 0}, info.Masks)
	require.Equal(t, [4]uint32{0x0100, 0x08, 0x01, 0}, info.ChannelMasks)
	require.EqualValues(t, 3, info.BitsPerPixel)
	require.EqualValues(t, 10*4*3/8-4, info.Capacity)
}
