package test

import (
	"encoding/binary"
	"math/rand"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	// BITMAPV3INFOHEADER, an info header followed by the four channel masks
	v3InfoHeaderSize = 56
)

func GenerateRandomBytes(numOfBytesToGenerate int) []byte {
	generatedBytes := make([]byte, numOfBytesToGenerate)
	_, err := rand.Read(generatedBytes)
	if err != nil {
		panic(err)
	}
	return generatedBytes
}

// RowSize returns the padded size in bytes of a bitmap row
func RowSize(width int32, depth uint16) int {
	return (int(width)*int(depth) + 31) / 32 * 4
}

// GenerateBMP builds an uncompressed bitmap filled with random pixels
func GenerateBMP(width, height int32, depth uint16) []byte {
	return BuildBMP(width, height, depth, 0, nil, nil)
}

// GenerateBitfieldsBMP builds a BI_BITFIELDS bitmap with random pixels. masks are given in red, green, blue, alpha
// order, as the little endian values a bitmap header stores.
func GenerateBitfieldsBMP(width, height int32, depth uint16, masks [4]uint32) []byte {
	return BuildBMP(width, height, depth, 3, masks[:], nil)
}

// BuildBMP lays out a bitmap file. When masks is not empty a V3 info header carrying them is written. pixelData is
// copied into the pixel array, random bytes are used when it is nil.
func BuildBMP(width, height int32, depth uint16, compression uint32, masks []uint32, pixelData []byte) []byte {
	absHeight := height
	if absHeight < 0 {
		absHeight = -absHeight
	}

	dibHeaderSize := infoHeaderSize
	if len(masks) > 0 {
		dibHeaderSize = v3InfoHeaderSize
	}
	offset := fileHeaderSize + dibHeaderSize
	dataSize := RowSize(width, depth) * int(absHeight)
	if pixelData == nil {
		pixelData = GenerateRandomBytes(dataSize)
	}

	file := make([]byte, offset+dataSize)
	le := binary.LittleEndian
	file[0], file[1] = 'B', 'M'
	le.PutUint32(file[2:], uint32(len(file)))
	le.PutUint32(file[10:], uint32(offset))
	le.PutUint32(file[14:], uint32(dibHeaderSize))
	le.PutUint32(file[18:], uint32(width))
	le.PutUint32(file[22:], uint32(height))
	le.PutUint16(file[26:], 1)
	le.PutUint16(file[28:], depth)
	le.PutUint32(file[30:], compression)
	le.PutUint32(file[34:], uint32(dataSize))
	for i, mask := range masks {
		le.PutUint32(file[54+4*i:], mask)
	}
	copy(file[offset:], pixelData)

	return file
}
