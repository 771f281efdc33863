package bitmap

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Header field positions, all relative to the start of the file
const (
	offsetToPixelsPosition = 0x0A
	dibHeaderSizePosition  = 0x0E
	widthPosition          = 0x12
	heightPosition         = 0x16
	pixelDepthPosition     = 0x1C
	compressionPosition    = 0x1E
	rawDataSizePosition    = 0x22

	// Channel masks, only present for BI_BITFIELDS
	redMaskPosition   = 0x36
	greenMaskPosition = 0x3A
	blueMaskPosition  = 0x3E
	alphaMaskPosition = 0x42

	// file header + BITMAPINFOHEADER
	minHeaderSize = 54
	// BITMAPV3INFOHEADER is the first DIB header with an alpha mask
	alphaMaskDIBHeaderSize = 56

	// HeaderPeekSize is how many bytes are read from the start of a file to parse its header
	HeaderPeekSize = 256
)

const (
	CompressionRGB       = 0
	CompressionBitfields = 3
)

var fileSignature = [2]byte{'B', 'M'}

var (
	ErrFormat                 = errors.New("invalid bitmap")
	ErrInvalidSignature       = fmt.Errorf("%w: invalid file signature", ErrFormat)
	ErrTruncated              = fmt.Errorf("%w: file is truncated", ErrFormat)
	ErrInvalidDimensions      = fmt.Errorf("%w: invalid image dimensions", ErrFormat)
	ErrUnsupportedCompression = fmt.Errorf("%w: unsupported pixel compression type", ErrFormat)
	ErrUnsupportedDepth       = fmt.Errorf("%w: unsupported pixel depth", ErrFormat)
)

// Descriptor locates the pixel array of an image. Offset is in bytes from the start of the store, RowBitStride is
// the length of a row in bits including its padding.
type Descriptor struct {
	Offset       uint32      `json:"offset"`
	Width        uint32      `json:"width"`
	Height       uint32      `json:"height"`
	RowBitStride uint32      `json:"row_bit_stride"`
	Format       PixelFormat `json:"pixel_format"`
}

func (d Descriptor) Validate() error {
	if err := d.Format.Validate(); err != nil {
		return err
	}
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, d.Width, d.Height)
	}
	if uint64(d.RowBitStride) < uint64(d.Width)*uint64(d.Format.Depth) {
		return fmt.Errorf("%w: row of %d bits cannot hold %d pixels of %d bits", ErrInvalidDimensions,
			d.RowBitStride, d.Width, d.Format.Depth)
	}
	return nil
}

// PixelOffset returns the bit offset of a pixel inside the store
func (d Descriptor) PixelOffset(column, row uint32) uint64 {
	return uint64(d.Offset)*8 + uint64(row)*uint64(d.RowBitStride) + uint64(column)*uint64(d.Format.Depth)
}

// EndBit returns the bit offset right after the last pixel
func (d Descriptor) EndBit() uint64 {
	return d.PixelOffset(d.Width-1, d.Height-1) + uint64(d.Format.Depth)
}

// ParseHeader validates a bitmap header and describes its pixel array. header holds the first bytes of the file and
// fileSize its total length, used to reject files whose pixel array is cut short.
func ParseHeader(header []byte, fileSize int64) (Descriptor, error) {
	if len(header) < len(fileSignature) || header[0] != fileSignature[0] || header[1] != fileSignature[1] {
		return Descriptor{}, ErrInvalidSignature
	}
	if len(header) < minHeaderSize {
		return Descriptor{}, ErrTruncated
	}

	le := binary.LittleEndian
	offset := le.Uint32(header[offsetToPixelsPosition:])
	dibHeaderSize := le.Uint32(header[dibHeaderSizePosition:])
	width := int32(le.Uint32(header[widthPosition:]))
	height := int32(le.Uint32(header[heightPosition:]))
	depth := le.Uint16(header[pixelDepthPosition:])
	compression := le.Uint32(header[compressionPosition:])
	rawDataSize := le.Uint32(header[rawDataSizePosition:])

	if width <= 0 || height == 0 {
		return Descriptor{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	// Top-down images store a negative height, rows are walked in storage order either way
	if height < 0 {
		height = -height
	}
	if depth < 1 || depth > 32 {
		return Descriptor{}, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedDepth, depth)
	}

	format := PixelFormat{Depth: uint8(depth)}
	switch compression {
	case CompressionRGB:
		if depth == 24 {
			format = RGB24
		} else {
			format.RedMask = 1
		}
	case CompressionBitfields:
		if len(header) < blueMaskPosition+4 {
			return Descriptor{}, ErrTruncated
		}
		// Pixel values are read most significant bit first, so a little endian pixel appears byte swapped. Reading
		// the masks big endian and dropping the bits beyond depth swaps them the same way.
		shift := 32 - depth
		be := binary.BigEndian
		format.RedMask = be.Uint32(header[redMaskPosition:]) >> shift
		format.GreenMask = be.Uint32(header[greenMaskPosition:]) >> shift
		format.BlueMask = be.Uint32(header[blueMaskPosition:]) >> shift
		if dibHeaderSize >= alphaMaskDIBHeaderSize && len(header) >= alphaMaskPosition+4 {
			format.AlphaMask = be.Uint32(header[alphaMaskPosition:]) >> shift
		}
	default:
		return Descriptor{}, fmt.Errorf("%w: %d", ErrUnsupportedCompression, compression)
	}

	rowBits := uint64(width) * uint64(depth)
	stride := (rowBits + 31) / 32 * 32
	if rawDataSize != 0 {
		if fromSize := uint64(rawDataSize) / uint64(height) * 8; fromSize >= rowBits {
			stride = fromSize
		}
	}
	if stride > 0xffffffff {
		return Descriptor{}, fmt.Errorf("%w: rows too long", ErrInvalidDimensions)
	}

	desc := Descriptor{
		Offset:       offset,
		Width:        uint32(width),
		Height:       uint32(height),
		RowBitStride: uint32(stride),
		Format:       format,
	}
	if err := desc.Validate(); err != nil {
		return Descriptor{}, err
	}
	if desc.EndBit() > uint64(fileSize)*8 {
		return Descriptor{}, fmt.Errorf("%w: pixel data needs %d bytes, file has %d", ErrTruncated,
			(desc.EndBit()+7)/8, fileSize)
	}

	return desc, nil
}
