package bitmap

import (
	"fmt"
	"math/bits"
)

// PixelFormat describes how a pixel value is laid out. Masks select the bits of each channel inside the depth bit
// value read from the image, a zero mask means the channel is absent.
type PixelFormat struct {
	Depth     uint8  `json:"depth"`
	RedMask   uint32 `json:"red_mask"`
	GreenMask uint32 `json:"green_mask"`
	BlueMask  uint32 `json:"blue_mask"`
	AlphaMask uint32 `json:"alpha_mask"`
}

// RGB24 is the implicit layout of uncompressed 24 bit images
var RGB24 = PixelFormat{Depth: 24, RedMask: 0xff0000, GreenMask: 0xff00, BlueMask: 0xff}

func (f PixelFormat) Validate() error {
	if f.Depth < 1 || f.Depth > 32 {
		return fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedDepth, f.Depth)
	}
	return nil
}

// Masks returns the channel masks in red, green, blue, alpha order
func (f PixelFormat) Masks() [4]uint32 {
	return [4]uint32{f.RedMask, f.GreenMask, f.BlueMask, f.AlphaMask}
}

// ValueMask returns the mask covering a whole depth bit value
func (f PixelFormat) ValueMask() uint32 {
	if f.Depth >= 32 {
		return 0xffffffff
	}
	return 1<<f.Depth - 1
}

// LowestSetBit keeps only the lowest set bit of mask, 0 stays 0.
//
//	LowestSetBit(0xff0000) == 0x010000
func LowestSetBit(mask uint32) uint32 {
	tz := bits.TrailingZeros32(mask)
	if tz >= 32 {
		return 0
	}
	return 1 << tz
}
