package lsb

import (
	"bitsteg/pkg/bitmap"
	"io"
	"sort"
)

// Channel is a byte stream stored in the lowest bit of every color channel of a bitmap. Payload bits are written
// MSB first, each pixel carries one bit per non-zero channel mask and bytes freely straddle pixels.
type Channel struct {
	bitmap       *bitmap.Bitmap
	masks        [4]uint32
	bitsPerPixel uint8

	pixels    *bitmap.Pixels
	current   *bitmap.Pixel
	bitPos    uint8
	exhausted bool
}

// NewChannel opens a channel positioned on pixel (0, 0)
func NewChannel(bm *bitmap.Bitmap) *Channel {
	c := &Channel{bitmap: bm}

	masks := bm.PixelFormat().Masks()
	for i, mask := range masks {
		c.masks[i] = bitmap.LowestSetBit(mask)
	}
	// Channel identity does not matter, the numeric order fixes which bit carries which payload bit
	sort.Slice(c.masks[:], func(i, j int) bool {
		return c.masks[i] > c.masks[j]
	})
	for _, mask := range c.masks {
		if mask != 0 {
			c.bitsPerPixel++
		}
	}

	c.Reset()
	return c
}

// Reset rewinds the channel to pixel (0, 0). Pending writes are kept, call Flush to commit them.
func (c *Channel) Reset() {
	c.pixels = c.bitmap.Pixels()
	c.current = nil
	c.bitPos = 0
	c.exhausted = c.bitsPerPixel == 0
}

// Masks returns the single bit channel masks in the order payload bits are assigned to them
func (c *Channel) Masks() [4]uint32 {
	return c.masks
}

func (c *Channel) BitsPerPixel() uint8 {
	return c.bitsPerPixel
}

// Capacity is the number of whole bytes the image can carry
func (c *Channel) Capacity() uint64 {
	return uint64(c.bitmap.Width()) * uint64(c.bitmap.Height()) * uint64(c.bitsPerPixel) / 8
}

// Read fills p with payload bytes. Running out of pixels ends the stream with io.EOF, a byte left incomplete by
// the last pixel is dropped.
func (c *Channel) Read(p []byte) (n int, err error) {
	for n < len(p) {
		var b byte
		for i := 0; i < 8; i++ {
			pixel, mask, ok := c.nextSlot()
			if !ok {
				return n, io.EOF
			}
			value, err := pixel.Value()
			if err != nil {
				return n, err
			}
			b <<= 1
			if value&mask != 0 {
				b |= 1
			}
		}
		p[n] = b
		n++
	}
	return n, nil
}

// Write distributes p over the pixels following the last one written. When the image is full the count of
// completely written bytes is returned with io.ErrShortWrite.
func (c *Channel) Write(p []byte) (n int, err error) {
	for _, b := range p {
		for i := 7; i >= 0; i-- {
			pixel, mask, ok := c.nextSlot()
			if !ok {
				return n, io.ErrShortWrite
			}
			value, err := pixel.Value()
			if err != nil {
				return n, err
			}
			if b>>i&1 == 1 {
				value |= mask
			} else {
				value &^= mask
			}
			if err = pixel.SetValue(value); err != nil {
				return n, err
			}
		}
		n++
	}
	return n, nil
}

// Flush commits a partially written trailing byte to the underlying store
func (c *Channel) Flush() error {
	return c.bitmap.Flush()
}

// nextSlot returns the pixel and mask the next payload bit goes through, moving to the next pixel once every mask
// of the current one was used. ok is false when the image has no pixel left.
func (c *Channel) nextSlot() (pixel *bitmap.Pixel, mask uint32, ok bool) {
	if c.exhausted {
		return nil, 0, false
	}
	if c.current == nil || c.bitPos == c.bitsPerPixel {
		next, ok := c.pixels.Next()
		if !ok {
			c.exhausted = true
			return nil, 0, false
		}
		c.current, c.bitPos = next, 0
	}

	mask = c.masks[c.bitPos]
	c.bitPos++
	return c.current, mask, true
}
