package bitmap

import "errors"

var (
	ErrOutOfBounds = errors.New("pixel is outside of the image")
)

// Pixel accesses the value of one raster cell. The value is read from the bitmap once and cached, two Pixel values
// for the same cell cache independently, so a write through one is not seen by a stale copy of the other.
type Pixel struct {
	bitmap      *Bitmap
	offset      uint64
	column, row uint32

	value  uint32
	cached bool
}

func (b *Bitmap) newPixel(column, row uint32) *Pixel {
	return &Pixel{
		bitmap: b,
		offset: b.desc.PixelOffset(column, row),
		column: column,
		row:    row,
	}
}

func (p *Pixel) Column() uint32 {
	return p.column
}

func (p *Pixel) Row() uint32 {
	return p.row
}

// Offset is the position of the pixel in bits from the start of the store
func (p *Pixel) Offset() uint64 {
	return p.offset
}

func (p *Pixel) Format() PixelFormat {
	return p.bitmap.desc.Format
}

// Value returns the depth bit value of the pixel, reading it on first use
func (p *Pixel) Value() (uint32, error) {
	if p.cached {
		return p.value, nil
	}

	value, err := p.bitmap.readAt(p.offset, p.bitmap.desc.Format.Depth)
	if err != nil {
		return 0, err
	}
	p.value, p.cached = value, true
	return p.value, nil
}

// SetValue truncates value to the pixel depth and writes it through to the bitmap
func (p *Pixel) SetValue(value uint32) error {
	format := p.bitmap.desc.Format
	p.value, p.cached = value&format.ValueMask(), true
	return p.bitmap.writeAt(p.offset, p.value, format.Depth)
}
