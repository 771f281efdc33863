package bitmap

// Pixels walks a bitmap in raster order, left to right then top to bottom in storage order. Each call to Next hands
// out a fresh Pixel.
type Pixels struct {
	bitmap      *Bitmap
	column, row uint32
}

// Next returns the pixel under the cursor and moves past it, ok is false once every row has been visited
func (ps *Pixels) Next() (p *Pixel, ok bool) {
	if ps.row >= ps.bitmap.desc.Height || ps.column >= ps.bitmap.desc.Width {
		return nil, false
	}

	p = ps.bitmap.newPixel(ps.column, ps.row)
	ps.advance()
	return p, true
}

func (ps *Pixels) advance() {
	ps.column++
	if ps.column >= ps.bitmap.desc.Width {
		ps.column = 0
		ps.row++
	}
}
