package bitmap

import (
	"bitsteg/internal/bits"
	"bitsteg/test"
	"bytes"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// 2x2 24 bit image, rows padded to 8 bytes
var rgb24PixelData = []byte{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x00, 0x00,
	0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x00, 0x00,
}

func openTestBitmap(t *testing.T, file []byte) *Bitmap {
	t.Helper()
	bm, err := FromBytes(file)
	require.NoError(t, err)
	return bm
}

func TestPixelValue(t *testing.T) {
	req := require.New(t)
	bm := openTestBitmap(t, test.BuildBMP(2, 2, 24, 0, nil, rgb24PixelData))

	expected := map[[2]uint32]uint32{
		{0, 0}: 0x010203,
		{1, 0}: 0x040506,
		{0, 1}: 0x070809,
		{1, 1}: 0x0a0b0c,
	}
	for cell, value := range expected {
		p, err := bm.PixelAt(cell[0], cell[1])
		req.NoError(err)
		v, err := p.Value()
		req.NoError(err)
		req.Equal(value, v, "pixel %v", cell)
	}

	_, err := bm.PixelAt(2, 0)
	req.ErrorIs(err, ErrOutOfBounds)
	_, err = bm.PixelAt(0, 2)
	req.ErrorIs(err, ErrOutOfBounds)
}

func TestSetValueTruncatesToDepth(t *testing.T) {
	req := require.New(t)
	file := test.BuildBMP(2, 2, 24, 0, nil, rgb24PixelData)
	bm := openTestBitmap(t, file)

	p, err := bm.PixelAt(1, 0)
	req.NoError(err)
	req.NoError(p.SetValue(0xff123456))

	v, err := p.Value()
	req.NoError(err)
	req.EqualValues(0x123456, v)

	out, err := bm.Bytes()
	req.NoError(err)
	req.Equal([]byte{0x01, 0x02, 0x03, 0x12, 0x34, 0x56, 0x00, 0x00}, out[54:62])
}

func TestSubBytePixels(t *testing.T) {
	req := require.New(t)
	pixelData := []byte{
		0xab, 0xc0, 0x00, 0x00,
		0x12, 0x30, 0x00, 0x00,
	}
	bm := openTestBitmap(t, test.BuildBMP(3, 2, 4, 0, nil, pixelData))
	req.Equal(PixelFormat{Depth: 4, RedMask: 1}, bm.PixelFormat())

	var values []uint32
	pixels := bm.Pixels()
	for p, ok := pixels.Next(); ok; p, ok = pixels.Next() {
		v, err := p.Value()
		req.NoError(err)
		values = append(values, v)
	}
	req.Equal([]uint32{0xa, 0xb, 0xc, 0x1, 0x2, 0x3}, values)

	p, err := bm.PixelAt(1, 0)
	req.NoError(err)
	req.NoError(p.SetValue(0xf))
	p, err = bm.PixelAt(2, 1)
	req.NoError(err)
	req.NoError(p.SetValue(0x1e))

	out, err := bm.Bytes()
	req.NoError(err)
	req.Equal([]byte{0xaf, 0xc0, 0x00, 0x00, 0x12, 0xe0, 0x00, 0x00}, out[54:])
}

func TestDuplicatePixelsCacheIndependently(t *testing.T) {
	req := require.New(t)
	bm := openTestBitmap(t, test.BuildBMP(2, 2, 24, 0, nil, rgb24PixelData))

	first, err := bm.PixelAt(0, 1)
	req.NoError(err)
	second, err := bm.PixelAt(0, 1)
	req.NoError(err)

	v, err := first.Value()
	req.NoError(err)
	req.EqualValues(0x070809, v)

	req.NoError(second.SetValue(0xabcdef))

	stale, err := first.Value()
	req.NoError(err)
	req.EqualValues(0x070809, stale)

	fresh, err := bm.PixelAt(0, 1)
	req.NoError(err)
	v, err = fresh.Value()
	req.NoError(err)
	req.EqualValues(0xabcdef, v)
}

func TestPixelsRasterOrder(t *testing.T) {
	req := require.New(t)
	bm := openTestBitmap(t, test.GenerateBMP(3, 2, 24))

	collect := func(ps *Pixels) [][2]uint32 {
		var cells [][2]uint32
		for p, ok := ps.Next(); ok; p, ok = ps.Next() {
			cells = append(cells, [2]uint32{p.Column(), p.Row()})
		}
		return cells
	}

	all := collect(bm.Pixels())
	req.Equal([][2]uint32{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}, all)

	req.Equal(all, collect(bm.PixelsAfter(nil)))
	req.Equal(all[3:], collect(bm.PixelsFrom(0, 1)))

	p, err := bm.PixelAt(2, 0)
	req.NoError(err)
	req.Equal(all[3:], collect(bm.PixelsAfter(p)))

	last, err := bm.PixelAt(2, 1)
	req.NoError(err)
	req.Empty(collect(bm.PixelsAfter(last)))

	exhausted := bm.Pixels()
	for _, ok := exhausted.Next(); ok; _, ok = exhausted.Next() {
	}
	_, ok := exhausted.Next()
	req.False(ok)
}

func TestPixelOffsets(t *testing.T) {
	req := require.New(t)
	bm, err := New(bits.NewMemStore(make([]byte, 64)), Descriptor{
		Offset: 2, Width: 3, Height: 2, RowBitStride: 48, Format: PixelFormat{Depth: 12},
	})
	req.NoError(err)

	p, err := bm.PixelAt(2, 1)
	req.NoError(err)
	req.EqualValues(2*8+48+2*12, p.Offset())
}

func TestNewRejectsInvalidDescriptor(t *testing.T) {
	store := bits.NewMemStore(make([]byte, 16))
	tests := []Descriptor{
		{Width: 1, Height: 1, RowBitStride: 32, Format: PixelFormat{Depth: 0}},
		{Width: 1, Height: 1, RowBitStride: 64, Format: PixelFormat{Depth: 33}},
		{Width: 0, Height: 1, RowBitStride: 32, Format: RGB24},
		{Width: 2, Height: 1, RowBitStride: 32, Format: RGB24},
	}
	for _, desc := range tests {
		_, err := New(store, desc)
		require.ErrorIs(t, err, ErrFormat, "%+v", desc)
	}
}

func TestWriteToKeepsPosition(t *testing.T) {
	req := require.New(t)
	file := test.BuildBMP(2, 2, 24, 0, nil, rgb24PixelData)
	bm := openTestBitmap(t, file)

	p, err := bm.PixelAt(0, 0)
	req.NoError(err)
	req.NoError(p.SetValue(0xffffff))

	var out bytes.Buffer
	n, err := bm.WriteTo(&out)
	req.NoError(err)
	req.EqualValues(len(file), n)
	req.Equal(file, out.Bytes())
	req.Equal([]byte{0xff, 0xff, 0xff}, out.Bytes()[54:57])

	next, err := bm.PixelAt(1, 1)
	req.NoError(err)
	v, err := next.Value()
	req.NoError(err)
	req.EqualValues(0x0a0b0c, v)
}

func TestModifiedBitmapStaysDecodable(t *testing.T) {
	req := require.New(t)
	bm := openTestBitmap(t, test.GenerateBMP(4, 3, 24))

	// Pixels are stored as blue, green, red so the low byte of the value is red. Storage row 0 is the bottom row.
	p, err := bm.PixelAt(0, 0)
	req.NoError(err)
	req.NoError(p.SetValue(0x0000ff))

	out, err := bm.Bytes()
	req.NoError(err)
	img, err := bmp.Decode(bytes.NewReader(out))
	req.NoError(err)

	r, g, b, _ := img.At(0, 2).RGBA()
	req.EqualValues(0xffff, r)
	req.Zero(g)
	req.Zero(b)
}

func TestFileBackedBitmap(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	req.NoError(afero.WriteFile(fs, "image.bmp", test.BuildBMP(2, 2, 24, 0, nil, rgb24PixelData), 0644))

	f, err := fs.OpenFile("image.bmp", os.O_RDWR, 0)
	req.NoError(err)
	bm, err := Open(f)
	req.NoError(err)

	p, err := bm.PixelAt(1, 1)
	req.NoError(err)
	req.NoError(p.SetValue(0x102030))
	req.NoError(bm.Flush())
	req.NoError(f.Close())

	f, err = fs.Open("image.bmp")
	req.NoError(err)
	data, err := io.ReadAll(f)
	req.NoError(err)
	req.Equal([]byte{0x10, 0x20, 0x30}, data[54+8+3:54+8+6])
}

func TestConcurrentPixelAccess(t *testing.T) {
	file := test.GenerateBMP(16, 16, 24)
	expected := append([]byte(nil), file...)
	bm := openTestBitmap(t, file)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for row := uint32(0); row < 16; row++ {
		wg.Add(1)
		go func(row uint32) {
			defer wg.Done()
			for column := uint32(0); column < 16; column++ {
				p, err := bm.PixelAt(column, row)
				if err != nil {
					errs <- err
					return
				}
				v, err := p.Value()
				if err != nil {
					errs <- err
					return
				}
				start := 54 + int(row)*test.RowSize(16, 24) + int(column)*3
				want := uint32(expected[start])<<16 | uint32(expected[start+1])<<8 | uint32(expected[start+2])
				if v != want {
					t.Errorf("Pixel %d,%d was %#x, expected %#x", column, row, v, want)
				}
			}
		}(row)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
