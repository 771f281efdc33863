package bitmap

import (
	"bitsteg/internal/bits"
	"bytes"
	"errors"
	"io"
	"sync"
)

// Bitmap owns the bit buffer over an image's bytes. Pixels handed out by the enumerators share that buffer, each
// seek+read or seek+write pair they issue runs under the bitmap lock so two pixels never interleave on the cursor.
type Bitmap struct {
	mu   sync.Mutex
	buf  *bits.Buffer
	desc Descriptor
}

// New wraps a store whose pixel array is described by an already validated descriptor
func New(store io.ReadWriteSeeker, desc Descriptor) (*Bitmap, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &Bitmap{buf: bits.NewBuffer(store), desc: desc}, nil
}

// Open parses the bitmap header at the start of store. Nothing is written to the store if the header is rejected.
func Open(store io.ReadWriteSeeker) (*Bitmap, error) {
	size, err := store.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err = store.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	header := make([]byte, HeaderPeekSize)
	n, err := io.ReadFull(store, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}

	desc, err := ParseHeader(header[:n], size)
	if err != nil {
		return nil, err
	}
	if _, err = store.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	return New(store, desc)
}

// FromBytes opens a bitmap held in memory, pixel modifications are made in place on data
func FromBytes(data []byte) (*Bitmap, error) {
	return Open(bits.NewMemStore(data))
}

func (b *Bitmap) Descriptor() Descriptor {
	return b.desc
}

func (b *Bitmap) PixelFormat() PixelFormat {
	return b.desc.Format
}

func (b *Bitmap) Width() uint32 {
	return b.desc.Width
}

func (b *Bitmap) Height() uint32 {
	return b.desc.Height
}

// Pixels enumerates every pixel in raster order starting at (0, 0)
func (b *Bitmap) Pixels() *Pixels {
	return &Pixels{bitmap: b}
}

// PixelsFrom enumerates pixels in raster order starting at the given cell
func (b *Bitmap) PixelsFrom(column, row uint32) *Pixels {
	return &Pixels{bitmap: b, column: column, row: row}
}

// PixelsAfter resumes a scan right after p, or from (0, 0) if p is nil
func (b *Bitmap) PixelsAfter(p *Pixel) *Pixels {
	if p == nil {
		return b.Pixels()
	}
	ps := b.PixelsFrom(p.column, p.row)
	ps.advance()
	return ps
}

// PixelAt returns a new accessor for a single pixel
func (b *Bitmap) PixelAt(column, row uint32) (*Pixel, error) {
	if column >= b.desc.Width || row >= b.desc.Height {
		return nil, ErrOutOfBounds
	}
	return b.newPixel(column, row), nil
}

// Flush commits pending pixel writes to the store
func (b *Bitmap) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Flush()
}

// WriteTo flushes pending writes and copies the whole store to w. The store position is restored afterwards.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.buf.Flush(); err != nil {
		return 0, err
	}
	store := b.buf.Unwrap()
	prev, err := store.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	if _, err = store.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	n, copyErr := io.Copy(w, store)
	if _, err = store.Seek(prev, io.SeekStart); err != nil && copyErr == nil {
		copyErr = err
	}
	return n, copyErr
}

// Bytes returns the image bytes with every pending write committed
func (b *Bitmap) Bytes() ([]byte, error) {
	if mem, ok := b.buf.Unwrap().(*bits.MemStore); ok {
		if err := b.Flush(); err != nil {
			return nil, err
		}
		return mem.Bytes(), nil
	}

	var out bytes.Buffer
	if _, err := b.WriteTo(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (b *Bitmap) readAt(offset uint64, depth uint8) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.buf.Seek(int64(offset), io.SeekStart); err != nil {
		return 0, err
	}
	return b.buf.ReadBits(depth)
}

func (b *Bitmap) writeAt(offset uint64, value uint32, depth uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.buf.Seek(int64(offset), io.SeekStart); err != nil {
		return err
	}
	_, err := b.buf.WriteBits(value, depth)
	return err
}
