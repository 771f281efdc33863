package bits

import (
	"errors"
	"io"
)

// MaxBits is the widest value that can be read or written in a single call
const MaxBits = 32

var (
	ErrBitWidth      = errors.New("invalid number of bits, at most 32 bits can be transferred at once")
	ErrExhausted     = errors.New("underlying store exhausted")
	ErrInvalidWhence = errors.New("invalid whence")
)

type flusher interface {
	Flush() error
}

// Buffer gives bit level access to a byte addressable random access store. Values are packed most significant bit
// first, so the first bit of the store is the MSB of its first byte.
//
// The byte holding the next bit to be consumed is cached in current, and remaining counts how many of its bits have
// not been consumed yet. When remaining is not zero the store is positioned right after the cached byte. Bits written
// into the cache are committed to the store once the byte is complete, or on Flush/Seek.
type Buffer struct {
	store     io.ReadWriteSeeker
	current   byte
	remaining uint8
	dirty     bool
}

func NewBuffer(store io.ReadWriteSeeker) *Buffer {
	return &Buffer{store: store}
}

// Unwrap returns the underlying store. Flush must be called before using it directly.
func (b *Buffer) Unwrap() io.ReadWriteSeeker {
	return b.store
}

// ReadBits reads the next n bits and returns them packed into the low bits of the result, first bit read being the
// most significant.
func (b *Buffer) ReadBits(n uint8) (uint32, error) {
	if n > MaxBits {
		return 0, ErrBitWidth
	}

	var result uint32
	for n > 0 && b.remaining > 0 {
		n--
		result = result<<1 | b.readBit()
	}
	// a drained cache holding written bits must reach the store before the next byte replaces it
	if b.remaining == 0 && b.dirty {
		if err := b.commit(); err != nil {
			return 0, err
		}
	}

	for n >= 8 {
		c, err := b.readByte()
		if err != nil {
			return 0, err
		}
		result = result<<8 | uint32(c)
		n -= 8
	}

	if n > 0 {
		c, err := b.readByte()
		if err != nil {
			return 0, err
		}
		b.current, b.remaining, b.dirty = c, 8, false
		for n > 0 {
			n--
			result = result<<1 | b.readBit()
		}
	}

	return result, nil
}

// WriteBits writes the n low bits of data, most significant first, and returns how many bits were written. Bits that
// land in a partially filled byte are merged with the bits already stored in that byte.
func (b *Buffer) WriteBits(data uint32, n uint8) (written uint8, err error) {
	if n > MaxBits {
		return 0, ErrBitWidth
	}
	if n == 0 {
		return 0, nil
	}

	data <<= MaxBits - n
	for n > 0 && b.remaining > 0 {
		if err = b.writeBit(data&0x80000000 != 0); err != nil {
			return written, err
		}
		data <<= 1
		n--
		written++
	}

	for n >= 8 {
		if err = b.writeByte(byte(data >> 24)); err != nil {
			return written, err
		}
		data <<= 8
		n -= 8
		written += 8
	}

	if n > 0 {
		c, err := b.readByte()
		if err != nil {
			return written, err
		}
		b.current, b.remaining, b.dirty = c, 8, false
		for n > 0 {
			if err = b.writeBit(data&0x80000000 != 0); err != nil {
				return written, err
			}
			data <<= 1
			n--
			written++
		}
	}

	return written, nil
}

// Flush commits a written cached byte back to its position in the store, and flushes the store if it supports it.
// The cache stays valid afterwards.
func (b *Buffer) Flush() error {
	if b.dirty {
		if err := b.commit(); err != nil {
			return err
		}
	}
	if f, ok := b.store.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Seek moves to offset bits relative to whence (io.SeekStart, io.SeekCurrent or io.SeekEnd) and returns the new
// absolute position in bits. Pending writes are flushed first. If the target cannot be reached the buffer is left
// where it was.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	if err := b.Flush(); err != nil {
		return 0, err
	}

	prev, err := b.store.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	// Relative offsets are resolved into an absolute bit position first. The current bit position is behind the store
	// position by the bits still left in the cached byte, and a negative offset with a non zero remainder lands in the
	// byte before the one a truncating division would pick, which the absolute form handles without special cases.
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = prev*8 - int64(b.remaining) + offset
	case io.SeekEnd:
		end, err := b.store.Seek(0, io.SeekEnd)
		if err != nil {
			b.restore(prev)
			return 0, err
		}
		target = end*8 + offset
	default:
		return 0, ErrInvalidWhence
	}

	if target < 0 {
		b.restore(prev)
		return 0, ErrNegativePosition
	}

	bytePos, bitPos := target/8, target%8
	if _, err = b.store.Seek(bytePos, io.SeekStart); err != nil {
		b.restore(prev)
		return 0, err
	}

	c, err := b.readByte()
	if err != nil {
		b.restore(prev)
		return 0, err
	}
	// remaining is the forward distance from the target bit to the end of its byte
	b.current, b.remaining, b.dirty = c, uint8(8-bitPos), false

	return bytePos*8 + bitPos, nil
}

func (b *Buffer) restore(pos int64) {
	_, _ = b.store.Seek(pos, io.SeekStart)
}

func (b *Buffer) readBit() uint32 {
	b.remaining--
	return uint32(b.current>>b.remaining) & 1
}

func (b *Buffer) writeBit(bit bool) error {
	b.remaining--
	if bit {
		b.current |= 1 << b.remaining
	} else {
		b.current &^= 1 << b.remaining
	}
	b.dirty = true

	if b.remaining == 0 {
		return b.commit()
	}
	return nil
}

// commit rewrites the cached byte, which was already consumed from the store when it was cached
func (b *Buffer) commit() error {
	if _, err := b.store.Seek(-1, io.SeekCurrent); err != nil {
		return err
	}
	if err := b.writeByte(b.current); err != nil {
		return err
	}
	b.dirty = false
	return nil
}

func (b *Buffer) readByte() (byte, error) {
	var p [1]byte
	n, err := b.store.Read(p[:])
	if n == 1 {
		return p[0], nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, ErrExhausted
	}
	return 0, err
}

func (b *Buffer) writeByte(c byte) error {
	n, err := b.store.Write([]byte{c})
	if n == 1 {
		return nil
	}
	if err == nil || errors.Is(err, io.ErrShortWrite) {
		return ErrExhausted
	}
	return err
}
