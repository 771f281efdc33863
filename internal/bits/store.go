package bits

import (
	"errors"
	"io"
)

var (
	ErrNegativePosition = errors.New("seek to negative position")
)

// MemStore is a fixed size random access store over a byte slice. Writes never grow the slice, writing past the end
// is reported as io.ErrShortWrite.
type MemStore struct {
	data []byte
	pos  int64
}

func NewMemStore(data []byte) *MemStore {
	return &MemStore{data: data}
}

// Bytes returns the backing slice, modifications made through the store are visible in it
func (m *MemStore) Bytes() []byte {
	return m.data
}

func (m *MemStore) Len() int {
	return len(m.data)
}

func (m *MemStore) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *MemStore) Write(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.ErrShortWrite
	}
	n := copy(m.data[m.pos:], p)
	m.pos += int64(n)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (m *MemStore) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	default:
		return m.pos, errors.New("invalid whence")
	}
	if abs < 0 {
		return m.pos, ErrNegativePosition
	}
	m.pos = abs
	return abs, nil
}
