package image

import (
	"bitsteg/pkg/bitmap"
	"bitsteg/pkg/config"
	"bitsteg/pkg/lsb"
	"bitsteg/pkg/model"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// lengthPrefixSize is the size of the little endian payload length written ahead of the payload
const lengthPrefixSize = 4

var (
	ErrImageNotBigEnough = errors.New("supplied image not big enough to contain the payload, choose a larger image")
	ErrEmptyPayload      = errors.New("payload to hide is empty")
)

type Encoder struct {
	bitmap  *bitmap.Bitmap
	channel *lsb.Channel
	config  config.EncodeConfig
	stats   model.EncodeStats
}

func NewImageEncoder(bm *bitmap.Bitmap, eConfig config.EncodeConfig) *Encoder {
	eConfig.PopulateUnsetConfigVars()

	return &Encoder{
		bitmap:  bm,
		channel: lsb.NewChannel(bm),
		config:  eConfig,
	}
}

func (e *Encoder) Stats() model.EncodeStats {
	return e.stats
}

// Capacity is the largest payload the image can hide
func (e *Encoder) Capacity() uint64 {
	return payloadCapacity(e.channel)
}

// Encode hides payload at the start of the image, replacing anything hidden before
func (e *Encoder) Encode(payload []byte) error {
	return e.EncodeReader(bytes.NewReader(payload), int64(len(payload)))
}

// EncodeReader hides exactly size bytes read from dataReader
func (e *Encoder) EncodeReader(dataReader io.Reader, size int64) error {
	e.stats = model.EncodeStats{}

	if err := e.setup(size); err != nil {
		return err
	}

	encodeStart := time.Now()
	defer func() {
		e.stats.DataEncoding = time.Since(encodeStart)
	}()

	// The prefix is zeroed until the whole payload is in place, a failed read then leaves an empty payload behind
	// instead of a length the image does not hold
	prefix := make([]byte, lengthPrefixSize)
	if err := e.write(prefix); err != nil {
		return err
	}

	chunk := make([]byte, e.config.ChunkSize)
	remaining := size
	for remaining > 0 {
		chunkBytes := chunk
		if remaining < int64(len(chunkBytes)) {
			chunkBytes = chunkBytes[:remaining]
		}
		bytesRead, err := io.ReadFull(dataReader, chunkBytes)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			_ = e.channel.Flush()
			return fmt.Errorf("reading payload after %d of %d bytes: %w", size-remaining+int64(bytesRead), size, err)
		}
		if err = e.write(chunkBytes); err != nil {
			return err
		}
		remaining -= int64(bytesRead)
	}

	binary.LittleEndian.PutUint32(prefix, uint32(size))
	e.channel.Reset()
	if _, err := e.channel.Write(prefix); err != nil {
		return err
	}
	return e.channel.Flush()
}

// WriteEncodedBMP writes the whole carrier file, hidden payload included
func (e *Encoder) WriteEncodedBMP(output io.Writer) error {
	imageEncodeStart := time.Now()
	defer func() {
		e.stats.OutputImageEncoding = time.Since(imageEncodeStart)
	}()

	_, err := e.bitmap.WriteTo(output)
	return err
}

func (e *Encoder) setup(size int64) error {
	setupStart := time.Now()
	defer func() {
		e.stats.Setup = time.Since(setupStart)
	}()

	if size <= 0 {
		return ErrEmptyPayload
	}
	available := e.Capacity()
	if size > math.MaxUint32 || uint64(size) > available {
		return fmt.Errorf("%w: payload is %s but the image holds at most %s", ErrImageNotBigEnough,
			humanize.IBytes(uint64(size)), humanize.IBytes(available))
	}

	e.channel.Reset()
	return nil
}

func (e *Encoder) write(p []byte) error {
	n, err := e.channel.Write(p)
	e.stats.BytesWritten += uint64(n)
	if errors.Is(err, io.ErrShortWrite) {
		return fmt.Errorf("%w: only %s could be written", ErrImageNotBigEnough, humanize.IBytes(e.stats.BytesWritten))
	}
	return err
}

func payloadCapacity(c *lsb.Channel) uint64 {
	capacity := c.Capacity()
	if capacity < lengthPrefixSize {
		return 0
	}
	return capacity - lengthPrefixSize
}
