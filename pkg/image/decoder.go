package image

import (
	"bitsteg/pkg/bitmap"
	"bitsteg/pkg/config"
	"bitsteg/pkg/lsb"
	"bitsteg/pkg/model"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

var (
	ErrDecodeFileBounds = errors.New("decoding exceeded image bounds, the image likely has nothing hidden in it")
	ErrMaxAllocExceeded = errors.New("hidden payload is larger than the configured maximum payload size")
	ErrEncoding         = errors.New("hidden payload is not valid UTF-8 text")
)

type Decoder struct {
	channel *lsb.Channel
	config  config.DecodeConfig
	stats   model.DecodeStats
}

func NewImageDecoder(bm *bitmap.Bitmap, dConfig config.DecodeConfig) *Decoder {
	dConfig.PopulateUnsetConfigVars()

	return &Decoder{
		channel: lsb.NewChannel(bm),
		config:  dConfig,
	}
}

func (d *Decoder) Stats() model.DecodeStats {
	return d.stats
}

// Decode reads the length prefix at the start of the image and returns that many hidden bytes
func (d *Decoder) Decode() ([]byte, error) {
	d.stats = model.DecodeStats{}
	decodeStart := time.Now()
	defer func() {
		d.stats.DataDecoding = time.Since(decodeStart)
	}()

	d.channel.Reset()
	prefix, err := d.readBytes(lengthPrefixSize)
	if err != nil {
		return nil, err
	}

	length := binary.LittleEndian.Uint32(prefix)
	if available := payloadCapacity(d.channel); uint64(length) > available {
		return nil, fmt.Errorf("%w: length prefix is %d bytes, the image holds at most %d", ErrDecodeFileBounds,
			length, available)
	}
	if length > d.config.MaxPayloadSize {
		return nil, ErrMaxAllocExceeded
	}

	return d.readBytes(length)
}

// DecodeText decodes the hidden payload and checks that it is UTF-8 text
func (d *Decoder) DecodeText() (string, error) {
	payload, err := d.Decode()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(payload) {
		return "", ErrEncoding
	}
	return string(payload), nil
}

func (d *Decoder) readBytes(numOfBytesToRead uint32) ([]byte, error) {
	readBytes := make([]byte, numOfBytesToRead)
	n, err := io.ReadFull(d.channel, readBytes)
	d.stats.BytesRead += uint64(n)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, ErrDecodeFileBounds
	}
	if err != nil {
		return nil, err
	}
	return readBytes, nil
}
