package model

import (
	"time"
)

type EncodeStats struct {
	Setup               time.Duration `json:"setup"`
	DataEncoding        time.Duration `json:"data_encoding"`
	OutputImageEncoding time.Duration `json:"output_image_encoding"`
	BytesWritten        uint64        `json:"bytes_written"`
}

type DecodeStats struct {
	DataDecoding time.Duration `json:"data_decoding"`
	BytesRead    uint64        `json:"bytes_read"`
}
