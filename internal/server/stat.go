package server

import (
	"bitsteg/pkg/model"

	"github.com/dustin/go-humanize"
)

type humanizedEncodeStats struct {
	model.EncodeStats
	SetupHuman               string `json:"setup_human"`
	DataEncodingHuman        string `json:"data_encoding_human"`
	OutputImageEncodingHuman string `json:"output_image_encoding_human"`
	BytesWrittenHuman        string `json:"bytes_written_human"`
}

type humanizedDecodeStats struct {
	model.DecodeStats
	DataDecodingHuman string `json:"data_decoding_human"`
	BytesReadHuman    string `json:"bytes_read_human"`
}

func toHumanizedEncodeStats(encodeStats model.EncodeStats) humanizedEncodeStats {
	return humanizedEncodeStats{
		EncodeStats:              encodeStats,
		SetupHuman:               encodeStats.Setup.String(),
		DataEncodingHuman:        encodeStats.DataEncoding.String(),
		OutputImageEncodingHuman: encodeStats.OutputImageEncoding.String(),
		BytesWrittenHuman:        humanize.IBytes(encodeStats.BytesWritten),
	}
}

func toHumanizedDecodeStats(decodeStats model.DecodeStats) humanizedDecodeStats {
	return humanizedDecodeStats{
		DecodeStats:       decodeStats,
		DataDecodingHuman: decodeStats.DataDecoding.String(),
		BytesReadHuman:    humanize.IBytes(decodeStats.BytesRead),
	}
}
