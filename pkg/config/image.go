package config

const (
	DefaultChunkSize      = 32 * 1024
	DefaultMaxPayloadSize = 1000 * 1000 * 1000
)

type EncodeConfig struct {
	// ChunkSize is how many payload bytes are read from the input before being written to the image
	ChunkSize int `mapstructure:"chunk_size"`
}

func (c *EncodeConfig) PopulateUnsetConfigVars() {
	if c.ChunkSize < 1 {
		c.ChunkSize = DefaultChunkSize
	}
}

type DecodeConfig struct {
	// MaxPayloadSize caps the length prefix a decoder is willing to allocate for
	MaxPayloadSize uint32 `mapstructure:"max_payload_size"`
}

func (c *DecodeConfig) PopulateUnsetConfigVars() {
	if c.MaxPayloadSize == 0 {
		c.MaxPayloadSize = DefaultMaxPayloadSize
	}
}
