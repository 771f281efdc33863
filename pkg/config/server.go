package config

const (
	DefaultPort         = 8000
	DefaultMaxBodyBytes = 64 * 1024 * 1024
	DefaultLogLevel     = "info"
)

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
	LogLevel     string `mapstructure:"log_level"`

	Encode EncodeConfig `mapstructure:"encode"`
	Decode DecodeConfig `mapstructure:"decode"`
}

func (c *ServerConfig) PopulateUnsetConfigVars() {
	if c.Port < 1 || c.Port > 65535 {
		c.Port = DefaultPort
	}
	if c.MaxBodyBytes < 1 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Encode.PopulateUnsetConfigVars()
	c.Decode.PopulateUnsetConfigVars()
}
