// Package config loads the huffpack command's YAML settings.
//
// Values are read with sigs.k8s.io/yaml, so field names follow the json
// tags below. Unknown fields are rejected. Command-line flags are applied on
// top of the loaded values by the caller.
package config

import (
	"fmt"
	"os"

	"github.com/arloliu/huffpack/errs"
	"github.com/arloliu/huffpack/format"
	"github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"
)

// DefaultMaxInputBytes caps the size of a file the command will read.
const DefaultMaxInputBytes = 16 * 1024 * 1024

// Config holds the settings of the huffpack command.
type Config struct {
	// Codec names the compression used inside frames, e.g. "huffman" or "zstd".
	Codec string `json:"codec"`
	// Raw writes bare Huffman containers without a frame.
	Raw bool `json:"raw"`
	// MaxInputBytes is the largest input file accepted, and the largest
	// output a frame may claim.
	MaxInputBytes int64 `json:"max_input_bytes"`
	// LogLevel is a logrus level name.
	LogLevel string `json:"log_level"`
	// Verify decodes every compressed output once before writing it.
	Verify bool `json:"verify"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Codec:         "huffman",
		MaxInputBytes: DefaultMaxInputBytes,
		LogLevel:      logrus.InfoLevel.String(),
		Verify:        true,
	}
}

// Load reads a YAML file over the default settings and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over the default settings and validates the result.
// Fields missing from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if _, err := c.Compression(); err != nil {
		return err
	}
	if c.Raw {
		if comp, _ := c.Compression(); comp != format.CompressionHuffman {
			return fmt.Errorf("%w: raw output requires the huffman codec, got %q", errs.ErrInvalidConfig, c.Codec)
		}
	}
	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("%w: max_input_bytes must be positive, got %d", errs.ErrInvalidConfig, c.MaxInputBytes)
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Compression resolves the Codec name.
func (c Config) Compression() (format.CompressionType, error) {
	comp, ok := format.ParseCompressionType(c.Codec)
	if !ok {
		return 0, fmt.Errorf("%w: unknown codec %q", errs.ErrInvalidConfig, c.Codec)
	}

	return comp, nil
}

// Level resolves the LogLevel name.
func (c Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return level, nil
}

// Marshal encodes the settings as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
