// Package compression provides transparent zstd framing for stored objects.
//
// Compression is best-effort: payloads below the size floor or payloads
// that do not shrink are stored raw, and decoding falls back to the raw
// bytes when the input is not a zstd frame. A tree can therefore hold a mix
// of framed and raw objects and still read correctly.
package compression

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Encoder levels accepted by New. Zero disables compression entirely.
const (
	LevelDisabled = 0
	LevelFastest  = 1
	LevelDefault  = 2
	LevelBetter   = 3
)

// Objects smaller than this are never worth framing.
const minSize = 128

// Codec compresses and decompresses object payloads.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// New returns a Codec for the given level, or a disabled Codec for
// LevelDisabled. Levels outside the known range are an error.
func New(level int) (*Codec, error) {
	if level == LevelDisabled {
		return &Codec{}, nil
	}

	var encoderLevel zstd.EncoderLevel
	switch level {
	case LevelFastest:
		encoderLevel = zstd.SpeedFastest
	case LevelDefault:
		encoderLevel = zstd.SpeedDefault
	case LevelBetter:
		encoderLevel = zstd.SpeedBetterCompression
	default:
		return nil, fmt.Errorf("unknown compression level %d", level)
	}

	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(encoderLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, err
	}

	return &Codec{encoder: encoder, decoder: decoder}, nil
}

// Enabled reports whether the codec does anything at all.
func (c *Codec) Enabled() bool { return c.encoder != nil }

// Compress frames data if it pays off, otherwise returns data unchanged.
func (c *Codec) Compress(data []byte) []byte {
	if !c.Enabled() || len(data) < minSize {
		return data
	}

	compressed := c.encoder.EncodeAll(data, make([]byte, 0, len(data)))
	if len(compressed) >= len(data) {
		return data
	}
	return compressed
}

// Decompress decodes a zstd frame, or returns data unchanged when it is
// not framed.
func (c *Codec) Decompress(data []byte) []byte {
	if !c.Enabled() {
		return data
	}

	decompressed, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return data
	}
	return decompressed
}

// Close releases the encoder and decoder.
func (c *Codec) Close() error {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
	return nil
}
