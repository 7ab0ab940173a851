package persistence

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies concept blob files (ASCII: "AIGC").
	MagicNumber = 0x41494743
	// Version is the current blob format version (v1.0.0).
	Version = 0x00010000

	// maxNameLen bounds a concept name on the wire.
	maxNameLen = 1 << 16
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrUnknownCodec       = errors.New("unknown metadata codec")
	ErrUnknownCompression = errors.New("unknown compression type")
	ErrTruncated          = errors.New("truncated blob")
)

// Compression defines the body compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the body uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, good for hot data).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio, good for cold data).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as used in config files.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}
