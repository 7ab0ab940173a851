package persistence

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	// Level 3 balances compression ratio vs speed
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// blockHeaderSize is [UncompressedSize uint32][CompressedSize uint32].
// CompressedSize == 0 means the block is stored uncompressed.
const blockHeaderSize = 8

// compressBlock compresses a block using the specified algorithm.
// Returns the data with a block header prepended; falls back to storing
// uncompressed when compression does not help.
func compressBlock(data []byte, compression Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch compression {
	case CompressionNone:
		compressed = nil
	case CompressionLZ4:
		compressed, err = compressBlockLZ4(data)
	case CompressionZSTD:
		compressed, err = compressBlockZSTD(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}

	if err != nil {
		return nil, err
	}

	// If compression doesn't help (ratio > 0.9), store uncompressed
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(result[4:], 0) // 0 = uncompressed
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

// decompressBlock reverses compressBlock.
func decompressBlock(block []byte, compression Compression) ([]byte, error) {
	if len(block) < blockHeaderSize {
		return nil, ErrTruncated
	}

	uncompressedSize := binary.LittleEndian.Uint32(block[0:])
	compressedSize := binary.LittleEndian.Uint32(block[4:])
	payload := block[blockHeaderSize:]

	if compressedSize == 0 {
		if uint32(len(payload)) < uncompressedSize {
			return nil, ErrTruncated
		}
		return payload[:uncompressedSize], nil
	}
	if uint32(len(payload)) < compressedSize {
		return nil, ErrTruncated
	}
	payload = payload[:compressedSize]

	switch compression {
	case CompressionLZ4:
		dst := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return nil, err
		}
		return dst[:n], nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		return dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}

// compressBlockLZ4 compresses data using LZ4.
func compressBlockLZ4(data []byte) ([]byte, error) {
	maxCompressedSize := lz4.CompressBlockBound(len(data))
	compressed := make([]byte, maxCompressedSize)

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, nil // Incompressible
	}

	return compressed[:n], nil
}

// compressBlockZSTD compresses data using ZSTD.
func compressBlockZSTD(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil), nil
}
