package snapshot

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the compression algorithm for archives.
type CompressionType uint8

const (
	// CompressionNone indicates no compression.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD indicates ZSTD block compression (better ratio).
	CompressionZSTD CompressionType = 2
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
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

// compressBlock compresses data with the given algorithm.
// Format: [UncompressedSize:4][CompressedSize:4][Data...]; a
// CompressedSize of 0 marks an uncompressed block (used when
// compression does not pay off).
const blockHeaderSize = 8

func compressBlock(data []byte, compressionType CompressionType) ([]byte, error) {
	var compressed []byte
	var err error

	switch compressionType {
	case CompressionLZ4:
		compressed, err = compressBlockLZ4(data)
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	case CompressionNone:
	default:
		return nil, errors.New("unknown compression type")
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || len(compressed) >= len(data) {
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data))) //nolint:gosec // archive sizes fit uint32
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))       //nolint:gosec
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed))) //nolint:gosec
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

func compressBlockLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func decompressBlock(data []byte, compressionType CompressionType) ([]byte, error) {
	if len(data) < blockHeaderSize {
		return nil, errors.New("block too small for header")
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])

	if compressedSize == 0 {
		if uint32(len(data)-blockHeaderSize) < uncompressedSize {
			return nil, errors.New("block data too small")
		}
		return data[blockHeaderSize : blockHeaderSize+int(uncompressedSize)], nil
	}

	if uint32(len(data)-blockHeaderSize) < compressedSize {
		return nil, errors.New("compressed block data too small")
	}
	compressedData := data[blockHeaderSize : blockHeaderSize+int(compressedSize)]

	switch compressionType {
	case CompressionLZ4:
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(compressedData, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(compressedData, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return decoded, nil

	default:
		return nil, errors.New("unknown compression type")
	}
}
