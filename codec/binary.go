package codec

import (
	"encoding"
	"fmt"
)

// Binary encodes values through their own encoding.BinaryMarshaler /
// encoding.BinaryUnmarshaler implementations. It serves fixed-layout
// payloads like the 16-byte board planes or the roaring catalog, where
// JSON framing would multiply the size.
type Binary struct{}

// Marshal implements Codec.
func (Binary) Marshal(v any) ([]byte, error) {
	m, ok := v.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("binary codec: %T does not implement encoding.BinaryMarshaler", v)
	}
	return m.MarshalBinary()
}

// Unmarshal implements Codec.
func (Binary) Unmarshal(data []byte, v any) error {
	u, ok := v.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("binary codec: %T does not implement encoding.BinaryUnmarshaler", v)
	}
	return u.UnmarshalBinary(data)
}

// Name implements Codec.
func (Binary) Name() string { return "binary" }
