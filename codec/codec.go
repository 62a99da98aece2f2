// Package codec centralizes payload encoding for persisted boards.
//
// Persisted formats (snapshots, journals) store the codec name in their
// header so they stay self-describing: changing the codec of new files
// never breaks decoding of existing ones.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "binary":
		return Binary{}, true
	default:
		return nil, false
	}
}

// Default is the codec used when none is configured.
var Default Codec = JSON{}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
