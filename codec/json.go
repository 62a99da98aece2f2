package codec

import "encoding/json"

// JSON is the standard-library JSON codec.
//
// It is used for the free-form metadata attached to snapshots (labels,
// provenance). Board planes themselves are fixed-width binary and never
// go through a Codec.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
