package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/bitgrid/codec"
	"github.com/hupe1980/bitgrid/grid"
)

// Snapshot is one persisted board state.
type Snapshot struct {
	// SeqNum is the journal sequence number the snapshot covers.
	SeqNum uint64

	// Lo and Hi are the raw board planes.
	Lo uint64
	Hi uint64

	// Labels carries optional free-form metadata (player, level, ...).
	Labels map[string]string
}

// Board reconstructs the snapshotted board.
func (s *Snapshot) Board() *grid.Grid {
	return grid.FromPlanes(s.Lo, s.Hi)
}

// Capture snapshots the given board.
func Capture(g *grid.Grid, seqNum uint64) *Snapshot {
	lo, hi := g.Planes()
	return &Snapshot{SeqNum: seqNum, Lo: lo, Hi: hi}
}

var snapshotMagic = [4]byte{'B', 'G', 'S', '0'}

const formatVersion = 1

// Encode serializes a snapshot.
//
// Format, little endian:
//
//	[magic:4][version:1][codecNameLen:1][codecName][seq:8][lo:8][hi:8]
//	[labelsLen:4][labels]
//
// The codec name makes the record self-describing: labels written by
// one codec decode under ByName regardless of the current default.
func Encode(s *Snapshot, c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}

	var labels []byte
	if len(s.Labels) > 0 {
		b, err := c.Marshal(s.Labels)
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot labels: %w", err)
		}
		labels = b
	}

	name := c.Name()
	if len(name) > 255 {
		return nil, errors.New("codec name too long")
	}

	buf := make([]byte, 0, 4+2+len(name)+24+4+len(labels))
	buf = append(buf, snapshotMagic[:]...)
	buf = append(buf, formatVersion, uint8(len(name)))
	buf = append(buf, name...)
	buf = binary.LittleEndian.AppendUint64(buf, s.SeqNum)
	buf = binary.LittleEndian.AppendUint64(buf, s.Lo)
	buf = binary.LittleEndian.AppendUint64(buf, s.Hi)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(labels))) //nolint:gosec // bounded by Marshal output
	buf = append(buf, labels...)
	return buf, nil
}

// Decode parses a serialized snapshot.
func Decode(data []byte) (*Snapshot, error) {
	if len(data) < 6 {
		return nil, errors.New("snapshot too short")
	}
	if [4]byte(data[:4]) != snapshotMagic {
		return nil, errors.New("invalid snapshot magic")
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", data[4])
	}

	nameLen := int(data[5])
	rest := data[6:]
	if len(rest) < nameLen+28 {
		return nil, errors.New("snapshot truncated")
	}
	name := string(rest[:nameLen])
	rest = rest[nameLen:]

	s := &Snapshot{
		SeqNum: binary.LittleEndian.Uint64(rest[0:8]),
		Lo:     binary.LittleEndian.Uint64(rest[8:16]),
		Hi:     binary.LittleEndian.Uint64(rest[16:24]),
	}

	labelsLen := binary.LittleEndian.Uint32(rest[24:28])
	labels := rest[28:]
	if uint32(len(labels)) < labelsLen {
		return nil, errors.New("snapshot labels truncated")
	}
	if labelsLen > 0 {
		c, ok := codec.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown snapshot codec: %q", name)
		}
		if err := c.Unmarshal(labels[:labelsLen], &s.Labels); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot labels: %w", err)
		}
	}
	return s, nil
}
