package snapshot

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/hupe1980/bitgrid/resource"
)

// Archive bundles many encoded snapshots into a single compressed
// blob, e.g. a finished game's replay history shipped to cold storage
// in one upload.
//
// Format, little endian:
//
//	[magic:4][version:1][compression:1][block]
//
// where block is one compressed block (see compressBlock) holding the
// concatenation of [nameLen:2][name][dataLen:4][data] items.
var archiveMagic = [4]byte{'B', 'G', 'A', '0'}

const archiveVersion = 1

// WriteArchive writes the named snapshots as one blob to the store.
// A nil controller uploads unthrottled.
func WriteArchive(ctx context.Context, store Store, name string, snapshots map[string][]byte, compression CompressionType, ctrl *resource.Controller) error {
	if err := ctrl.AcquireWorker(ctx); err != nil {
		return err
	}
	defer ctrl.ReleaseWorker()

	// Sort for deterministic output.
	names := make([]string, 0, len(snapshots))
	for n := range snapshots {
		names = append(names, n)
	}
	sort.Strings(names)

	var payload []byte
	for _, n := range names {
		if len(n) > 1<<16-1 {
			return fmt.Errorf("snapshot name too long: %q", n)
		}
		data := snapshots[n]
		payload = binary.LittleEndian.AppendUint16(payload, uint16(len(n)))
		payload = append(payload, n...)
		payload = binary.LittleEndian.AppendUint32(payload, uint32(len(data))) //nolint:gosec // snapshots are tiny
		payload = append(payload, data...)
	}

	block, err := compressBlock(payload, compression)
	if err != nil {
		return fmt.Errorf("failed to compress archive: %w", err)
	}

	blob := make([]byte, 0, 6+len(block))
	blob = append(blob, archiveMagic[:]...)
	blob = append(blob, archiveVersion, byte(compression))
	blob = append(blob, block...)

	if err := ctrl.WaitIO(ctx, len(blob)); err != nil {
		return err
	}
	return store.Put(ctx, name, blob)
}

// ReadArchive fetches an archive and returns its snapshots by name.
func ReadArchive(ctx context.Context, store Store, name string, ctrl *resource.Controller) (map[string][]byte, error) {
	if err := ctrl.AcquireWorker(ctx); err != nil {
		return nil, err
	}
	defer ctrl.ReleaseWorker()

	blob, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := ctrl.WaitIO(ctx, len(blob)); err != nil {
		return nil, err
	}

	if len(blob) < 6 {
		return nil, errors.New("archive too short")
	}
	if [4]byte(blob[:4]) != archiveMagic {
		return nil, errors.New("invalid archive magic")
	}
	if blob[4] != archiveVersion {
		return nil, fmt.Errorf("unsupported archive version: %d", blob[4])
	}

	payload, err := decompressBlock(blob[6:], CompressionType(blob[5]))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress archive: %w", err)
	}

	snapshots := make(map[string][]byte)
	for len(payload) > 0 {
		if len(payload) < 2 {
			return nil, errors.New("archive item truncated")
		}
		nameLen := int(binary.LittleEndian.Uint16(payload))
		payload = payload[2:]
		if len(payload) < nameLen+4 {
			return nil, errors.New("archive item truncated")
		}
		itemName := string(payload[:nameLen])
		payload = payload[nameLen:]

		dataLen := int(binary.LittleEndian.Uint32(payload))
		payload = payload[4:]
		if len(payload) < dataLen {
			return nil, errors.New("archive item truncated")
		}
		data := make([]byte, dataLen)
		copy(data, payload[:dataLen])
		snapshots[itemName] = data
		payload = payload[dataLen:]
	}
	return snapshots, nil
}
