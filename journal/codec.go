package journal

import (
	"encoding/binary"
	"fmt"
	"io"
)

// entrySize is the fixed on-disk size of a journal entry:
// [Type:1][SeqNum:8][Row:1][Col:1][Value:1], little endian.
// Checkpoint entries carry the board planes as a [Lo:8][Hi:8] suffix.
const (
	entrySize      = 12
	checkpointSize = entrySize + 16
)

func encodeEntry(entry Entry) []byte {
	size := entrySize
	if entry.Type == OpCheckpoint {
		size = checkpointSize
	}
	buf := make([]byte, size)
	buf[0] = byte(entry.Type)
	binary.LittleEndian.PutUint64(buf[1:9], entry.SeqNum)
	buf[9] = entry.Row
	buf[10] = entry.Col
	buf[11] = entry.Value
	if entry.Type == OpCheckpoint {
		binary.LittleEndian.PutUint64(buf[12:20], entry.Lo)
		binary.LittleEndian.PutUint64(buf[20:28], entry.Hi)
	}
	return buf
}

func decodeEntry(r io.Reader, entry *Entry) error {
	var buf [checkpointSize]byte
	if _, err := io.ReadFull(r, buf[:entrySize]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("truncated journal entry: %w", err)
		}
		return err
	}

	entry.Type = OperationType(buf[0])
	if entry.Type > OpCheckpoint {
		return fmt.Errorf("unknown journal entry type: %d", buf[0])
	}
	entry.SeqNum = binary.LittleEndian.Uint64(buf[1:9])
	entry.Row = buf[9]
	entry.Col = buf[10]
	entry.Value = buf[11]
	entry.Lo, entry.Hi = 0, 0

	if entry.Type == OpCheckpoint {
		if _, err := io.ReadFull(r, buf[entrySize:]); err != nil {
			// The header already arrived, so running out of bytes here
			// is corruption, not a clean end of stream.
			return fmt.Errorf("truncated checkpoint entry: %w", err)
		}
		entry.Lo = binary.LittleEndian.Uint64(buf[12:20])
		entry.Hi = binary.LittleEndian.Uint64(buf[20:28])
	}
	return nil
}
