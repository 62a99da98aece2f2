package journal

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Replay streams every journaled entry, oldest first, into callback.
// Replay returns the first callback error unchanged.
//
// Replaying onto an empty board reconstructs the game, including every
// intermediate settled state.
func (j *Journal) Replay(callback func(entry Entry) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return os.ErrClosed
	}

	if err := j.replayLocked(callback); err != nil {
		return err
	}

	// Leave the file positioned for appends.
	if _, err := j.file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek journal end: %w", err)
	}
	return nil
}

func (j *Journal) replayLocked(callback func(entry Entry) error) error {
	if _, err := j.file.Seek(j.dataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek journal data: %w", err)
	}

	var reader io.Reader = bufio.NewReader(j.file)
	if j.compressed {
		dec, err := zstd.NewReader(reader)
		if err != nil {
			return fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		reader = dec
	}

	for {
		var entry Entry
		if err := decodeEntry(reader, &entry); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("journal corrupted at entry: %w", err)
		}
		if err := callback(entry); err != nil {
			return err
		}
	}
}
