// Package journal provides an append-only log of board operations for
// crash recovery and replay.
//
// Every cell write and gravity run is appended before it is applied,
// so an interrupted game can be rebuilt entry by entry. Replaying also
// reproduces every intermediate board state, which is what animation
// consumers sample.
//
// The file starts with a small self-describing header; entries are
// fixed-size binary records, optionally wrapped in zstd frames. Frames
// are self-delimiting, so a reopened journal keeps appending without
// rewriting the stream.
package journal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

const fileName = "bitgrid.journal"

// Journal is an append-only log of board operations.
// It is safe for concurrent use.
type Journal struct {
	mu           sync.Mutex
	file         *os.File
	enc          *zstd.Encoder // EncodeAll only; nil when uncompressed
	seqNum       uint64
	filePath     string
	compressed   bool
	level        int
	dataOffset   int64
	syncOnAppend bool
	closed       bool
}

// New opens or creates a journal in the configured directory.
// An existing journal is scanned so sequence numbers keep increasing.
func New(optFns ...func(o *Options)) (*Journal, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := os.MkdirAll(opts.Path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	filePath := filepath.Join(opts.Path, fileName)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_RDWR, 0600) //nolint:gosec // G304: path is configurable
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}

	j := &Journal{
		file:         file,
		filePath:     filePath,
		compressed:   opts.Compress,
		level:        opts.CompressionLevel,
		syncOnAppend: opts.SyncOnAppend,
	}

	if err := j.initializeFile(); err != nil {
		_ = file.Close()
		return nil, err
	}

	if j.compressed {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(j.level)))
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		j.enc = enc
	}

	if _, err := j.file.Seek(0, io.SeekEnd); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to seek journal end: %w", err)
	}

	return j, nil
}

// initializeFile writes the header on a fresh file or validates and
// adopts the header of an existing one, then recovers the sequence
// counter from the entry stream.
func (j *Journal) initializeFile() error {
	info, hasHeader, err := readHeader(j.file)
	if err != nil {
		return err
	}

	if !hasHeader {
		n, err := writeHeader(j.file, headerInfo{
			Compressed:       j.compressed,
			CompressionLevel: j.level,
		})
		if err != nil {
			return err
		}
		j.dataOffset = n
		return nil
	}

	// The on-disk format wins over the requested options.
	j.compressed = info.Compressed
	if info.Compressed {
		j.level = info.CompressionLevel
	}
	j.dataOffset = info.HeaderLen

	return j.recoverSeqNum()
}

func (j *Journal) recoverSeqNum() error {
	return j.replayLocked(func(entry Entry) error {
		if entry.SeqNum > j.seqNum {
			j.seqNum = entry.SeqNum
		}
		return nil
	})
}

// FilePath returns the path to the journal file.
func (j *Journal) FilePath() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.filePath
}

// SeqNum returns the highest sequence number appended so far.
func (j *Journal) SeqNum() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.seqNum
}

// AppendSet journals a single-cell write.
func (j *Journal) AppendSet(row, col int, value uint8) (uint64, error) {
	return j.append(Entry{Type: OpSet, Row: uint8(row), Col: uint8(col), Value: value}) //nolint:gosec // callers validate coordinates
}

// AppendSettle journals a gravity run.
func (j *Journal) AppendSettle() (uint64, error) {
	return j.append(Entry{Type: OpSettle})
}

// AppendStep journals a single gravity pass.
func (j *Journal) AppendStep() (uint64, error) {
	return j.append(Entry{Type: OpStep})
}

func (j *Journal) append(entry Entry) (uint64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.appendLocked(entry)
}

func (j *Journal) appendLocked(entry Entry) (uint64, error) {
	if j.closed {
		return 0, os.ErrClosed
	}

	j.seqNum++
	entry.SeqNum = j.seqNum

	buf := encodeEntry(entry)
	if j.enc != nil {
		buf = j.enc.EncodeAll(buf, nil)
	}
	if _, err := j.file.Write(buf); err != nil {
		return 0, fmt.Errorf("failed to append journal entry: %w", err)
	}
	if j.syncOnAppend {
		if err := j.file.Sync(); err != nil {
			return 0, fmt.Errorf("failed to sync journal: %w", err)
		}
	}
	return entry.SeqNum, nil
}

// Sync flushes the journal to stable storage.
func (j *Journal) Sync() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return os.ErrClosed
	}
	return j.file.Sync()
}

// Checkpoint discards the entry stream and replaces it with a single
// checkpoint entry holding the given board planes. Callers invoke it
// after a snapshot of those planes has been persisted, at which point
// the journaled history is redundant; recovery restores the
// checkpointed planes and replays whatever was appended since. The
// surviving entry also carries the sequence counter, so sequence
// numbers keep increasing across checkpoints and across reopens.
func (j *Journal) Checkpoint(lo, hi uint64) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return os.ErrClosed
	}
	if err := j.file.Truncate(j.dataOffset); err != nil {
		return fmt.Errorf("failed to truncate journal: %w", err)
	}
	if _, err := j.file.Seek(j.dataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek journal: %w", err)
	}
	if _, err := j.appendLocked(Entry{Type: OpCheckpoint, Lo: lo, Hi: hi}); err != nil {
		return err
	}
	return j.file.Sync()
}

// Close syncs and closes the journal file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true

	if j.enc != nil {
		_ = j.enc.Close()
	}

	if err := j.file.Sync(); err != nil {
		_ = j.file.Close()
		return fmt.Errorf("failed to sync journal: %w", err)
	}
	return j.file.Close()
}
