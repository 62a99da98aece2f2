package journal

// OperationType represents the type of operation in the journal.
type OperationType uint8

const (
	// OpSet records a single-cell write.
	OpSet OperationType = iota
	// OpSettle records a gravity run to fixed point.
	OpSettle
	// OpStep records a single gravity pass.
	OpStep
	// OpCheckpoint marks a snapshot boundary; entries before it are
	// covered by a persisted snapshot. The entry carries the board
	// planes at the boundary, so recovery can restore the saved state
	// before replaying the entries appended since.
	OpCheckpoint
)

// Entry represents a single journaled board operation.
type Entry struct {
	Type   OperationType
	SeqNum uint64 // sequence number for ordering
	Row    uint8
	Col    uint8
	Value  uint8

	// Lo and Hi are the board planes preserved by a checkpoint entry;
	// they are zero for every other type.
	Lo uint64
	Hi uint64
}

// Options contains configuration for the journal.
type Options struct {
	// Path is the directory where the journal file is stored.
	Path string

	// Compress enables zstd compression of journal entries.
	Compress bool

	// CompressionLevel sets the zstd compression level (1-22).
	// The default (3) is a good balance for the small fixed-size
	// entries a board produces.
	CompressionLevel int

	// SyncOnAppend fsyncs after every append. Slow but loses nothing
	// on crash; leave disabled for replay-only use cases where the
	// caller syncs at its own boundaries.
	SyncOnAppend bool
}

// DefaultOptions returns default journal options.
var DefaultOptions = Options{
	Path:             ".",
	Compress:         false,
	CompressionLevel: 3,
	SyncOnAppend:     false,
}
