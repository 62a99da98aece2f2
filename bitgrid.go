package bitgrid

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/bitgrid/codec"
	"github.com/hupe1980/bitgrid/grid"
	"github.com/hupe1980/bitgrid/journal"
	"github.com/hupe1980/bitgrid/snapshot"
)

// Engine is a board engine with optional journaling and snapshot
// persistence. It is safe for concurrent use; the underlying grid.Grid
// is not, so all mutation goes through the engine's lock.
type Engine struct {
	mu      sync.Mutex
	board   *grid.Grid
	journal *journal.Journal
	store   snapshot.Store
	codec   codec.Codec
	metrics MetricsCollector
	logger  *Logger
	closed  bool
}

// New creates an engine with an empty board.
//
// When WithJournal is configured and the journal directory holds
// entries from a previous run, they are replayed so the board resumes
// where it stopped.
func New(optFns ...Option) (*Engine, error) {
	opts := applyOptions(optFns)

	e := &Engine{
		board:   grid.New(),
		store:   opts.snapshotStore,
		codec:   opts.codec,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}

	if opts.journalPath != "" {
		journalOptFns := append([]func(*journal.Options){
			func(o *journal.Options) {
				o.Path = opts.journalPath
			},
		}, opts.journalOptions...)

		j, err := journal.New(journalOptFns...)
		if err != nil {
			return nil, fmt.Errorf("bitgrid: failed to create journal: %w", err)
		}
		e.journal = j

		if err := e.recover(context.Background()); err != nil {
			_ = j.Close()
			return nil, err
		}
	}

	return e, nil
}

// recover rebuilds the board from the journal: a checkpoint entry
// restores the planes saved at that boundary, later entries replay on
// top.
func (e *Engine) recover(ctx context.Context) error {
	replayed := 0
	err := e.journal.Replay(func(entry journal.Entry) error {
		replayed++
		switch entry.Type {
		case journal.OpSet:
			return e.board.Set(int(entry.Row), int(entry.Col), entry.Value)
		case journal.OpSettle:
			e.board.Settle()
		case journal.OpStep:
			e.board.Step()
		case journal.OpCheckpoint:
			e.board = grid.FromPlanes(entry.Lo, entry.Hi)
		}
		return nil
	})
	if err != nil {
		err = fmt.Errorf("bitgrid: journal recovery failed: %w", err)
	}
	e.logger.LogRecovery(ctx, replayed, err)
	return err
}

// Get returns the value of the cell at (row, col).
func (e *Engine) Get(row, col int) (uint8, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0, ErrClosed
	}
	v, err := e.board.Get(row, col)
	return v, translateError(err)
}

// Set assigns value to the cell at (row, col) and journals the write.
func (e *Engine) Set(ctx context.Context, row, col int, value uint8) error {
	start := time.Now()

	e.mu.Lock()
	err := e.setLocked(row, col, value)
	e.mu.Unlock()

	err = translateError(err)
	e.metrics.RecordSet(time.Since(start), err)
	e.logger.LogSet(ctx, row, col, value, err)
	return err
}

func (e *Engine) setLocked(row, col int, value uint8) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.board.Set(row, col, value); err != nil {
		return err
	}
	if e.journal != nil {
		if _, err := e.journal.AppendSet(row, col, value); err != nil {
			return fmt.Errorf("failed to journal set: %w", err)
		}
	}
	return nil
}

// Settle runs gravity to the fixed point and journals the run.
// It returns the number of passes taken, zero when nothing moved.
func (e *Engine) Settle(ctx context.Context) (int, error) {
	start := time.Now()

	e.mu.Lock()
	passes, err := e.settleLocked()
	e.mu.Unlock()

	e.metrics.RecordSettle(passes, time.Since(start), err)
	e.logger.LogSettle(ctx, passes, err)
	return passes, err
}

func (e *Engine) settleLocked() (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	passes := e.board.Settle()
	if e.journal != nil {
		if _, err := e.journal.AppendSettle(); err != nil {
			return passes, fmt.Errorf("failed to journal settle: %w", err)
		}
	}
	return passes, nil
}

// Step runs a single gravity pass and journals it. It reports whether
// anything moved; a false result means the board is settled. Callers
// animating a fall render the board between steps:
//
//	for {
//	    moved, err := eng.Step(ctx)
//	    if err != nil || !moved {
//	        break
//	    }
//	    render(eng.Board())
//	}
func (e *Engine) Step(_ context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false, ErrClosed
	}
	moved := e.board.Step()
	if moved && e.journal != nil {
		if _, err := e.journal.AppendStep(); err != nil {
			return moved, fmt.Errorf("failed to journal step: %w", err)
		}
	}
	return moved, nil
}

// Board returns a deep copy of the current board.
func (e *Engine) Board() *grid.Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Clone()
}

// SeqNum returns the current journal sequence number, zero when no
// journal is configured.
func (e *Engine) SeqNum() uint64 {
	if e.journal == nil {
		return 0
	}
	return e.journal.SeqNum()
}

// Snapshot captures the current board state.
func (e *Engine) Snapshot() *snapshot.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	seq := uint64(0)
	if e.journal != nil {
		seq = e.journal.SeqNum()
	}
	return snapshot.Capture(e.board, seq)
}

// Restore replaces the board with a snapshotted state.
func (e *Engine) Restore(s *snapshot.Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	e.board = s.Board()
	return nil
}

// Save persists the current board to the snapshot store and
// checkpoints the journal: entries covered by the snapshot collapse
// into a single checkpoint entry, so a reopened engine resumes from
// the saved board plus the moves made since.
func (e *Engine) Save(ctx context.Context, name string) error {
	start := time.Now()
	err := e.save(ctx, name)
	e.metrics.RecordSnapshot(time.Since(start), err)
	e.logger.LogSnapshot(ctx, "save", name, err)
	return err
}

func (e *Engine) save(ctx context.Context, name string) error {
	if e.store == nil {
		return ErrNoSnapshotStore
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	seq := uint64(0)
	if e.journal != nil {
		seq = e.journal.SeqNum()
	}
	data, err := snapshot.Encode(snapshot.Capture(e.board, seq), e.codec)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := e.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	if e.journal != nil {
		lo, hi := e.board.Planes()
		if err := e.journal.Checkpoint(lo, hi); err != nil {
			return fmt.Errorf("failed to checkpoint journal: %w", err)
		}
	}
	return nil
}

// Load replaces the board with a snapshot from the store.
func (e *Engine) Load(ctx context.Context, name string) error {
	start := time.Now()
	err := e.load(ctx, name)
	e.metrics.RecordSnapshot(time.Since(start), err)
	e.logger.LogSnapshot(ctx, "load", name, err)
	return err
}

func (e *Engine) load(ctx context.Context, name string) error {
	if e.store == nil {
		return ErrNoSnapshotStore
	}

	data, err := e.store.Get(ctx, name)
	if err != nil {
		return translateError(err)
	}
	s, err := snapshot.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	e.board = s.Board()
	return nil
}

// Close releases the journal. Further operations fail with ErrClosed;
// Close itself is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	if e.journal != nil {
		return e.journal.Close()
	}
	return nil
}

// SettleAll settles many boards concurrently with bounded parallelism.
// Each board is touched by exactly one goroutine.
func SettleAll(ctx context.Context, boards []*grid.Grid) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, b := range boards {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b.Settle()
			return nil
		})
	}
	return g.Wait()
}
