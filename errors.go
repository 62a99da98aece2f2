package bitgrid

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bitgrid/grid"
	"github.com/hupe1980/bitgrid/snapshot"
)

var (
	// ErrClosed is returned when the engine has been closed.
	ErrClosed = errors.New("engine is closed")

	// ErrOutOfRange unifies invalid row/col/value arguments. The
	// underlying typed error (grid.ErrCellOutOfRange or
	// grid.ErrValueOutOfRange) stays reachable via errors.As.
	ErrOutOfRange = errors.New("out of range")

	// ErrNoSnapshotStore is returned by Save/Load when no snapshot
	// store was configured.
	ErrNoSnapshotStore = errors.New("no snapshot store configured")

	// ErrSnapshotNotFound is returned by Load when the named snapshot
	// does not exist in the store.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var cell *grid.ErrCellOutOfRange
	if errors.As(err, &cell) {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	var value *grid.ErrValueOutOfRange
	if errors.As(err, &value) {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}

	if errors.Is(err, snapshot.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrSnapshotNotFound, err)
	}

	return err
}
