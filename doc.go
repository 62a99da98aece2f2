// Package bitgrid provides an embeddable bit-packed board engine for
// falling-block games.
//
// The board is an 8×8 grid of 2-bit cells packed into two uint64 bit
// planes, so gravity, occupancy tests and transforms run as plain word
// operations. The engine wraps the board with journaling, snapshot
// persistence, structured logging and metrics:
//
//   - grid: the packed board with fail-fast bounds checks and
//     iterative per-pass gravity
//   - bitmatrix: 8×8 bit-matrix transforms (transpose, flips,
//     rotations) for piece masks
//   - journal: append-only move journal with optional zstd compression
//     for crash recovery and replay
//   - snapshot: persisted board states with memory, filesystem, S3 and
//     MinIO stores plus a roaring-bitmap catalog
//
// # Quick Start
//
//	ctx := context.Background()
//	eng, err := bitgrid.New(
//	    bitgrid.WithJournal("./journal"),
//	    bitgrid.WithSnapshotStore(snapshot.NewLocalStore("./snapshots")),
//	)
//	if err != nil {
//	    panic(err)
//	}
//	defer eng.Close()
//
//	_ = eng.Set(ctx, 7, 3, 2)       // drop a piece at the top of column 3
//	passes, _ := eng.Settle(ctx)    // run gravity to fixed point
//	_ = eng.Save(ctx, "boards/g1")  // persist and checkpoint the journal
//
// Re-opening with the same journal path replays all moves recorded
// since the last checkpoint, so a crashed game resumes where it
// stopped.
//
// # Animation
//
// Settle collapses to the final state. To render the fall frame by
// frame, step a board clone one gravity pass at a time:
//
//	board := eng.Board()
//	for board.Step() {
//	    render(board)
//	}
package bitgrid
