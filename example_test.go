package bitgrid_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/bitgrid"
	"github.com/hupe1980/bitgrid/snapshot"
)

func Example() {
	ctx := context.Background()

	eng, err := bitgrid.New()
	if err != nil {
		panic(err)
	}
	defer eng.Close()

	// Drop a piece at the top of column 3 and let it fall.
	_ = eng.Set(ctx, 7, 3, 2)
	passes, _ := eng.Settle(ctx)

	v, _ := eng.Get(0, 3)
	fmt.Println("passes:", passes)
	fmt.Println("bottom of column 3:", v)
	// Output:
	// passes: 7
	// bottom of column 3: 2
}

func Example_persistence() {
	ctx := context.Background()

	store := snapshot.NewMemoryStore()
	eng, err := bitgrid.New(bitgrid.WithSnapshotStore(store))
	if err != nil {
		panic(err)
	}
	defer eng.Close()

	_ = eng.Set(ctx, 0, 0, 1)
	if err := eng.Save(ctx, "boards/game-1"); err != nil {
		panic(err)
	}

	_ = eng.Set(ctx, 0, 0, 3) // overwrite...
	_ = eng.Load(ctx, "boards/game-1")

	v, _ := eng.Get(0, 0)
	fmt.Println("restored:", v)
	// Output:
	// restored: 1
}
