package snapshot

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Catalog tracks which snapshot sequence numbers a store holds.
// It wraps a 64-bit Roaring Bitmap, so sparse histories of long games
// stay cheap to keep and to serialize.
//
// Catalog is not safe for concurrent use.
type Catalog struct {
	rb *roaring64.Bitmap
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		rb: roaring64.New(),
	}
}

// Add records a persisted snapshot sequence number.
func (c *Catalog) Add(seqNum uint64) {
	c.rb.Add(seqNum)
}

// Remove forgets a sequence number.
func (c *Catalog) Remove(seqNum uint64) {
	c.rb.Remove(seqNum)
}

// Contains reports whether the sequence number is cataloged.
func (c *Catalog) Contains(seqNum uint64) bool {
	return c.rb.Contains(seqNum)
}

// Cardinality returns the number of cataloged snapshots.
func (c *Catalog) Cardinality() uint64 {
	return c.rb.GetCardinality()
}

// Max returns the highest cataloged sequence number, or 0 when empty.
func (c *Catalog) Max() uint64 {
	if c.rb.IsEmpty() {
		return 0
	}
	return c.rb.Maximum()
}

// Iterator returns an iterator over the cataloged sequence numbers in
// ascending order.
func (c *Catalog) Iterator() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		it := c.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Missing returns the sequence numbers in [from, to] without a
// cataloged snapshot.
func (c *Catalog) Missing(from, to uint64) []uint64 {
	if from > to {
		return nil
	}
	var missing []uint64
	// The exit test sits before the increment so to == math.MaxUint64
	// cannot wrap seq back to zero.
	for seq := from; ; seq++ {
		if !c.rb.Contains(seq) {
			missing = append(missing, seq)
		}
		if seq == to {
			return missing
		}
	}
}

// MarshalBinary serializes the catalog in the roaring interchange
// format.
func (c *Catalog) MarshalBinary() ([]byte, error) {
	return c.rb.ToBytes()
}

// UnmarshalBinary restores a catalog from its serialized form.
func (c *Catalog) UnmarshalBinary(data []byte) error {
	rb := roaring64.New()
	if err := rb.UnmarshalBinary(data); err != nil {
		return err
	}
	c.rb = rb
	return nil
}
