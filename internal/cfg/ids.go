package cfg

import (
	"fortio.org/safecast"
)

// BlockID identifies a basic block within its owning graph. The id doubles
// as the block's index into the graph's Blocks() array, so ids are dense
// over [0, block count).
type BlockID uint16

const (
	// InvalidBlockID is the sentinel for "no block". It is reserved and
	// never assigned to a real block.
	InvalidBlockID BlockID = 0xFFFF

	// LastValidBlockIndex is the highest assignable block id.
	LastValidBlockIndex BlockID = InvalidBlockID - 1
)

// IsValid returns true if the id refers to a block (is not the sentinel).
func (id BlockID) IsValid() bool { return id != InvalidBlockID }

// ToID converts an arbitrary integer to a block id. Values outside
// [0, LastValidBlockIndex] fail with a retryable bailout: the graph is too
// large to number inside the fixed-width id space, and the caller is
// expected to fall back to an unoptimized compilation path rather than
// wrap around.
func ToID(i int) (BlockID, error) {
	v, err := safecast.Conv[uint16](i)
	if err != nil || BlockID(v) > LastValidBlockIndex {
		return InvalidBlockID, &BailoutError{Reason: "graph too large to safely compile in reasonable time"}
	}
	return BlockID(v), nil
}

// AddDepth adds increment to a dominator-tree depth under the same
// fixed-width policy as ToID. Used when deriving a child's depth from its
// parent's; a failure means the dominator tree is implausibly deep for
// safe numbering.
func AddDepth(base uint16, increment int) (uint16, error) {
	sum, err := safecast.Conv[uint16](int(base) + increment)
	if err != nil || BlockID(sum) > LastValidBlockIndex {
		return 0, &BailoutError{Reason: "graph too large to safely compile in reasonable time: dominator tree depth overflows block id space"}
	}
	return sum, nil
}
