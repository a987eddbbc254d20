package cfg

// Graph is the owning container of an ordered block array. The id of each
// block is its index into Blocks(); blocks resolve their stored linkage
// ids through this interface and never mutate the graph through it.
type Graph interface {
	// Blocks returns the graph's blocks in reverse post order.
	Blocks() []Block
	// StartBlock returns the graph's entry block, the root of the
	// dominator tree.
	StartBlock() Block
	// Loops returns the detected natural loops, outermost first.
	Loops() []*Loop
}

// Dominates reports whether a dominates b (every path from the start block
// to b passes through a). A block dominates itself. Only valid after the
// numbering pass has completed; both numbering pairs must be set.
func Dominates(a, b Block) bool {
	an := a.DominatorNumber()
	bn := b.DominatorNumber()
	return an <= bn && bn <= a.MaxChildDominatorNumber()
}

// StrictlyDominates reports whether a dominates b and a != b. Dominator
// numbers are unique per block, so number equality is block identity.
func StrictlyDominates(a, b Block) bool {
	return a.DominatorNumber() != b.DominatorNumber() && Dominates(a, b)
}

// CommonDominator returns the deepest block dominating both a and b, or
// nil if either input is nil.
func CommonDominator(a, b Block) Block {
	if a == nil || b == nil {
		return nil
	}
	for a != b {
		for a.DominatorDepth() > b.DominatorDepth() {
			a = a.Dominator()
		}
		for b.DominatorDepth() > a.DominatorDepth() {
			b = b.Dominator()
		}
		if a == b {
			break
		}
		a = a.Dominator()
		b = b.Dominator()
	}
	return a
}

// CompareByID orders blocks by id. For use with slices.SortFunc to keep
// block collections deterministic in downstream passes.
func CompareByID(a, b Block) int {
	switch {
	case a.ID() < b.ID():
		return -1
	case a.ID() > b.ID():
		return 1
	default:
		return 0
	}
}

// ContainsPredecessor reports whether key appears in b's predecessor list.
// Identity comparison, linear scan; block degree is small in practice.
func ContainsPredecessor(b, key Block) bool {
	for i := 0; i < b.PredecessorCount(); i++ {
		if b.PredecessorAt(i) == key {
			return true
		}
	}
	return false
}

// ContainsSuccessor reports whether key appears in b's successor list.
func ContainsSuccessor(b, key Block) bool {
	for i := 0; i < b.SuccessorCount(); i++ {
		if b.SuccessorAt(i) == key {
			return true
		}
	}
	return false
}
