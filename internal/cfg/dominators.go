package cfg

// computeDominators finds each block's immediate dominator with the
// iterative reverse-post-order fixpoint, then writes the tree onto the
// blocks: dominator id, depth, and the intrusive child lists. Children
// are linked by prepending, so a parent's child list comes out in
// descending id order.
func (g *ControlFlowGraph) computeDominators() error {
	n := len(g.blocks)
	if n == 0 {
		return nil
	}

	idom := make([]BlockID, n)
	for i := range idom {
		idom[i] = InvalidBlockID
	}
	// The entry is its own dominator for the duration of the fixpoint so
	// that intersect terminates at id 0.
	idom[0] = 0

	// Blocks are in reverse post order, so one forward sweep converges
	// for reducible graphs; the outer loop covers irreducible shapes.
	for changed := true; changed; {
		changed = false
		for i := 1; i < n; i++ {
			b := g.blocks[i]
			newIdom := InvalidBlockID
			for p := 0; p < b.PredecessorCount(); p++ {
				pid := b.PredecessorAt(p).ID()
				if idom[pid] == InvalidBlockID {
					continue // predecessor not reached yet
				}
				if newIdom == InvalidBlockID {
					newIdom = pid
					continue
				}
				newIdom = intersect(idom, newIdom, pid)
			}
			if newIdom != InvalidBlockID && idom[i] != newIdom {
				idom[i] = newIdom
				changed = true
			}
		}
	}

	// Parents precede children in RPO, so a child reads a valid parent
	// depth in this sweep.
	for i := 1; i < n; i++ {
		b := g.blocks[i]
		parent := g.blocks[idom[i]]
		if err := b.SetDominator(parent); err != nil {
			return err
		}
		if err := b.SetDominatedSibling(parent.FirstDominated()); err != nil {
			return err
		}
		if err := parent.SetFirstDominated(b); err != nil {
			return err
		}
	}
	return nil
}

// intersect walks two dominator-chain fingers toward their common
// ancestor. Ids are reverse-post-order positions, so the finger deeper in
// the order always has the larger id.
func intersect(idom []BlockID, a, b BlockID) BlockID {
	for a != b {
		for a > b {
			a = idom[a]
		}
		for b > a {
			b = idom[b]
		}
	}
	return a
}

type numberFrame struct {
	b       Block
	child   Block // last child descended into
	started bool
}

// assignDominatorNumbers labels every block with its preorder number in
// the dominator tree and, on subtree exit, with the maximum number seen
// in the subtree. Preorder numbers of a subtree are contiguous, so after
// this pass "a dominates b" is two integer comparisons on the pair.
func (g *ControlFlowGraph) assignDominatorNumbers() error {
	if len(g.blocks) == 0 {
		return nil
	}

	num := 0
	root := g.StartBlock()
	id, err := ToID(num)
	if err != nil {
		return err
	}
	root.SetDominatorNumber(id)
	num++

	stack := []numberFrame{{b: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		var next Block
		if !top.started {
			top.started = true
			next = top.b.FirstDominated()
		} else if top.child != nil {
			next = top.child.DominatedSibling()
		}

		if next != nil {
			top.child = next
			id, err := ToID(num)
			if err != nil {
				return err
			}
			next.SetDominatorNumber(id)
			num++
			stack = append(stack, numberFrame{b: next})
			continue
		}

		// Subtree complete: num-1 is the last preorder number handed out
		// below (or at) this block.
		maxID, err := ToID(num - 1)
		if err != nil {
			return err
		}
		top.b.SetMaxChildDominatorNumber(maxID)
		stack = stack[:len(stack)-1]
	}
	return nil
}
