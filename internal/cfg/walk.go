package cfg

// DominatorSkipLoops returns the nearest strict dominator of b that is in
// the same loop as b (or in an enclosing loop), skipping dominators that
// sit inside a different, inner loop. Returns nil for the start block.
//
// When the entry block itself heads a loop, every ancestor of a block
// outside that loop is a loop member; the walk then stops at the root
// instead of climbing past it.
func DominatorSkipLoops(b Block) Block {
	d := b.Dominator()

	if d == nil {
		// Start block, nothing above us.
		return nil
	}

	if b.IsLoopHeader() {
		// Stepping out of the loop through its header: the header's
		// immediate dominator is already outside the loop, one nesting
		// level up.
		return d
	}

	for d.Loop() != b.Loop() {
		// The dominator is inside a different loop. Keep climbing the
		// dominator tree until we are back in b's loop or at the root.
		next := d.Dominator()
		if next == nil {
			break
		}
		d = next
	}

	return d
}
