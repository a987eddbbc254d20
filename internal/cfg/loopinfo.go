package cfg

// computeLoopInfo discovers natural loops from backedges and fills in the
// per-block loop metadata. Requires dominator numbering: a backedge is an
// edge whose target dominates its source.
func (g *ControlFlowGraph) computeLoopInfo() {
	n := len(g.blocks)

	// One loop per header, discovered in header id order. members[j] is
	// the block membership set of loops[j].
	var loops []*Loop
	var members [][]bool
	loopIdx := make(map[BlockID]int)

	for i := 0; i < n; i++ {
		h := g.blocks[i]
		for p := 0; p < h.PredecessorCount(); p++ {
			src := h.PredecessorAt(p)
			if !Dominates(h, src) {
				continue
			}
			// Backedge src -> h.
			j, ok := loopIdx[h.ID()]
			if !ok {
				j = len(loops)
				loopIdx[h.ID()] = j
				loops = append(loops, &Loop{header: h})
				in := make([]bool, n)
				in[h.ID()] = true
				members = append(members, in)
			}
			loops[j].backedges++
			src.(*BasicBlock).loopEnd = true

			// Natural loop membership: flood backward from the backedge
			// source; the header bounds the region because it dominates
			// every member.
			in := members[j]
			stack := []Block{src}
			for len(stack) > 0 {
				x := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if in[x.ID()] {
					continue
				}
				in[x.ID()] = true
				for q := 0; q < x.PredecessorCount(); q++ {
					stack = append(stack, x.PredecessorAt(q))
				}
			}
		}
	}
	if len(loops) == 0 {
		return
	}

	sizes := make([]int, len(loops))
	for j, in := range members {
		for _, m := range in {
			if m {
				sizes[j]++
			}
		}
	}

	// Nesting: the parent is the smallest other loop containing this
	// loop's header. Reducible loops are either disjoint or nested, so
	// containment of the header implies containment of the whole loop.
	for j, l := range loops {
		best := n + 1
		for k, m := range loops {
			if k == j || !members[k][l.header.ID()] {
				continue
			}
			if sizes[k] < best {
				best = sizes[k]
				l.parent = m
			}
		}
	}
	for _, l := range loops {
		if l.parent != nil {
			l.parent.children = append(l.parent.children, l)
		}
	}
	for j, l := range loops {
		l.index = j
		l.depth = 1
		for p := l.parent; p != nil; p = p.parent {
			l.depth++
		}
	}

	// Innermost enclosing loop per block, then flags and member lists.
	for i := 0; i < n; i++ {
		b := g.blocks[i].(*BasicBlock)
		for j, l := range loops {
			if members[j][b.ID()] && (b.loop == nil || l.depth > b.loop.depth) {
				b.loop = l
			}
		}
	}
	for j, l := range loops {
		l.header.(*BasicBlock).loopHeader = true
		l.blocks = append(l.blocks, l.header)
		for i := 0; i < n; i++ {
			if b := g.blocks[i]; members[j][b.ID()] && b != l.header {
				l.blocks = append(l.blocks, b)
			}
		}
		l.exits = loopExits(g, members[j])
	}

	g.loops = loops
}

// loopExits collects, in id order, the blocks outside the member set that
// a member jumps to.
func loopExits(g *ControlFlowGraph, in []bool) []Block {
	seen := make([]bool, len(g.blocks))
	var exits []Block
	for i, b := range g.blocks {
		if !in[i] {
			continue
		}
		for s := 0; s < b.SuccessorCount(); s++ {
			t := b.SuccessorAt(s)
			if !in[t.ID()] {
				seen[t.ID()] = true
			}
		}
	}
	for i, b := range g.blocks {
		if seen[i] {
			exits = append(exits, b)
		}
	}
	return exits
}
