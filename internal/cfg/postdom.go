package cfg

// computePostdominators runs the same iterative fixpoint as the dominator
// pass, but over reversed edges rooted at a virtual exit that joins every
// terminal block. Blocks that never reach an exit (an infinite loop) keep
// no postdominator, as does a terminal block itself.
func (g *ControlFlowGraph) computePostdominators() {
	n := len(g.blocks)
	if n == 0 {
		return
	}
	exit := n // virtual node index

	// Reversed adjacency: from the virtual exit into terminal blocks,
	// and from each block into its predecessors.
	radj := make([][]int, n+1)
	for i, b := range g.blocks {
		if b.SuccessorCount() == 0 {
			radj[exit] = append(radj[exit], i)
		}
		for p := 0; p < b.PredecessorCount(); p++ {
			radj[i] = append(radj[i], int(b.PredecessorAt(p).ID()))
		}
	}

	// Reverse post order of the reversed graph.
	seen := make([]bool, n+1)
	post := make([]int, 0, n+1)
	type nodeAndIndex struct{ v, index int }
	s := []nodeAndIndex{{v: exit}}
	seen[exit] = true
	for len(s) > 0 {
		tos := len(s) - 1
		x := s[tos]
		if i := x.index; i < len(radj[x.v]) {
			s[tos].index++
			w := radj[x.v][i]
			if !seen[w] {
				seen[w] = true
				s = append(s, nodeAndIndex{v: w})
			}
			continue
		}
		s = s[:tos]
		post = append(post, x.v)
	}
	pos := make([]int, n+1)
	for i := range pos {
		pos[i] = -1
	}
	for i, j := 0, len(post)-1; j >= 0; i, j = i+1, j-1 {
		pos[post[j]] = i
	}

	// Reversed-graph predecessors of v: its original successors, plus
	// the virtual exit for terminal blocks.
	rpreds := func(v int) []int {
		if v == exit {
			return nil
		}
		b := g.blocks[v]
		out := make([]int, 0, b.SuccessorCount()+1)
		for i := 0; i < b.SuccessorCount(); i++ {
			out = append(out, int(b.SuccessorAt(i).ID()))
		}
		if b.SuccessorCount() == 0 {
			out = append(out, exit)
		}
		return out
	}

	ipdom := make([]int, n+1)
	for i := range ipdom {
		ipdom[i] = -1
	}
	ipdom[exit] = exit

	for changed := true; changed; {
		changed = false
		// Walk the reversed-graph RPO, skipping the root.
		for i := len(post) - 2; i >= 0; i-- {
			v := post[i]
			newIpdom := -1
			for _, w := range rpreds(v) {
				if pos[w] < 0 || ipdom[w] < 0 {
					continue
				}
				if newIpdom < 0 {
					newIpdom = w
					continue
				}
				newIpdom = intersectByPos(ipdom, pos, newIpdom, w)
			}
			if newIpdom >= 0 && ipdom[v] != newIpdom {
				ipdom[v] = newIpdom
				changed = true
			}
		}
	}

	for i, b := range g.blocks {
		if pos[i] < 0 || ipdom[i] < 0 || ipdom[i] == exit {
			continue
		}
		b.(*BasicBlock).postdominator = g.blocks[ipdom[i]].ID()
	}
}

func intersectByPos(idom, pos []int, a, b int) int {
	for a != b {
		for pos[a] > pos[b] {
			a = idom[a]
		}
		for pos[b] > pos[a] {
			b = idom[b]
		}
	}
	return a
}
