package cfg_test

import (
	"testing"

	"cinder/internal/cfg"
	"cinder/internal/mir"
)

// funcFromEdges builds a mir.Func whose block i branches to succs[i]:
// no successors is a return, one a goto, two an if, more a switch.
func funcFromEdges(name string, succs [][]int) *mir.Func {
	f := &mir.Func{Name: name, Blocks: make([]mir.Block, len(succs))}
	for i, ss := range succs {
		b := &f.Blocks[i]
		b.ID = mir.BlockID(i)
		targets := make([]mir.BlockID, len(ss))
		for j, s := range ss {
			targets[j] = mir.BlockID(s)
		}
		switch len(targets) {
		case 0:
			b.Term = mir.Terminator{Kind: mir.TermReturn}
		case 1:
			b.Term = mir.Terminator{Kind: mir.TermGoto, Goto: mir.GotoTerm{Target: targets[0]}}
		case 2:
			b.Term = mir.Terminator{Kind: mir.TermIf, If: mir.IfTerm{Then: targets[0], Else: targets[1]}}
		default:
			b.Term = mir.Terminator{Kind: mir.TermSwitch, Switch: mir.SwitchTerm{Targets: targets}}
		}
	}
	return f
}

func buildGraph(t *testing.T, succs [][]int) *cfg.ControlFlowGraph {
	t.Helper()
	g, err := cfg.NewControlFlowGraph(funcFromEdges(t.Name(), succs))
	if err != nil {
		t.Fatalf("NewControlFlowGraph: %v", err)
	}
	return g
}

// blockFor resolves a block by its IR id, failing the test if it was
// dropped as unreachable.
func blockFor(t *testing.T, g *cfg.ControlFlowGraph, id int) cfg.Block {
	t.Helper()
	b := g.BlockFor(mir.BlockID(id))
	if b == nil {
		t.Fatalf("no graph block for bb%d", id)
	}
	return b
}

// checkDominatorInvariants verifies, for the whole graph, the contracts
// the dominator encoding must satisfy:
//   - Dominates(a, b) agrees with walking b's dominator chain, and every
//     block dominates itself.
//   - A non-root block sits exactly one level below its dominator.
//   - The child list reached from FirstDominated/DominatedSibling holds
//     exactly the blocks whose dominator is that block.
func checkDominatorInvariants(t *testing.T, g *cfg.ControlFlowGraph) {
	t.Helper()
	blocks := g.Blocks()

	dominatesRef := func(a, b cfg.Block) bool {
		for x := b; x != nil; x = x.Dominator() {
			if x == a {
				return true
			}
		}
		return false
	}

	for _, a := range blocks {
		if !cfg.Dominates(a, a) {
			t.Errorf("%v does not dominate itself", a)
		}
		for _, b := range blocks {
			want := dominatesRef(a, b)
			if got := cfg.Dominates(a, b); got != want {
				t.Errorf("Dominates(%v, %v) = %v, want %v", a, b, got, want)
			}
		}
	}

	for _, b := range blocks {
		d := b.Dominator()
		if d == nil {
			if b != g.StartBlock() {
				t.Errorf("%v has no dominator but is not the start block", b)
			}
			if b.DominatorDepth() != 0 {
				t.Errorf("root depth = %d, want 0", b.DominatorDepth())
			}
			continue
		}
		if b.DominatorDepth() != d.DominatorDepth()+1 {
			t.Errorf("%v depth = %d, dominator %v depth = %d", b, b.DominatorDepth(), d, d.DominatorDepth())
		}
	}

	for _, p := range blocks {
		want := map[cfg.BlockID]bool{}
		for _, b := range blocks {
			if b.Dominator() == p {
				want[b.ID()] = true
			}
		}
		got := map[cfg.BlockID]bool{}
		for _, c := range cfg.DominatedChildren(p) {
			if got[c.ID()] {
				t.Errorf("child list of %v visits %v twice", p, c)
			}
			got[c.ID()] = true
		}
		if len(got) != len(want) {
			t.Errorf("child list of %v has %d entries, want %d", p, len(got), len(want))
		}
		for id := range want {
			if !got[id] {
				t.Errorf("child list of %v is missing B%d", p, id)
			}
		}
	}
}
