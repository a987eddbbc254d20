package cfg_test

import (
	"math"
	"slices"
	"strings"
	"testing"

	"cinder/internal/cfg"
	"cinder/internal/mir"
)

func TestCommonDominator(t *testing.T) {
	g := buildGraph(t, [][]int{{1, 2}, {3}, {3}, {}})

	entry := blockFor(t, g, 0)
	left := blockFor(t, g, 1)
	right := blockFor(t, g, 2)
	join := blockFor(t, g, 3)

	if got := cfg.CommonDominator(left, right); got != entry {
		t.Errorf("CommonDominator(arms) = %v, want %v", got, entry)
	}
	if got := cfg.CommonDominator(entry, join); got != entry {
		t.Errorf("CommonDominator(entry, join) = %v, want %v", got, entry)
	}
	if got := cfg.CommonDominator(join, join); got != join {
		t.Errorf("CommonDominator(b, b) = %v, want %v", got, join)
	}
	if got := cfg.CommonDominator(nil, join); got != nil {
		t.Errorf("CommonDominator(nil, b) = %v, want nil", got)
	}
}

func TestEdgeMembership(t *testing.T) {
	g := buildGraph(t, [][]int{{1, 2}, {3}, {3}, {}})

	entry := blockFor(t, g, 0)
	left := blockFor(t, g, 1)
	join := blockFor(t, g, 3)

	if !cfg.ContainsSuccessor(entry, left) {
		t.Error("entry must list its branch arm as successor")
	}
	if cfg.ContainsSuccessor(entry, join) {
		t.Error("entry must not list the join as successor")
	}
	if !cfg.ContainsPredecessor(join, left) {
		t.Error("join must list the arm as predecessor")
	}
	if cfg.ContainsPredecessor(left, join) {
		t.Error("arm must not list the join as predecessor")
	}
}

func TestCompareByID(t *testing.T) {
	g := buildGraph(t, [][]int{{1, 2}, {3}, {3}, {}})

	blocks := slices.Clone(g.Blocks())
	slices.Reverse(blocks)
	slices.SortFunc(blocks, cfg.CompareByID)
	for i, b := range blocks {
		if int(b.ID()) != i {
			t.Fatalf("position %d holds %v after sort", i, b)
		}
	}
}

func TestPostdominators_Diamond(t *testing.T) {
	g := buildGraph(t, [][]int{{1, 2}, {3}, {3}, {}})

	join := blockFor(t, g, 3)
	for _, id := range []int{0, 1, 2} {
		if got := blockFor(t, g, id).Postdominator(); got != join {
			t.Errorf("postdominator of bb%d = %v, want %v", id, got, join)
		}
	}
	if got := join.Postdominator(); got != nil {
		t.Errorf("postdominator of the exit = %v, want nil", got)
	}
}

func TestPostdominators_NoExitPath(t *testing.T) {
	// bb1 spins forever; nothing reaches an exit.
	g := buildGraph(t, [][]int{{1}, {1}})
	for _, b := range g.Blocks() {
		if b.Postdominator() != nil {
			t.Errorf("%v has a postdominator without a path to an exit", b)
		}
	}
}

func TestSuccessorProbabilities(t *testing.T) {
	f := funcFromEdges("probs", [][]int{{1, 2}, {3}, {3}, {}})
	f.Blocks[0].Term.If.ThenProbability = 0.7

	g, err := cfg.NewControlFlowGraph(f)
	if err != nil {
		t.Fatalf("NewControlFlowGraph: %v", err)
	}

	entry := blockFor(t, g, 0)
	if p := entry.SuccessorProbabilityAt(0); p != 0.7 {
		t.Errorf("then probability = %v, want 0.7", p)
	}
	if p := entry.SuccessorProbabilityAt(1); math.Abs(p-0.3) > 1e-9 {
		t.Errorf("else probability = %v, want 0.3", p)
	}
	if p := blockFor(t, g, 1).SuccessorProbabilityAt(0); p != 1.0 {
		t.Errorf("goto probability = %v, want 1.0", p)
	}

	// No profile: an if splits evenly.
	g2 := buildGraph(t, [][]int{{1, 2}, {}, {}})
	if p := blockFor(t, g2, 0).SuccessorProbabilityAt(0); p != 0.5 {
		t.Errorf("unprofiled branch probability = %v, want 0.5", p)
	}
}

func TestScheduleMetadata(t *testing.T) {
	g := buildGraph(t, [][]int{{1}, {2, 3}, {1}, {}})

	for i, b := range g.Blocks() {
		if b.LinearScanNumber() != i {
			t.Errorf("%v linear scan number = %d, want %d", b, b.LinearScanNumber(), i)
		}
		if b.RelativeFrequency() < 0 {
			t.Errorf("%v has negative frequency", b)
		}
	}
	header := blockFor(t, g, 1)
	if !header.IsAligned() {
		t.Error("loop header not aligned")
	}
	if blockFor(t, g, 0).IsAligned() {
		t.Error("entry block aligned")
	}
	// Loop blocks run more often than the entry.
	if header.RelativeFrequency() <= blockFor(t, g, 0).RelativeFrequency() {
		t.Errorf("header frequency %v not above entry frequency", header.RelativeFrequency())
	}
}

func TestExceptionEntryFlag(t *testing.T) {
	f := funcFromEdges("exc", [][]int{{1}, {}})
	f.Blocks[1].Flags |= mir.BlockFlagExcEntry

	g, err := cfg.NewControlFlowGraph(f)
	if err != nil {
		t.Fatalf("NewControlFlowGraph: %v", err)
	}
	if !blockFor(t, g, 1).IsExceptionEntry() {
		t.Error("exception entry flag lost")
	}
	if blockFor(t, g, 0).IsExceptionEntry() {
		t.Error("entry wrongly flagged")
	}
}

func TestDeleteBlock(t *testing.T) {
	g := buildGraph(t, [][]int{{1}, {2}, {}})

	entry := blockFor(t, g, 0)
	mid := blockFor(t, g, 1)
	tail := blockFor(t, g, 2)

	mid.Delete()

	if mid.IsModifiable() {
		t.Error("deleted block still modifiable")
	}
	if !cfg.ContainsSuccessor(entry, tail) {
		t.Error("predecessor not rerouted to the successor")
	}
	if cfg.ContainsPredecessor(tail, mid) {
		t.Error("deleted block still a predecessor of its successor")
	}
	if mid.SuccessorCount() != 0 || mid.PredecessorCount() != 0 {
		t.Error("deleted block keeps edges")
	}

	// Deleting twice is a no-op.
	mid.Delete()
}

func TestDumpDominatorTree(t *testing.T) {
	g := buildGraph(t, [][]int{{1}, {2, 3}, {1}, {}})

	var sb strings.Builder
	if err := cfg.DumpDominatorTree(&sb, g); err != nil {
		t.Fatalf("DumpDominatorTree: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "B0 depth=0") {
		t.Errorf("missing root line in:\n%s", out)
	}
	if !strings.Contains(out, "header") {
		t.Errorf("missing loop header tag in:\n%s", out)
	}
}

func TestDumpDot(t *testing.T) {
	g := buildGraph(t, [][]int{{1, 2}, {3}, {3}, {}})

	var sb strings.Builder
	if err := cfg.DumpDot(&sb, g, "diamond"); err != nil {
		t.Fatalf("DumpDot: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"digraph \"diamond\"", "b0 -> b", "style=dashed"} {
		if !strings.Contains(out, want) {
			t.Errorf("dot output missing %q:\n%s", want, out)
		}
	}
}
