package cfg

import (
	"errors"
	"fmt"

	"cinder/internal/mir"
)

// ControlFlowGraph owns the ordered block array for one function. Blocks
// are held in reverse post order and a block's id is its index into
// Blocks(). Construction and the analysis passes run single-threaded;
// once NewControlFlowGraph returns, the structure is read-only and safe
// for concurrent queries until a mutation (block deletion) is serialized
// against readers by the caller.
type ControlFlowGraph struct {
	fn       *mir.Func
	blocks   []Block
	loops    []*Loop
	bySource map[mir.BlockID]Block
}

// NewControlFlowGraph builds the CFG for f and runs the analysis passes
// in order: dominator tree, dominator numbering, loop detection,
// postdominators, scheduling metadata. Blocks unreachable from the entry
// are dropped. Fails with a *BailoutError when the function is too large
// for the block id space.
func NewControlFlowGraph(f *mir.Func) (*ControlFlowGraph, error) {
	if f == nil {
		return nil, errors.New("cfg: nil function")
	}
	if err := mir.Validate(f); err != nil {
		return nil, fmt.Errorf("invalid mir for %q: %w", f.Name, err)
	}

	g := &ControlFlowGraph{fn: f}
	order := reversePostorder(f)

	g.blocks = make([]Block, len(order))
	g.bySource = make(map[mir.BlockID]Block, len(order))
	index := make(map[mir.BlockID]int, len(order))
	for i, mb := range order {
		id, err := ToID(i)
		if err != nil {
			return nil, err
		}
		b := newBasicBlock(g)
		b.SetID(id)
		b.src = mb
		b.excEntry = mb.IsExceptionEntry()
		g.blocks[i] = b
		g.bySource[mb.ID] = b
		index[mb.ID] = i
	}

	for i, mb := range order {
		b := g.blocks[i].(*BasicBlock)
		for _, t := range mb.Term.Successors() {
			succ := g.blocks[index[t]].(*BasicBlock)
			b.succs = append(b.succs, succ)
			succ.preds = append(succ.preds, b)
		}
		switch probs := mb.Term.SuccessorProbabilities(); {
		case probs != nil:
			b.probs = probs
		case len(b.succs) == 1:
			b.probs = SingletonProbabilities
		default:
			b.probs = EmptyProbabilities
		}
	}

	if err := g.computeDominators(); err != nil {
		return nil, err
	}
	if err := g.assignDominatorNumbers(); err != nil {
		return nil, err
	}
	g.computeLoopInfo()
	g.computePostdominators()
	g.scheduleBlocks()
	return g, nil
}

// Blocks returns the block array in reverse post order; index == id.
func (g *ControlFlowGraph) Blocks() []Block { return g.blocks }

// StartBlock returns the entry block, the root of the dominator tree.
func (g *ControlFlowGraph) StartBlock() Block {
	if len(g.blocks) == 0 {
		return nil
	}
	return g.blocks[0]
}

// Loops returns the natural loops ordered by header id.
func (g *ControlFlowGraph) Loops() []*Loop { return g.loops }

// Func returns the IR function this graph was built from.
func (g *ControlFlowGraph) Func() *mir.Func { return g.fn }

// NumBlocks returns the number of reachable blocks.
func (g *ControlFlowGraph) NumBlocks() int { return len(g.blocks) }

// BlockFor resolves the graph block built from IR block id, or nil when
// the IR block was unreachable.
func (g *ControlFlowGraph) BlockFor(id mir.BlockID) Block { return g.bySource[id] }

// DeleteBlock splices b out of the edge structure: every predecessor's
// edge to b is rerouted to b's single successor. The block must have
// exactly one successor. Dominator and loop information is stale after a
// deletion until the graph is rebuilt; callers must serialize deletions
// against readers.
func (g *ControlFlowGraph) DeleteBlock(b Block) {
	bb := b.(*BasicBlock)
	if bb.deleted {
		return
	}
	if len(bb.succs) != 1 {
		panic(fmt.Sprintf("cfg: cannot delete %v with %d successors", b, len(bb.succs)))
	}
	succ := bb.succs[0].(*BasicBlock)

	for _, p := range bb.preds {
		pb := p.(*BasicBlock)
		for i, s := range pb.succs {
			if s == b {
				pb.succs[i] = succ
			}
		}
		succ.preds = append(succ.preds, pb)
	}
	// Drop b from the successor's predecessor list.
	kept := succ.preds[:0]
	for _, p := range succ.preds {
		if p != b {
			kept = append(kept, p)
		}
	}
	succ.preds = kept

	bb.preds = nil
	bb.succs = nil
	bb.probs = EmptyProbabilities
	bb.deleted = true
}

type blockAndIndex struct {
	b     *mir.Block
	index int // number of successor edges of b already explored
}

// reversePostorder returns f's blocks reachable from the entry, using an
// iterative DFS with an explicit stack. In the returned order every
// forward-edge parent precedes its children.
func reversePostorder(f *mir.Func) []*mir.Block {
	seen := make([]bool, len(f.Blocks))
	post := make([]*mir.Block, 0, len(f.Blocks))

	entry := f.Block(f.Entry)
	s := make([]blockAndIndex, 0, 32)
	s = append(s, blockAndIndex{b: entry})
	seen[entry.ID] = true
	for len(s) > 0 {
		tos := len(s) - 1
		x := s[tos]
		succs := x.b.Term.Successors()
		if i := x.index; i < len(succs) {
			s[tos].index++
			bb := f.Block(succs[i])
			if !seen[bb.ID] {
				seen[bb.ID] = true
				s = append(s, blockAndIndex{b: bb})
			}
			continue
		}
		s = s[:tos]
		post = append(post, x.b)
	}

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}
