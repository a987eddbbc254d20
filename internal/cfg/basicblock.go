package cfg

import "cinder/internal/mir"

// BasicBlock is the concrete block kind produced for mid-level IR
// functions. It stores the edge lists and probabilities resolved at graph
// construction, plus the loop and scheduling metadata later passes fill
// in.
type BasicBlock struct {
	BlockBase

	owner *ControlFlowGraph
	src   *mir.Block

	preds []Block
	succs []Block
	// probs is either empty (no profile), or exactly len(succs) long.
	probs []float64

	loop       *Loop
	loopHeader bool
	loopEnd    bool

	linearScanNumber int
	align            bool
	excEntry         bool
	deleted          bool
	postdominator    BlockID
	relativeFreq     float64
}

func newBasicBlock(g *ControlFlowGraph) *BasicBlock {
	return &BasicBlock{
		BlockBase:        NewBlockBase(g),
		owner:            g,
		linearScanNumber: -1,
		postdominator:    InvalidBlockID,
	}
}

// Source returns the IR block this block was built from.
func (b *BasicBlock) Source() *mir.Block { return b.src }

func (b *BasicBlock) PredecessorCount() int { return len(b.preds) }
func (b *BasicBlock) SuccessorCount() int   { return len(b.succs) }

// PredecessorAt returns predecessor i. The index must be in bounds.
func (b *BasicBlock) PredecessorAt(i int) Block { return b.preds[i] }

// SuccessorAt returns successor i. The index must be in bounds.
func (b *BasicBlock) SuccessorAt(i int) Block { return b.succs[i] }

// SuccessorProbabilityAt returns the branch-taken probability of edge i,
// in [0,1]. Blocks without a profile report a uniform split.
func (b *BasicBlock) SuccessorProbabilityAt(i int) float64 {
	if len(b.probs) == 0 {
		if len(b.succs) == 0 {
			return 0
		}
		return 1.0 / float64(len(b.succs))
	}
	return b.probs[i]
}

func (b *BasicBlock) Loop() *Loop { return b.loop }

// LoopDepth returns the nesting depth of the block's innermost loop, or 0
// for a block outside any loop.
func (b *BasicBlock) LoopDepth() int {
	if b.loop == nil {
		return 0
	}
	return b.loop.depth
}

func (b *BasicBlock) IsLoopHeader() bool { return b.loopHeader }
func (b *BasicBlock) IsLoopEnd() bool    { return b.loopEnd }

// NumBackedges returns the number of backedges of the block's loop if the
// block is a loop header, -1 otherwise.
func (b *BasicBlock) NumBackedges() int {
	if !b.loopHeader || b.loop == nil {
		return -1
	}
	return b.loop.backedges
}

func (b *BasicBlock) LinearScanNumber() int     { return b.linearScanNumber }
func (b *BasicBlock) SetLinearScanNumber(n int) { b.linearScanNumber = n }

func (b *BasicBlock) IsAligned() bool     { return b.align }
func (b *BasicBlock) SetAlign(align bool) { b.align = align }

func (b *BasicBlock) IsExceptionEntry() bool { return b.excEntry }

// IsModifiable reports whether the block is still part of the graph.
func (b *BasicBlock) IsModifiable() bool { return !b.deleted }

// Postdominator returns the immediate postdominator, or nil for blocks
// that do not reach the exit (or for the exit itself).
func (b *BasicBlock) Postdominator() Block { return b.resolve(b.postdominator) }

// RelativeFrequency returns the estimated execution frequency of the
// block relative to the start block (start = 1.0).
func (b *BasicBlock) RelativeFrequency() float64 { return b.relativeFreq }

// Delete removes the block from the graph's edge structure. See
// ControlFlowGraph.DeleteBlock.
func (b *BasicBlock) Delete() { b.owner.DeleteBlock(b) }
