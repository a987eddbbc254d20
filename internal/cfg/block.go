// Package cfg provides the basic-block and dominator-tree representation
// used by the control-flow analysis stage.
//
// A basic block is the longest instruction run without an internal jump.
// Blocks are held by a ControlFlowGraph in reverse post order; a block's id
// is simultaneously its unique identity and its index into the graph's
// block array. The dominator tree is encoded intrusively on the blocks
// themselves (parent, first-child and next-sibling ids) together with a
// pre/post numbering pair that makes dominance queries O(1).
//
// Construction and mutation of one graph are single-threaded; once the
// dominator passes have run the structure is effectively immutable and may
// be queried from multiple goroutines.
package cfg

import "fmt"

// Successor probability vectors for the common shapes. A block with no
// profile carries the empty vector; an unconditional jump carries the
// singleton.
var (
	EmptyProbabilities     = []float64{}
	SingletonProbabilities = []float64{1.0}
)

// Block is the capability surface shared by every concrete block kind.
// The dominator linkage operations come from embedding BlockBase; edge
// storage, loop metadata and scheduling metadata are supplied by the
// concrete kind (a frontend IR block and a backend machine block can both
// satisfy this interface over the same base).
type Block interface {
	ID() BlockID
	SetID(BlockID)

	PredecessorCount() int
	SuccessorCount() int
	PredecessorAt(i int) Block
	SuccessorAt(i int) Block
	SuccessorProbabilityAt(i int) float64

	Dominator() Block
	SetDominator(parent Block) error
	DominatorAt(distance int) Block
	DominatorDepth() int
	FirstDominated() Block
	SetFirstDominated(Block) error
	DominatedSibling() Block
	SetDominatedSibling(Block) error
	DominatorNumber() int
	MaxChildDominatorNumber() int
	SetDominatorNumber(BlockID)
	SetMaxChildDominatorNumber(BlockID)

	Loop() *Loop
	LoopDepth() int
	IsLoopHeader() bool
	IsLoopEnd() bool
	NumBackedges() int

	LinearScanNumber() int
	SetLinearScanNumber(int)
	IsAligned() bool
	SetAlign(bool)
	IsExceptionEntry() bool
	IsModifiable() bool
	Postdominator() Block
	RelativeFrequency() float64
	Delete()
}

// BlockBase holds the identity and dominator linkage state shared by all
// block kinds. All tree pointers are stored as ids into the owning graph's
// block array rather than as references: the graph may contain tens of
// thousands of nodes, and the intrusive first-child/next-sibling encoding
// avoids a per-block child slice.
type BlockBase struct {
	graph Graph

	id               BlockID
	dominator        BlockID
	firstDominated   BlockID
	dominatedSibling BlockID
	domDepth         uint16
	domNumber        BlockID
	maxChildDomNum   BlockID
}

// NewBlockBase returns a base with every linkage field set to the invalid
// sentinel, back-referencing g for id resolution.
func NewBlockBase(g Graph) BlockBase {
	return BlockBase{
		graph:            g,
		id:               InvalidBlockID,
		dominator:        InvalidBlockID,
		firstDominated:   InvalidBlockID,
		dominatedSibling: InvalidBlockID,
		domNumber:        InvalidBlockID,
		maxChildDomNum:   InvalidBlockID,
	}
}

func (b *BlockBase) ID() BlockID      { return b.id }
func (b *BlockBase) SetID(id BlockID) { b.id = id }

// Graph returns the owning graph's block table holder.
func (b *BlockBase) Graph() Graph { return b.graph }

func (b *BlockBase) resolve(id BlockID) Block {
	if !id.IsValid() {
		return nil
	}
	return b.graph.Blocks()[id]
}

// Dominator returns the immediate dominator, or nil for the start block.
func (b *BlockBase) Dominator() Block { return b.resolve(b.dominator) }

// SetDominator records parent as the immediate dominator and derives this
// block's depth from the parent's. It does not touch the parent's child
// list; the tree-building pass links children separately via
// SetFirstDominated/SetDominatedSibling.
func (b *BlockBase) SetDominator(parent Block) error {
	id, err := ToID(int(parent.ID()))
	if err != nil {
		return err
	}
	depth, err := AddDepth(uint16(parent.DominatorDepth()), 1)
	if err != nil {
		return err
	}
	b.dominator = id
	b.domDepth = depth
	return nil
}

// DominatorAt walks distance steps up the dominator tree. Distance 0 is
// the block itself; walking past the root returns nil.
func (b *BlockBase) DominatorAt(distance int) Block {
	var cur Block = b.resolve(b.id)
	for i := 0; i < distance && cur != nil; i++ {
		cur = cur.Dominator()
	}
	return cur
}

// DominatorDepth is the block's level in the dominator tree; the start
// block has depth 0.
func (b *BlockBase) DominatorDepth() int { return int(b.domDepth) }

// FirstDominated returns the head of this block's child list in the
// dominator tree, or nil if the block dominates nothing.
func (b *BlockBase) FirstDominated() Block { return b.resolve(b.firstDominated) }

// SetFirstDominated makes block the head of the child list.
func (b *BlockBase) SetFirstDominated(block Block) error {
	id, err := ToID(int(block.ID()))
	if err != nil {
		return err
	}
	b.firstDominated = id
	return nil
}

// DominatedSibling returns the next block in the parent's child list, or
// nil at the end of the list.
func (b *BlockBase) DominatedSibling() Block { return b.resolve(b.dominatedSibling) }

// SetDominatedSibling links block after this one in the parent's child
// list. A nil block leaves the link unset (end of list).
func (b *BlockBase) SetDominatedSibling(block Block) error {
	if block == nil {
		return nil
	}
	id, err := ToID(int(block.ID()))
	if err != nil {
		return err
	}
	b.dominatedSibling = id
	return nil
}

// DominatorNumber returns the block's preorder number in the dominator
// tree, or -1 before the numbering pass has run.
func (b *BlockBase) DominatorNumber() int {
	if !b.domNumber.IsValid() {
		return -1
	}
	return int(b.domNumber)
}

// MaxChildDominatorNumber returns the largest dominator number among the
// block's dominator-tree descendants including itself, or -1 before
// numbering.
func (b *BlockBase) MaxChildDominatorNumber() int {
	if !b.maxChildDomNum.IsValid() {
		return -1
	}
	return int(b.maxChildDomNum)
}

func (b *BlockBase) SetDominatorNumber(n BlockID)         { b.domNumber = n }
func (b *BlockBase) SetMaxChildDominatorNumber(n BlockID) { b.maxChildDomNum = n }

func (b *BlockBase) String() string { return fmt.Sprintf("B%d", b.id) }
