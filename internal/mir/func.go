// Package mir is the mid-level IR the control-flow analysis consumes: a
// function is a flat slice of basic blocks, each a run of instructions
// closed by exactly one terminator. Block ids are dense — a block's id is
// its index in Func.Blocks.
package mir

// FuncID identifies a function within a module.
type FuncID uint32

// BlockID identifies a basic block within a function.
type BlockID int32

// LocalID identifies a local slot within a function.
type LocalID int32

// Local is a named local slot.
type Local struct {
	Name string
}

// Func is one function's worth of IR.
type Func struct {
	ID     FuncID
	Name   string
	Locals []Local
	Blocks []Block
	Entry  BlockID
}

// NumBlocks returns the number of blocks, reachable or not.
func (f *Func) NumBlocks() int { return len(f.Blocks) }

// Block resolves a block id, or nil when the id is out of range.
func (f *Func) Block(id BlockID) *Block {
	if id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id]
}
