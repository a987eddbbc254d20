package mir

// BlockFlags carries structural properties assigned at construction.
type BlockFlags uint8

const (
	// BlockFlagExcEntry marks the entry block of an exception handler.
	BlockFlagExcEntry BlockFlags = 1 << iota
)

// Block is one basic block: instructions plus a single terminator.
type Block struct {
	ID     BlockID
	Instrs []Instr
	Term   Terminator
	Flags  BlockFlags
}

// Terminated reports whether the block ends in a terminator.
func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}

// IsExceptionEntry reports whether the block starts an exception handler.
func (b *Block) IsExceptionEntry() bool { return b.Flags&BlockFlagExcEntry != 0 }
