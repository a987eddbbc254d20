package mir

// InstrKind enumerates instruction kinds.
type InstrKind uint8

const (
	// InstrNop does nothing; a placeholder for padding fixtures.
	InstrNop InstrKind = iota
	// InstrAssign writes a value into Dst.
	InstrAssign
	// InstrCall invokes Callee with Args, result in Dst.
	InstrCall
)

// Instr is one non-terminating instruction. The analysis layer never
// interprets instructions; only their count and position matter for
// block-level metadata.
type Instr struct {
	Kind   InstrKind
	Dst    LocalID
	Args   []LocalID
	Callee string
}
