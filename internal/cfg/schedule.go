package cfg

import "math"

// Frequency multiplier applied per loop nesting level when no profile
// says otherwise.
const loopFrequencyMultiplier = 10.0

// scheduleBlocks fills in the codegen-facing metadata: linear scan
// numbers in block order, alignment for loop headers, and an estimated
// relative execution frequency per block.
func (g *ControlFlowGraph) scheduleBlocks() {
	for i, b := range g.blocks {
		bb := b.(*BasicBlock)
		bb.linearScanNumber = i
		bb.align = bb.loopHeader
	}

	// Frequencies propagate along forward edges only (backedges would
	// cycle); loop nesting is folded back in with a fixed multiplier.
	// The entry runs once by definition.
	n := len(g.blocks)
	if n == 0 {
		return
	}
	freq := make([]float64, n)
	freq[0] = 1.0
	for i := 1; i < n; i++ {
		b := g.blocks[i]
		sum := 0.0
		for p := 0; p < b.PredecessorCount(); p++ {
			pred := b.PredecessorAt(p)
			if Dominates(b, pred) {
				continue // backedge
			}
			for s := 0; s < pred.SuccessorCount(); s++ {
				if pred.SuccessorAt(s) == b {
					sum += freq[pred.ID()] * pred.SuccessorProbabilityAt(s)
				}
			}
		}
		freq[i] = sum
	}
	for i, b := range g.blocks {
		bb := b.(*BasicBlock)
		bb.relativeFreq = freq[i] * math.Pow(loopFrequencyMultiplier, float64(bb.LoopDepth()))
	}
}
