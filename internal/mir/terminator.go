package mir

// TermKind enumerates terminator kinds.
type TermKind uint8

const (
	TermNone TermKind = iota
	TermReturn
	TermGoto
	TermIf
	TermSwitch
	TermUnreachable
)

// Terminator closes a block. Exactly one variant is populated, selected by
// Kind.
type Terminator struct {
	Kind TermKind

	Goto   GotoTerm
	If     IfTerm
	Switch SwitchTerm
}

type GotoTerm struct {
	Target BlockID
}

type IfTerm struct {
	Then BlockID
	Else BlockID
	// ThenProbability is the profiled probability of taking the Then
	// edge, in (0,1). Zero means no profile.
	ThenProbability float64
}

type SwitchTerm struct {
	Targets []BlockID
	// Probabilities is empty (no profile) or parallel to Targets.
	Probabilities []float64
}

// Successors returns the terminator's target block ids in edge order.
func (t *Terminator) Successors() []BlockID {
	switch t.Kind {
	case TermGoto:
		return []BlockID{t.Goto.Target}
	case TermIf:
		return []BlockID{t.If.Then, t.If.Else}
	case TermSwitch:
		return t.Switch.Targets
	default:
		return nil
	}
}

// SuccessorProbabilities returns the per-edge probabilities, or nil when
// the terminator carries no profile.
func (t *Terminator) SuccessorProbabilities() []float64 {
	switch t.Kind {
	case TermGoto:
		return []float64{1.0}
	case TermIf:
		if t.If.ThenProbability == 0 {
			return nil
		}
		return []float64{t.If.ThenProbability, 1 - t.If.ThenProbability}
	case TermSwitch:
		if len(t.Switch.Probabilities) == 0 {
			return nil
		}
		return t.Switch.Probabilities
	default:
		return nil
	}
}
