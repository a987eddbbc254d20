package mir

import (
	"fmt"
	"io"
)

// DumpFunc writes a human-readable representation of a function.
func DumpFunc(w io.Writer, f *Func) error {
	if w == nil || f == nil {
		return nil
	}
	fmt.Fprintf(w, "fn %s: blocks=%d entry=bb%d\n", f.Name, len(f.Blocks), f.Entry)
	for i := range f.Blocks {
		bb := &f.Blocks[i]
		fmt.Fprintf(w, "  bb%d:\n", bb.ID)
		for j := range bb.Instrs {
			fmt.Fprintf(w, "    %s\n", formatInstr(&bb.Instrs[j]))
		}
		fmt.Fprintf(w, "    %s\n", formatTerm(&bb.Term))
	}
	return nil
}

func formatInstr(ins *Instr) string {
	switch ins.Kind {
	case InstrAssign:
		return fmt.Sprintf("L%d = assign", ins.Dst)
	case InstrCall:
		return fmt.Sprintf("L%d = call %s/%d", ins.Dst, ins.Callee, len(ins.Args))
	default:
		return "nop"
	}
}

func formatTerm(t *Terminator) string {
	switch t.Kind {
	case TermReturn:
		return "return"
	case TermGoto:
		return fmt.Sprintf("goto bb%d", t.Goto.Target)
	case TermIf:
		if t.If.ThenProbability != 0 {
			return fmt.Sprintf("if -> bb%d(%.2f), bb%d", t.If.Then, t.If.ThenProbability, t.If.Else)
		}
		return fmt.Sprintf("if -> bb%d, bb%d", t.If.Then, t.If.Else)
	case TermSwitch:
		out := "switch ->"
		for _, target := range t.Switch.Targets {
			out += fmt.Sprintf(" bb%d", target)
		}
		return out
	case TermUnreachable:
		return "unreachable"
	default:
		return "<none>"
	}
}
