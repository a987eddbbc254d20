package cfg

import (
	"fmt"
	"io"
	"slices"
)

// DominatedChildren collects b's dominator-tree children by walking the
// intrusive first-child/next-sibling links, returned in id order.
func DominatedChildren(b Block) []Block {
	var out []Block
	for c := b.FirstDominated(); c != nil; c = c.DominatedSibling() {
		out = append(out, c)
	}
	slices.SortFunc(out, CompareByID)
	return out
}

// DumpDominatorTree writes the dominator tree rooted at the start block,
// one line per block with its analysis metadata.
func DumpDominatorTree(w io.Writer, g Graph) error {
	root := g.StartBlock()
	if root == nil {
		return nil
	}
	return dumpDomSubtree(w, root, 0)
}

func dumpDomSubtree(w io.Writer, b Block, indent int) error {
	for i := 0; i < indent; i++ {
		if _, err := io.WriteString(w, "  "); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "B%d depth=%d num=[%d,%d]%s freq=%.2f\n",
		b.ID(), b.DominatorDepth(), b.DominatorNumber(), b.MaxChildDominatorNumber(),
		loopTag(b), b.RelativeFrequency()); err != nil {
		return err
	}
	for _, c := range DominatedChildren(b) {
		if err := dumpDomSubtree(w, c, indent+1); err != nil {
			return err
		}
	}
	return nil
}

func loopTag(b Block) string {
	if b.Loop() == nil {
		return ""
	}
	tag := fmt.Sprintf(" loop=L%d(d%d)", b.Loop().Index(), b.LoopDepth())
	if b.IsLoopHeader() {
		tag += " header"
	}
	if b.IsLoopEnd() {
		tag += " end"
	}
	return tag
}

// DumpDot writes the graph in Graphviz dot form: solid edges are control
// flow (annotated with probabilities where profiled), dashed edges are
// the dominator tree.
func DumpDot(w io.Writer, g Graph, name string) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n", name); err != nil {
		return err
	}
	for _, b := range g.Blocks() {
		label := fmt.Sprintf("B%d", b.ID())
		if b.IsLoopHeader() {
			label += fmt.Sprintf("\\nloop header d%d", b.LoopDepth())
		}
		if _, err := fmt.Fprintf(w, "  b%d [shape=box,label=\"%s\"];\n", b.ID(), label); err != nil {
			return err
		}
		for i := 0; i < b.SuccessorCount(); i++ {
			succ := b.SuccessorAt(i)
			if _, err := fmt.Fprintf(w, "  b%d -> b%d [label=\"%.2f\"];\n",
				b.ID(), succ.ID(), b.SuccessorProbabilityAt(i)); err != nil {
				return err
			}
		}
		if d := b.Dominator(); d != nil {
			if _, err := fmt.Fprintf(w, "  b%d -> b%d [style=dashed,color=gray];\n", d.ID(), b.ID()); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
