// Package ui renders analysis results for terminals.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cinder/internal/cfg"
)

var (
	blockStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderDominatorTree writes a styled dominator tree for g. With color
// disabled the output degrades to the plain branch characters.
func RenderDominatorTree(w io.Writer, g cfg.Graph, useColor bool) error {
	root := g.StartBlock()
	if root == nil {
		return nil
	}
	if !useColor {
		return cfg.DumpDominatorTree(w, g)
	}
	return renderSubtree(w, root, "", true)
}

func renderSubtree(w io.Writer, b cfg.Block, prefix string, last bool) error {
	branch := "├─ "
	childPrefix := prefix + "│  "
	if last {
		branch = "└─ "
		childPrefix = prefix + "   "
	}
	if b.Dominator() == nil {
		branch = ""
		childPrefix = ""
	}

	style := blockStyle
	if b.IsLoopHeader() {
		style = headerStyle
	}
	line := prefix + branchStyle.Render(branch) + style.Render(fmt.Sprintf("B%d", b.ID())) +
		metaStyle.Render(describe(b))
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return err
	}

	children := cfg.DominatedChildren(b)
	for i, c := range children {
		if err := renderSubtree(w, c, childPrefix, i == len(children)-1); err != nil {
			return err
		}
	}
	return nil
}

func describe(b cfg.Block) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  depth=%d num=[%d,%d]", b.DominatorDepth(), b.DominatorNumber(), b.MaxChildDominatorNumber())
	if l := b.Loop(); l != nil {
		fmt.Fprintf(&sb, " loop=L%d(d%d)", l.Index(), b.LoopDepth())
		if b.IsLoopHeader() {
			sb.WriteString(" header")
		}
		if b.IsLoopEnd() {
			sb.WriteString(" end")
		}
	}
	fmt.Fprintf(&sb, " freq=%.2f", b.RelativeFrequency())
	return sb.String()
}
