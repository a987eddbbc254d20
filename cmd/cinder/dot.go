package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cinder/internal/cfg"
	"cinder/internal/driver"
)

var dotCmd = &cobra.Command{
	Use:   "dot [flags] graph.toml",
	Short: "Emit a CFG fixture as Graphviz dot",
	Long:  `Dot builds the control-flow graph described by a fixture file and writes it in Graphviz dot form, dominator-tree edges included`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDot,
}

func runDot(_ *cobra.Command, args []string) error {
	res, err := driver.Analyze(args[0])
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if res.Graph == nil {
		return fmt.Errorf("%s: graph too large for the block id space; skipped", args[0])
	}

	name := res.Func.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(args[0]), ".toml")
	}
	return cfg.DumpDot(os.Stdout, res.Graph, name)
}
