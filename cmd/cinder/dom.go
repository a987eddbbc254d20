package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinder/internal/driver"
	"cinder/internal/ui"
)

var domCmd = &cobra.Command{
	Use:   "dom [flags] graph.toml",
	Short: "Print the dominator tree of a CFG fixture",
	Long:  `Dom builds the control-flow graph described by a fixture file and prints its dominator tree with loop and frequency metadata`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDom,
}

func runDom(cmd *cobra.Command, args []string) error {
	res, err := driver.Analyze(args[0])
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if res.Graph == nil {
		return fmt.Errorf("%s: graph too large for the block id space; skipped", args[0])
	}

	if err := ui.RenderDominatorTree(os.Stdout, res.Graph, useColor(cmd, os.Stdout)); err != nil {
		return err
	}

	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		fmt.Fprint(os.Stderr, res.Timing.Summary())
	}
	return nil
}
