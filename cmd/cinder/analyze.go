package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinder/internal/driver"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] dir",
	Short: "Analyze every CFG fixture in a directory",
	Long:  `Analyze walks a directory of fixture files, builds each control-flow graph in parallel and reports a per-function summary; unchanged files are served from the disk cache`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = all CPUs)")
	analyzeCmd.Flags().Bool("no-cache", false, "disable the disk cache")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	var cache *driver.DiskCache
	if !noCache {
		cache, err = driver.OpenDiskCache("cinder")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	results, err := driver.AnalyzeDir(cmd.Context(), args[0], jobs, cache)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	for _, res := range results {
		s := res.Summary
		switch {
		case s.BailedOut:
			fmt.Printf("%-40s bailout: too large for the block id space\n", res.Path)
		case res.Cached:
			fmt.Printf("%-40s blocks=%-5d loops=%-3d maxdepth=%-2d (cached)\n",
				res.Path, s.BlockCount, s.LoopCount, s.MaxLoopDepth)
		default:
			fmt.Printf("%-40s blocks=%-5d loops=%-3d maxdepth=%-2d\n",
				res.Path, s.BlockCount, s.LoopCount, s.MaxLoopDepth)
			if timings && res.Timing != nil {
				fmt.Fprint(os.Stderr, res.Timing.Summary())
			}
		}
	}
	return nil
}
