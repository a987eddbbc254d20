// Package driver runs the control-flow analysis over fixture files:
// single files, or whole directories in parallel with optional disk
// caching of the per-function summaries.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"cinder/internal/cfg"
	"cinder/internal/cfgfile"
	"cinder/internal/mir"
	"cinder/internal/observ"
)

// Summary is the cacheable digest of one analyzed function.
type Summary struct {
	Schema uint16

	Name       string
	BlockCount uint32

	// Idom and Depth are indexed by block id; an Idom entry of 0xFFFF
	// means "no dominator" (the start block).
	Idom  []uint16
	Depth []uint16

	LoopCount    uint32
	MaxLoopDepth uint32

	// BailedOut records that the function exceeded the block id space
	// and was left unanalyzed.
	BailedOut bool
}

// Result is the outcome for one fixture file.
type Result struct {
	Path    string
	Func    *mir.Func
	Graph   *cfg.ControlFlowGraph
	Summary *Summary
	Cached  bool
	Timing  *observ.Timer
}

// Analyze loads one fixture file and builds its control-flow graph. A
// capacity bailout is not an error: the summary records it and the graph
// stays nil, mirroring a pipeline that falls back to unoptimized
// compilation for the unit.
func Analyze(path string) (*Result, error) {
	timer := observ.NewTimer()
	res := &Result{Path: path, Timing: timer}

	idx := timer.Begin("load")
	fn, err := cfgfile.Load(path)
	timer.End(idx, "")
	if err != nil {
		return nil, err
	}
	res.Func = fn

	idx = timer.Begin("build")
	g, err := cfg.NewControlFlowGraph(fn)
	timer.End(idx, fmt.Sprintf("%d blocks", fn.NumBlocks()))
	if err != nil {
		if cfg.IsBailout(err) {
			res.Summary = &Summary{Name: fn.Name, BailedOut: true}
			return res, nil
		}
		return nil, err
	}
	res.Graph = g
	res.Summary = Summarize(g)
	return res, nil
}

// Summarize extracts the cacheable facts from a built graph.
func Summarize(g *cfg.ControlFlowGraph) *Summary {
	count, err := safecast.Conv[uint32](g.NumBlocks())
	if err != nil {
		// The id space is 16-bit; a graph can never outgrow uint32.
		panic(err)
	}
	s := &Summary{
		Name:       g.Func().Name,
		BlockCount: count,
		Idom:       make([]uint16, g.NumBlocks()),
		Depth:      make([]uint16, g.NumBlocks()),
	}
	for i, b := range g.Blocks() {
		if d := b.Dominator(); d != nil {
			s.Idom[i] = uint16(d.ID())
		} else {
			s.Idom[i] = uint16(cfg.InvalidBlockID)
		}
		s.Depth[i] = uint16(b.DominatorDepth())
	}
	for _, l := range g.Loops() {
		s.LoopCount++
		if d := uint32(l.Depth()); d > s.MaxLoopDepth {
			s.MaxLoopDepth = d
		}
	}
	return s
}

// listFixtureFiles returns the sorted list of *.toml files under dir.
func listFixtureFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".toml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Sorted for a deterministic result order.
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every fixture file under dir with up to jobs
// workers (jobs <= 0 means GOMAXPROCS-many). When cache is non-nil,
// summaries of unchanged files are served from it without rebuilding the
// graph. Results come back in file order. Analysis of independent graphs
// shares no mutable state, so workers need no synchronization beyond the
// cache's own lock.
func AnalyzeDir(ctx context.Context, dir string, jobs int, cache *DiskCache) ([]Result, error) {
	files, err := listFixtureFiles(dir)
	if err != nil {
		return nil, err
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	for i, path := range files {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var key Digest
			if cache != nil {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %q: %w", path, err)
				}
				key = HashBytes(content)
				if s, ok, err := cache.Get(key); err != nil {
					return err
				} else if ok {
					results[i] = Result{Path: path, Summary: s, Cached: true}
					return nil
				}
			}

			res, err := Analyze(path)
			if err != nil {
				return err
			}
			results[i] = *res
			if cache != nil {
				if err := cache.Put(key, res.Summary); err != nil {
					return fmt.Errorf("failed to cache %q: %w", path, err)
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
