// Package cfgfile loads control-flow-graph fixture files: a TOML
// description of a function's blocks and edges, lowered to a mir.Func for
// analysis. The format exists for the CLI and for test corpora; compilers
// embedding the analysis construct mir.Func directly.
package cfgfile

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"cinder/internal/mir"
)

type fileConfig struct {
	Name   string        `toml:"name"`
	Entry  int64         `toml:"entry"`
	Blocks []blockConfig `toml:"block"`
}

type blockConfig struct {
	ID             int64     `toml:"id"`
	Instrs         int64     `toml:"instrs"`
	Succs          []int64   `toml:"succs"`
	Probs          []float64 `toml:"probs"`
	ExceptionEntry bool      `toml:"exception_entry"`
}

// Load reads a fixture file and lowers it to a validated mir.Func. The
// successor count picks the terminator: none is a return, one a goto, two
// an if, more a switch.
func Load(path string) (*mir.Func, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%q: unknown key %q", path, undecoded[0].String())
	}
	f, err := lower(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return f, nil
}

func lower(cfg *fileConfig) (*mir.Func, error) {
	f := &mir.Func{
		Name:   cfg.Name,
		Entry:  mir.BlockID(cfg.Entry),
		Blocks: make([]mir.Block, len(cfg.Blocks)),
	}
	for i, bc := range cfg.Blocks {
		if bc.ID != int64(i) {
			return nil, fmt.Errorf("block at index %d has id %d; ids must be dense and ordered", i, bc.ID)
		}
		b := &f.Blocks[i]
		b.ID = mir.BlockID(bc.ID)
		if bc.ExceptionEntry {
			b.Flags |= mir.BlockFlagExcEntry
		}
		for j := int64(0); j < bc.Instrs; j++ {
			b.Instrs = append(b.Instrs, mir.Instr{Kind: mir.InstrNop})
		}
		b.Term = terminatorFor(bc)
	}
	if err := mir.Validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

func terminatorFor(bc blockConfig) mir.Terminator {
	targets := make([]mir.BlockID, len(bc.Succs))
	for i, s := range bc.Succs {
		targets[i] = mir.BlockID(s)
	}
	switch len(targets) {
	case 0:
		return mir.Terminator{Kind: mir.TermReturn}
	case 1:
		return mir.Terminator{Kind: mir.TermGoto, Goto: mir.GotoTerm{Target: targets[0]}}
	case 2:
		t := mir.Terminator{Kind: mir.TermIf, If: mir.IfTerm{Then: targets[0], Else: targets[1]}}
		if len(bc.Probs) == 2 {
			t.If.ThenProbability = bc.Probs[0]
		}
		return t
	default:
		return mir.Terminator{
			Kind:   mir.TermSwitch,
			Switch: mir.SwitchTerm{Targets: targets, Probabilities: bc.Probs},
		}
	}
}
