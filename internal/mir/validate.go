package mir

import (
	"errors"
	"fmt"
)

// Validate checks Func structural invariants. Returns an error joining
// every violation found; a nil func is rejected outright.
func Validate(f *Func) error {
	if f == nil {
		return errors.New("nil function")
	}

	var errs []error

	if f.Block(f.Entry) == nil {
		errs = append(errs, fmt.Errorf("entry bb%d does not exist", f.Entry))
	}

	if err := validateBlockIDs(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateBlocksTerminated(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateBlockTargets(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateProbabilities(f); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateBlockIDs checks that ids are dense: id == slice index.
func validateBlockIDs(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		if int(f.Blocks[i].ID) != i {
			errs = append(errs, fmt.Errorf("block at index %d has id bb%d", i, f.Blocks[i].ID))
		}
	}
	return errors.Join(errs...)
}

// validateBlocksTerminated checks that every block ends with a terminator.
func validateBlocksTerminated(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", i))
		}
	}
	return errors.Join(errs...)
}

// validateBlockTargets checks that all terminator targets exist.
func validateBlockTargets(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		for _, t := range f.Blocks[i].Term.Successors() {
			if f.Block(t) == nil {
				errs = append(errs, fmt.Errorf("bb%d: target bb%d does not exist", i, t))
			}
		}
	}
	return errors.Join(errs...)
}

// validateProbabilities checks that a profiled terminator carries one
// probability per edge, each in [0,1].
func validateProbabilities(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		term := &f.Blocks[i].Term
		probs := term.SuccessorProbabilities()
		if probs == nil {
			continue
		}
		if len(probs) != len(term.Successors()) {
			errs = append(errs, fmt.Errorf("bb%d: %d probabilities for %d successors", i, len(probs), len(term.Successors())))
			continue
		}
		for j, p := range probs {
			if p < 0 || p > 1 {
				errs = append(errs, fmt.Errorf("bb%d: edge %d probability %v out of [0,1]", i, j, p))
			}
		}
	}
	return errors.Join(errs...)
}
