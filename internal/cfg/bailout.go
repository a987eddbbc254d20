package cfg

import "errors"

// BailoutError reports that a graph exceeded the fixed-width block id
// space. It is a retryable condition, not a crash: nothing at this layer
// catches it, and the compilation pipeline driving the analysis is
// expected to abandon the current strategy and recompile the unit without
// optimization.
type BailoutError struct {
	Reason string
}

func (e *BailoutError) Error() string { return e.Reason }

// IsBailout reports whether err is (or wraps) a capacity bailout.
func IsBailout(err error) bool {
	var be *BailoutError
	return errors.As(err, &be)
}
