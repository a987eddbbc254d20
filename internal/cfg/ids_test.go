package cfg_test

import (
	"testing"

	"cinder/internal/cfg"
)

func TestToID_Bounds(t *testing.T) {
	cases := []struct {
		in   int
		want cfg.BlockID
		fail bool
	}{
		{in: 0, want: 0},
		{in: 1, want: 1},
		{in: int(cfg.LastValidBlockIndex), want: cfg.LastValidBlockIndex},
		{in: int(cfg.InvalidBlockID), fail: true},
		{in: -1, fail: true},
		{in: 1 << 20, fail: true},
	}
	for _, tc := range cases {
		got, err := cfg.ToID(tc.in)
		if tc.fail {
			if err == nil {
				t.Errorf("ToID(%d) = %d, expected bailout", tc.in, got)
			} else if !cfg.IsBailout(err) {
				t.Errorf("ToID(%d): error %v is not a bailout", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ToID(%d): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ToID(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

// Depth increments must succeed while the running sum stays inside the id
// space and fail on the first step past it, never earlier.
func TestAddDepth_OverflowExactlyAtLimit(t *testing.T) {
	depth := uint16(0)
	for i := 0; i < int(cfg.LastValidBlockIndex); i++ {
		next, err := cfg.AddDepth(depth, 1)
		if err != nil {
			t.Fatalf("AddDepth failed at step %d: %v", i, err)
		}
		if next != depth+1 {
			t.Fatalf("AddDepth(%d, 1) = %d", depth, next)
		}
		depth = next
	}
	if depth != uint16(cfg.LastValidBlockIndex) {
		t.Fatalf("depth = %d after %d increments", depth, cfg.LastValidBlockIndex)
	}
	if _, err := cfg.AddDepth(depth, 1); !cfg.IsBailout(err) {
		t.Fatalf("AddDepth past %d: got %v, want bailout", depth, err)
	}
}

func TestBlockID_IsValid(t *testing.T) {
	if cfg.InvalidBlockID.IsValid() {
		t.Error("sentinel reported valid")
	}
	if !cfg.LastValidBlockIndex.IsValid() {
		t.Error("last valid index reported invalid")
	}
	if !cfg.BlockID(0).IsValid() {
		t.Error("id 0 reported invalid")
	}
}
