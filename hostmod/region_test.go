package hostmod

import (
	"errors"
	"math"
	"testing"
)

// regions answers queries from a sorted list of spans.
type regions []region

func (rs regions) query(addr uintptr) (region, error) {
	for _, r := range rs {
		if addr >= r.base && addr-r.base < r.size {
			return r, nil
		}
	}
	return region{}, errors.New("not mapped")
}

func TestCovered(t *testing.T) {
	mapped := regions{
		{base: 0x1000, size: 0x1000, ok: true},
		{base: 0x2000, size: 0x2000, ok: true},
		{base: 0x4000, size: 0x1000, ok: false},
		{base: math.MaxUint32 - 0xfff, size: 0x1000, ok: true},
	}
	tests := []struct {
		name       string
		addr, size uintptr
		want       bool
	}{
		{"inside one region", 0x1010, 4, true},
		{"across regions", 0x1ffe, 4, true},
		{"into rejected region", 0x3ffe, 4, false},
		{"unmapped", 0x8000, 4, false},
		{"empty", 0x1010, 0, false},
		{"wraps address space", math.MaxUint32 - 1, 4, false},
		{"top region", math.MaxUint32 - 3, 3, true},
		{"wraps from unmapped", ^uintptr(0) - 1, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := covered(tt.addr, tt.size, mapped.query); got != tt.want {
				t.Errorf("covered(0x%x, %d) = %v, want %v", tt.addr, tt.size, got, tt.want)
			}
		})
	}
}

func TestCoveredStalledQuery(t *testing.T) {
	calls := 0
	empty := func(addr uintptr) (region, error) {
		calls++
		return region{base: addr, size: 0, ok: true}, nil
	}
	if covered(0x1000, 4, empty) {
		t.Error("empty region accepted")
	}
	if calls != 1 {
		t.Errorf("%d queries, want 1", calls)
	}
}
