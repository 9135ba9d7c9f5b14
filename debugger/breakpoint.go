package debugger

import (
	"iter"
	"slices"

	"github.com/ezrec/smplvm/internal"
)

// Breakpoints is a sorted set of instruction addresses.
type Breakpoints []uint16

// NewBreakpoints collects addresses from several sources into a sorted set.
func NewBreakpoints(seqs ...iter.Seq[uint16]) (bps Breakpoints) {
	bps = slices.Compact(internal.SortedConcat(seqs...))
	return
}

// Contains returns true if addr is a breakpoint.
func (bps Breakpoints) Contains(addr uint16) bool {
	_, found := slices.BinarySearch(bps, addr)
	return found
}
