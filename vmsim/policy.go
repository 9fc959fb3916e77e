package vmsim

import (
	"fmt"
	"strings"
)

// Algorithm selects one of the page replacement policies
type Algorithm uint8

const (
	Optimal Algorithm = iota
	Clock
	FIFO
	NRU
)

// Algorithms lists every policy in report order
var Algorithms = []Algorithm{Optimal, Clock, FIFO, NRU}

// String returns the command-line name of the algorithm
func (a Algorithm) String() string {
	switch a {
	case Optimal:
		return "opt"
	case Clock:
		return "clock"
	case FIFO:
		return "fifo"
	case NRU:
		return "nru"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm parses an algorithm name, ignoring case
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "opt":
		return Optimal, nil
	case "clock":
		return Clock, nil
	case "fifo":
		return FIFO, nil
	case "nru":
		return NRU, nil
	default:
		return 0, ErrUnknownAlgorithm("ParseAlgorithm", name)
	}
}

// Policy is a page replacement policy driving one frame table.
// Access must be called with references in trace order.
type Policy interface {
	// Algorithm identifies the policy
	Algorithm() Algorithm

	// Access applies one reference and reports what happened
	Access(ref Reference) Decision

	// Table exposes the frame table (read-only use)
	Table() *FrameTable
}

// NewPolicy creates the policy selected by algorithm. The trace is only read
// by Optimal, which needs the whole reference string up front.
func NewPolicy(algorithm Algorithm, frames, refresh int, trace []Reference) (Policy, error) {
	if frames <= 0 {
		return nil, ErrInvalidFrames("NewPolicy", frames)
	}

	switch algorithm {
	case Optimal:
		return NewOptimalPolicy(frames, BuildLookahead(trace)), nil
	case Clock:
		return NewClockPolicy(frames), nil
	case FIFO:
		return NewFIFOPolicy(frames), nil
	case NRU:
		if refresh <= 0 {
			return nil, ErrInvalidRefresh("NewPolicy", refresh)
		}
		return NewNRUPolicy(frames, refresh), nil
	default:
		return nil, ErrUnknownAlgorithm("NewPolicy", algorithm.String())
	}
}

// hit is the shared hit path of every policy
func hit(ft *FrameTable, ref Reference) (Decision, bool) {
	slot, ok := ft.Lookup(ref.Page())
	if !ok {
		return Decision{}, false
	}
	ft.Touch(slot, ref.Access)
	return Decision{Ref: ref, Kind: Hit}, true
}

// evicted builds the decision for a fault that replaced victim
func evicted(ref Reference, victim Frame, scanned int) Decision {
	return Decision{
		Ref:         ref,
		Kind:        FaultEviction,
		Victim:      victim.Page,
		VictimDirty: victim.Dirty,
		Scanned:     scanned,
	}
}
