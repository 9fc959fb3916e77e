package vmsim

import "fmt"

// DecisionKind is the outcome of one reference
type DecisionKind uint8

const (
	Hit DecisionKind = iota
	FaultNoEviction
	FaultEviction
)

// String returns a short name for the kind
func (k DecisionKind) String() string {
	switch k {
	case Hit:
		return "hit"
	case FaultNoEviction:
		return "fault"
	case FaultEviction:
		return "evict"
	default:
		return fmt.Sprintf("DecisionKind(%d)", uint8(k))
	}
}

// Decision is what a policy did with one reference
type Decision struct {
	Ref         Reference
	Kind        DecisionKind
	Victim      uint64 // Evicted page number (FaultEviction only)
	VictimDirty bool   // Evicted page needs a write-back
	Scanned     int    // Frames inspected to pick the victim
}

// IsFault reports whether the reference missed the frame table
func (d Decision) IsFault() bool {
	return d.Kind != Hit
}

// Line renders the per-reference output line. The reference is shown as the
// raw address when rawAddress is set and as its page number otherwise.
func (d Decision) Line(rawAddress bool) string {
	shown := d.Ref.Page()
	if rawAddress {
		shown = d.Ref.Address
	}

	switch d.Kind {
	case Hit:
		return fmt.Sprintf("0x%08x - HIT", shown)
	case FaultNoEviction:
		return fmt.Sprintf("0x%08x - FAULT - no eviction", shown)
	default:
		state := "clean"
		if d.VictimDirty {
			state = "dirty"
		}
		return fmt.Sprintf("0x%08x - FAULT - evict %s (%#x)", shown, state, d.Victim)
	}
}
