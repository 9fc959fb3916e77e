package vmsim

// OptimalPolicy evicts the resident page whose next use lies farthest in the
// future. It needs the complete trace and only serves as a lower bound for
// the online policies.
type OptimalPolicy struct {
	table     *FrameTable
	lookahead *LookaheadIndex
	now       int // Index of the next reference in the trace
}

// NewOptimalPolicy creates an optimal policy over a prebuilt lookahead index
func NewOptimalPolicy(frames int, lookahead *LookaheadIndex) *OptimalPolicy {
	return &OptimalPolicy{
		table:     NewFrameTable(frames),
		lookahead: lookahead,
	}
}

func (o *OptimalPolicy) Algorithm() Algorithm { return Optimal }

func (o *OptimalPolicy) Table() *FrameTable { return o.table }

// Access applies one reference. References must arrive in the order of the
// trace the lookahead index was built from.
func (o *OptimalPolicy) Access(ref Reference) Decision {
	// Every future lookup must see positions strictly after this one
	o.lookahead.Consume(ref.Page(), o.now)
	o.now++

	if d, ok := hit(o.table, ref); ok {
		return d
	}

	if !o.table.Full() {
		o.table.Insert(ref)
		return Decision{Ref: ref, Kind: FaultNoEviction}
	}

	slot, scanned := o.victim()
	return evicted(ref, o.table.Replace(slot, ref), scanned)
}

// victim walks the frames in slot order. A page that is never used again is
// taken on sight; otherwise the first page with the farthest next use wins.
func (o *OptimalPolicy) victim() (slot, scanned int) {
	farthest := -1
	slot = 0

	for i := 0; i < o.table.Len(); i++ {
		scanned++
		next, ok := o.lookahead.Next(o.table.Frame(i).Page)
		if !ok {
			return i, scanned
		}
		if next > farthest {
			farthest = next
			slot = i
		}
	}

	return slot, scanned
}
