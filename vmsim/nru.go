package vmsim

// NRUPolicy implements Not Recently Used replacement.
//
// All referenced bits are cleared once every refresh references. On a fault the
// frames are scanned circularly starting just after the resume slot: a class
// 0 frame is evicted on sight, otherwise, after a full lap, the first frame of
// the lowest class seen is evicted. The evicted slot becomes the new resume
// slot.
type NRUPolicy struct {
	table      *FrameTable
	refresh    int
	sinceSweep int // References since the last sweep
	resume     int
	sweeps     int
}

// NewNRUPolicy creates an NRU policy clearing referenced bits every refresh
// references
func NewNRUPolicy(frames, refresh int) *NRUPolicy {
	if refresh <= 0 {
		refresh = 1
	}
	return &NRUPolicy{
		table:   NewFrameTable(frames),
		refresh: refresh,
	}
}

func (n *NRUPolicy) Algorithm() Algorithm { return NRU }

func (n *NRUPolicy) Table() *FrameTable { return n.table }

// Refresh returns the sweep interval in references
func (n *NRUPolicy) Refresh() int { return n.refresh }

// Resume returns the slot the next scan starts after
func (n *NRUPolicy) Resume() int { return n.resume }

// Sweeps returns how many periodic sweeps have run
func (n *NRUPolicy) Sweeps() int { return n.sweeps }

// Access applies one reference
func (n *NRUPolicy) Access(ref Reference) Decision {
	if n.sinceSweep >= n.refresh {
		n.table.ClearReferenced()
		n.sinceSweep = 0
		n.sweeps++
	}
	n.sinceSweep++

	if d, ok := hit(n.table, ref); ok {
		return d
	}

	if !n.table.Full() {
		// Until the first eviction the scan resumes after the newest frame
		n.resume = n.table.Insert(ref)
		return Decision{Ref: ref, Kind: FaultNoEviction}
	}

	slot, scanned := n.victim()
	n.resume = slot
	return evicted(ref, n.table.Replace(slot, ref), scanned)
}

func (n *NRUPolicy) victim() (slot, scanned int) {
	size := n.table.Len()
	lowest := 4
	slot = -1

	i := n.resume
	for {
		i = (i + 1) % size
		scanned++

		class := n.table.Frame(i).Class()
		if class == 0 {
			return i, scanned
		}
		if class < lowest {
			lowest = class
			slot = i
		}

		if i == n.resume {
			return slot, scanned
		}
	}
}
