package vmsim

// ClockPolicy implements the Clock (second chance) replacement algorithm.
// The frames form a ring in slot order with a single hand:
//
//   - Hit: set the referenced bit, the hand does not move
//   - Fault, table not full: the new frame joins the ring just behind the hand
//   - Fault, table full: sweep from the hand clearing referenced bits; the
//     first frame found with its bit already clear is replaced in place and
//     the hand moves past it
type ClockPolicy struct {
	table *FrameTable
	hand  int
}

// NewClockPolicy creates a clock policy with the given frame count
func NewClockPolicy(frames int) *ClockPolicy {
	return &ClockPolicy{
		table: NewFrameTable(frames),
	}
}

func (c *ClockPolicy) Algorithm() Algorithm { return Clock }

func (c *ClockPolicy) Table() *FrameTable { return c.table }

// Hand returns the slot the hand points at
func (c *ClockPolicy) Hand() int { return c.hand }

// Access applies one reference
func (c *ClockPolicy) Access(ref Reference) Decision {
	if d, ok := hit(c.table, ref); ok {
		return d
	}

	if !c.table.Full() {
		// The hand stays on slot 0 while filling, so appending puts the
		// new frame right before it in ring order
		c.table.Insert(ref)
		return Decision{Ref: ref, Kind: FaultNoEviction}
	}

	scanned := 0
	n := c.table.Len()
	for {
		scanned++
		f := c.table.Frame(c.hand)
		if !f.Referenced {
			break
		}
		// Second chance
		f.Referenced = false
		c.hand = (c.hand + 1) % n
	}

	victim := c.table.Replace(c.hand, ref)
	c.hand = (c.hand + 1) % n
	return evicted(ref, victim, scanned)
}
