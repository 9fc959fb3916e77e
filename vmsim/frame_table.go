package vmsim

// Frame is a resident slot holding one page's metadata
type Frame struct {
	Page       uint64
	Dirty      bool // Written since it became resident
	Referenced bool // Accessed since the last sweep
}

// Class returns the NRU class of the frame (0-3)
// 0: not referenced, clean
// 1: not referenced, dirty
// 2: referenced, clean
// 3: referenced, dirty
func (f *Frame) Class() int {
	class := 0
	if f.Referenced {
		class += 2
	}
	if f.Dirty {
		class++
	}
	return class
}

// FrameTable is the bounded set of resident frames for the simulated process.
// Frames live in an arena indexed 0..Cap()-1; slots are filled in order and
// never move, so policies can keep ring and queue positions as plain indexes.
type FrameTable struct {
	frames   []Frame
	capacity int
	resident map[uint64]int // page number -> slot
}

// NewFrameTable creates an empty frame table holding up to capacity frames
func NewFrameTable(capacity int) *FrameTable {
	if capacity <= 0 {
		capacity = 1
	}

	return &FrameTable{
		frames:   make([]Frame, 0, capacity),
		capacity: capacity,
		resident: make(map[uint64]int, capacity),
	}
}

// Lookup returns the slot holding page, if resident
func (ft *FrameTable) Lookup(page uint64) (int, bool) {
	slot, ok := ft.resident[page]
	return slot, ok
}

// Touch records a hit on the frame in slot
func (ft *FrameTable) Touch(slot int, access Access) {
	f := &ft.frames[slot]
	f.Referenced = true
	if access == Write {
		f.Dirty = true
	}
}

// Insert loads the referenced page into a new slot and returns it.
// Panics if the table is already full.
func (ft *FrameTable) Insert(ref Reference) int {
	if ft.Full() {
		panic("vmsim: insert into full frame table")
	}

	slot := len(ft.frames)
	ft.frames = append(ft.frames, Frame{
		Page:       ref.Page(),
		Dirty:      ref.IsWrite(),
		Referenced: true,
	})
	ft.resident[ref.Page()] = slot
	return slot
}

// Replace overwrites the frame in slot with the referenced page and returns
// the evicted frame. The slot keeps its position.
func (ft *FrameTable) Replace(slot int, ref Reference) Frame {
	if slot < 0 || slot >= len(ft.frames) {
		panic("vmsim: replace of unoccupied slot")
	}

	victim := ft.frames[slot]
	delete(ft.resident, victim.Page)

	ft.frames[slot] = Frame{
		Page:       ref.Page(),
		Dirty:      ref.IsWrite(),
		Referenced: true,
	}
	ft.resident[ref.Page()] = slot
	return victim
}

// ClearReferenced resets the referenced flag of every resident frame
func (ft *FrameTable) ClearReferenced() {
	for i := range ft.frames {
		ft.frames[i].Referenced = false
	}
}

// Frame returns a pointer to the frame in slot
func (ft *FrameTable) Frame(slot int) *Frame {
	return &ft.frames[slot]
}

// Frames returns a copy of the resident frames in slot order
func (ft *FrameTable) Frames() []Frame {
	out := make([]Frame, len(ft.frames))
	copy(out, ft.frames)
	return out
}

// Len returns the number of resident frames
func (ft *FrameTable) Len() int {
	return len(ft.frames)
}

// Cap returns the configured frame count
func (ft *FrameTable) Cap() int {
	return ft.capacity
}

// Full reports whether every frame is occupied
func (ft *FrameTable) Full() bool {
	return len(ft.frames) >= ft.capacity
}
