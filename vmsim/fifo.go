package vmsim

import (
	"container/list"
)

// FIFOPolicy evicts the frame that has been resident the longest. Hits never
// reorder the queue.
type FIFOPolicy struct {
	table *FrameTable
	queue *list.List // Slots, oldest at the front
}

// NewFIFOPolicy creates a FIFO policy with the given frame count
func NewFIFOPolicy(frames int) *FIFOPolicy {
	return &FIFOPolicy{
		table: NewFrameTable(frames),
		queue: list.New(),
	}
}

func (f *FIFOPolicy) Algorithm() Algorithm { return FIFO }

func (f *FIFOPolicy) Table() *FrameTable { return f.table }

// Order returns the resident page numbers from oldest to newest
func (f *FIFOPolicy) Order() []uint64 {
	pages := make([]uint64, 0, f.queue.Len())
	for e := f.queue.Front(); e != nil; e = e.Next() {
		pages = append(pages, f.table.Frame(e.Value.(int)).Page)
	}
	return pages
}

// Access applies one reference
func (f *FIFOPolicy) Access(ref Reference) Decision {
	if d, ok := hit(f.table, ref); ok {
		return d
	}

	if !f.table.Full() {
		slot := f.table.Insert(ref)
		f.queue.PushBack(slot)
		return Decision{Ref: ref, Kind: FaultNoEviction}
	}

	// Oldest frame goes regardless of its referenced bit; its slot and list
	// element are reused as the newest entry
	oldest := f.queue.Front()
	victim := f.table.Replace(oldest.Value.(int), ref)
	f.queue.MoveToBack(oldest)

	return evicted(ref, victim, 1)
}
