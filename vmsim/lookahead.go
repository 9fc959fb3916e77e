package vmsim

// occurrences is the ordered list of trace positions for one page with a
// cursor past the consumed ones
type occurrences struct {
	positions []int
	next      int
}

// LookaheadIndex maps each page to the trace positions at which it is
// referenced. Built once over the whole trace before simulation starts.
type LookaheadIndex struct {
	pages map[uint64]*occurrences
	size  int
}

// BuildLookahead scans the trace and records every occurrence of every page.
// Occurrences are keyed by slice index, not Reference.Position.
func BuildLookahead(trace []Reference) *LookaheadIndex {
	idx := &LookaheadIndex{
		pages: make(map[uint64]*occurrences),
		size:  len(trace),
	}

	for i, ref := range trace {
		occ, ok := idx.pages[ref.Page()]
		if !ok {
			occ = &occurrences{}
			idx.pages[ref.Page()] = occ
		}
		occ.positions = append(occ.positions, i)
	}

	return idx
}

// Consume drops every occurrence of page at or before pos
func (idx *LookaheadIndex) Consume(page uint64, pos int) {
	occ, ok := idx.pages[page]
	if !ok {
		return
	}
	for occ.next < len(occ.positions) && occ.positions[occ.next] <= pos {
		occ.next++
	}
}

// Next returns the next unconsumed position of page, or false if the page is
// never referenced again
func (idx *LookaheadIndex) Next(page uint64) (int, bool) {
	occ, ok := idx.pages[page]
	if !ok || occ.next >= len(occ.positions) {
		return 0, false
	}
	return occ.positions[occ.next], true
}

// Remaining returns how many unconsumed occurrences page has
func (idx *LookaheadIndex) Remaining(page uint64) int {
	occ, ok := idx.pages[page]
	if !ok {
		return 0
	}
	return len(occ.positions) - occ.next
}

// Pages returns the number of distinct pages in the trace
func (idx *LookaheadIndex) Pages() int {
	return len(idx.pages)
}

// TraceLen returns the number of references the index was built from
func (idx *LookaheadIndex) TraceLen() int {
	return idx.size
}
