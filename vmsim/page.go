package vmsim

import (
	"fmt"
	"strings"
)

const (
	// OffsetBits is the number of low-order address bits inside a page
	OffsetBits = 12

	// PageSize is the simulated page size in bytes (4 KiB)
	PageSize = 1 << OffsetBits
)

// Access is the intent of a memory reference
type Access uint8

const (
	Read Access = iota
	Write
)

// String returns the trace letter for the access
func (a Access) String() string {
	if a == Write {
		return "W"
	}
	return "R"
}

// ParseAccess parses a trace intent token (R or W, any case)
func ParseAccess(s string) (Access, error) {
	switch strings.ToUpper(s) {
	case "R":
		return Read, nil
	case "W":
		return Write, nil
	default:
		return Read, fmt.Errorf("invalid access %q (must be R or W)", s)
	}
}

// Reference is one record of a memory trace
type Reference struct {
	Position int    // Zero-based position in the trace
	Address  uint64 // Raw virtual address
	Access   Access
}

// Page returns the page number the reference falls in
func (r Reference) Page() uint64 {
	return PageNumber(r.Address)
}

// IsWrite reports whether the reference dirties its page
func (r Reference) IsWrite() bool {
	return r.Access == Write
}

// PageNumber truncates the offset bits of an address
func PageNumber(addr uint64) uint64 {
	return addr >> OffsetBits
}
