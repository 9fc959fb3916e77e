package vmsim

import (
	"testing"
)

func TestPageNumber(t *testing.T) {
	tests := []struct {
		addr uint64
		page uint64
	}{
		{0x00000000, 0x0},
		{0x00000fff, 0x0},
		{0x00001000, 0x1},
		{0x0041f7a0, 0x41f},
		{0xffffffffffffffff, 0xfffffffffffff},
	}

	for _, tt := range tests {
		if got := PageNumber(tt.addr); got != tt.page {
			t.Errorf("PageNumber(%#x): expected %#x, got %#x", tt.addr, tt.page, got)
		}
	}

	ref := Reference{Address: 0x13f5e2c0}
	if ref.Page() != 0x13f5e {
		t.Errorf("Expected page 0x13f5e, got %#x", ref.Page())
	}
}

func TestParseAccess(t *testing.T) {
	tests := []struct {
		in      string
		want    Access
		wantErr bool
	}{
		{"R", Read, false},
		{"r", Read, false},
		{"W", Write, false},
		{"w", Write, false},
		{"X", Read, true},
		{"RW", Read, true},
		{"", Read, true},
	}

	for _, tt := range tests {
		got, err := ParseAccess(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAccess(%q): expected error %v, got %v", tt.in, tt.wantErr, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseAccess(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}

	if Write.String() != "W" || Read.String() != "R" {
		t.Error("Access String should return trace letters")
	}
}
