package vmsim

import (
	"testing"
)

func TestFrameTableInsertAndLookup(t *testing.T) {
	ft := NewFrameTable(2)

	if ft.Len() != 0 || ft.Cap() != 2 || ft.Full() {
		t.Fatalf("Expected empty table of capacity 2, got len=%d cap=%d", ft.Len(), ft.Cap())
	}

	slot := ft.Insert(Reference{Address: 0x1000, Access: Write})
	if slot != 0 {
		t.Errorf("Expected first slot 0, got %d", slot)
	}

	got, ok := ft.Lookup(1)
	if !ok || got != 0 {
		t.Errorf("Expected page 1 in slot 0, got %d (resident=%v)", got, ok)
	}

	f := ft.Frame(0)
	if !f.Dirty || !f.Referenced {
		t.Errorf("New frame from a write should be dirty and referenced: %+v", *f)
	}

	ft.Insert(Reference{Address: 0x2000, Access: Read})
	if !ft.Full() {
		t.Error("Expected table to be full after two inserts")
	}

	if _, ok := ft.Lookup(3); ok {
		t.Error("Page 3 should not be resident")
	}
}

func TestFrameTableInsertFullPanics(t *testing.T) {
	ft := NewFrameTable(1)
	ft.Insert(Reference{Address: 0x1000})

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when inserting into a full table")
		}
	}()
	ft.Insert(Reference{Address: 0x2000})
}

func TestFrameTableReplaceReusesSlot(t *testing.T) {
	ft := NewFrameTable(2)
	ft.Insert(Reference{Address: 0x1000, Access: Write})
	ft.Insert(Reference{Address: 0x2000, Access: Read})

	victim := ft.Replace(0, Reference{Address: 0x3000, Access: Read})
	if victim.Page != 1 || !victim.Dirty {
		t.Errorf("Expected dirty victim page 1, got %+v", victim)
	}

	if _, ok := ft.Lookup(1); ok {
		t.Error("Evicted page should no longer be resident")
	}

	slot, ok := ft.Lookup(3)
	if !ok || slot != 0 {
		t.Errorf("Expected page 3 in slot 0, got %d (resident=%v)", slot, ok)
	}

	f := ft.Frame(0)
	if f.Dirty || !f.Referenced {
		t.Errorf("Replaced frame from a read should be clean and referenced: %+v", *f)
	}

	if ft.Len() != 2 {
		t.Errorf("Replace should not change table size, got %d", ft.Len())
	}
}

func TestFrameTableTouch(t *testing.T) {
	ft := NewFrameTable(1)
	ft.Insert(Reference{Address: 0x1000, Access: Read})
	ft.ClearReferenced()

	ft.Touch(0, Read)
	if f := ft.Frame(0); !f.Referenced || f.Dirty {
		t.Errorf("Read hit should only set referenced: %+v", *f)
	}

	ft.Touch(0, Write)
	if f := ft.Frame(0); !f.Dirty {
		t.Errorf("Write hit should set dirty: %+v", *f)
	}
}

func TestFrameClass(t *testing.T) {
	tests := []struct {
		frame Frame
		class int
	}{
		{Frame{Referenced: false, Dirty: false}, 0},
		{Frame{Referenced: false, Dirty: true}, 1},
		{Frame{Referenced: true, Dirty: false}, 2},
		{Frame{Referenced: true, Dirty: true}, 3},
	}

	for _, tt := range tests {
		if got := tt.frame.Class(); got != tt.class {
			t.Errorf("Class(%+v): expected %d, got %d", tt.frame, tt.class, got)
		}
	}
}
