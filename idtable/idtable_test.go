package idtable

import (
	"errors"
	"testing"
)

func TestCreateAssignsLowestFreeSlot(t *testing.T) {
	tbl := New(4)

	for want := uint16(0); want < 4; want++ {
		got, err := tbl.Create()
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if got != want {
			t.Errorf("Create() = %d, want %d", got, want)
		}
	}
	if tbl.Count() != 4 {
		t.Errorf("Count() = %d, want 4", tbl.Count())
	}
}

func TestCreateExhausted(t *testing.T) {
	tbl := New(2)
	tbl.MustCreate()
	tbl.MustCreate()

	_, err := tbl.Create()
	if !errors.Is(err, ErrCapacity) {
		t.Errorf("Create() error = %v, want ErrCapacity", err)
	}
}

func TestDestroyFreesSlotForReuse(t *testing.T) {
	tbl := New(3)
	a := tbl.MustCreate()
	b := tbl.MustCreate()
	c := tbl.MustCreate()

	tbl.Destroy(b)
	if tbl.Has(b) {
		t.Errorf("Has(%d) = true after Destroy", b)
	}
	if !tbl.Has(a) || !tbl.Has(c) {
		t.Error("Destroy freed the wrong slot")
	}

	got := tbl.MustCreate()
	if got != b {
		t.Errorf("Create() after Destroy = %d, want reused slot %d", got, b)
	}
}

func TestDestroyUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Destroy of unknown id did not panic")
		}
	}()
	New(4).Destroy(1)
}

func TestNewBadCapacityPanics(t *testing.T) {
	for _, capacity := range []int{0, -1, 1 << 17} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%d) did not panic", capacity)
				}
			}()
			New(capacity)
		}()
	}
}

func TestHasOutOfRange(t *testing.T) {
	tbl := New(2)
	tbl.MustCreate()
	if tbl.Has(5) {
		t.Error("Has(5) = true for id beyond capacity")
	}
}

func TestCapacity(t *testing.T) {
	if got := New(7).Capacity(); got != 7 {
		t.Errorf("Capacity() = %d, want 7", got)
	}
}
