package selection

import (
	"slices"
	"testing"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
)

func TestToggle(t *testing.T) {
	var s Set
	s = s.Toggle("3")
	if !s.Contains("3") || s.Len() != 1 {
		t.Fatalf("after toggle on: %v", s.IDs())
	}

	before := s
	s = s.Toggle("3")
	if s.Contains("3") || !s.IsEmpty() {
		t.Errorf("after toggle off: %v", s.IDs())
	}
	if !before.Contains("3") {
		t.Error("Toggle must not modify the receiver")
	}
}

func TestSelect(t *testing.T) {
	s := Of("1").Select("2", true).Select("1", false).Select("9", false)
	if got := s.IDs(); !slices.Equal(got, []record.ID{"2"}) {
		t.Errorf("IDs = %v, want [2]", got)
	}
	if s.Select("", true).Len() != 1 {
		t.Error("empty id must be ignored")
	}
}

func TestSelectAllVisible(t *testing.T) {
	page1 := []record.ID{"1", "2"}
	page2 := []record.ID{"3", "4"}

	s := Set{}.SelectAllVisible(page1)
	if !s.Equal(Of(page1...)) {
		t.Fatalf("select all = %v, want %v", s.IDs(), page1)
	}

	// Same size, different ids: a length check alone would wrongly clear.
	s = s.SelectAllVisible(page2)
	if !s.Equal(Of(page2...)) {
		t.Errorf("select all on other page = %v, want %v", s.IDs(), page2)
	}

	s = s.SelectAllVisible(page2)
	if !s.IsEmpty() {
		t.Errorf("second select all should clear, got %v", s.IDs())
	}
}

func TestSelectAllVisible_PartialSelection(t *testing.T) {
	s := Of("1").SelectAllVisible([]record.ID{"1", "2"})
	if !s.Equal(Of("1", "2")) {
		t.Errorf("partial selection should become the full page, got %v", s.IDs())
	}
}

func TestSelectAllVisible_EmptyPage(t *testing.T) {
	s := Set{}.SelectAllVisible(nil)
	if !s.IsEmpty() {
		t.Errorf("got %v", s.IDs())
	}
}

func TestPrune(t *testing.T) {
	s := Of("3", "5", "7")
	got := s.Prune([]record.ID{"1", "2", "4", "6", "7", "8"})
	if !got.Equal(Of("7")) {
		t.Errorf("Prune = %v, want [7]", got.IDs())
	}
	if s.Len() != 3 {
		t.Error("Prune must not modify the receiver")
	}
}

func TestClearAndIDsOrder(t *testing.T) {
	s := Of("b", "a", "c")
	if got := s.IDs(); !slices.Equal(got, []record.ID{"a", "b", "c"}) {
		t.Errorf("IDs = %v", got)
	}
	if !s.Clear().IsEmpty() {
		t.Error("Clear should empty the selection")
	}
}
