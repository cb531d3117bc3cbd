package berry

import (
	"testing"
)

func TestMerge_ReplacesOnlyGivenKeys(t *testing.T) {
	items := LabelledItems()
	s := State{Items: items, Threshold: 0.3, Interacting: true}

	got := s.Merge(SetThreshold(0.7))
	if got.Threshold != 0.7 {
		t.Fatalf("Threshold = %v, want 0.7", got.Threshold)
	}
	if len(got.Items) != len(items) || !got.Interacting {
		t.Fatalf("unset keys changed: %+v", got)
	}
	if s.Threshold != 0.3 {
		t.Fatalf("Merge mutated receiver threshold: %v", s.Threshold)
	}
}

func TestMerge_ZeroValuesAreAssigned(t *testing.T) {
	s := State{Items: LabelledItems(), Threshold: 0.4, Interacting: true}

	got := s.Merge(Patch{Items: &[]Item{}}).Merge(SetThreshold(0)).Merge(SetInteracting(false))
	if len(got.Items) != 0 || got.Items == nil {
		t.Fatalf("expected empty non-nil items, got %#v", got.Items)
	}
	if got.Threshold != 0 || got.Interacting {
		t.Fatalf("zero values not assigned: %+v", got)
	}
}

func TestMerge_OutOfRangeThresholdAccepted(t *testing.T) {
	got := State{}.Merge(SetThreshold(1.5))
	if got.Threshold != 1.5 {
		t.Fatalf("Threshold = %v, want 1.5", got.Threshold)
	}
}

func TestToggleLabel_FlipsOnlyTarget(t *testing.T) {
	items := LabelledItems()
	target := items[4] // raspberry labelled 0

	out := ToggleLabel(items, target.ID)
	if out[4].LabelOr(-1) != 1 {
		t.Fatalf("label = %d, want 1", out[4].LabelOr(-1))
	}
	if items[4].LabelOr(-1) != 0 {
		t.Fatalf("input mutated: label = %d", items[4].LabelOr(-1))
	}
	for i := range items {
		if i == 4 {
			continue
		}
		if out[i].LabelOr(-1) != items[i].LabelOr(-1) {
			t.Fatalf("item %d changed", i)
		}
	}

	back := ToggleLabel(out, target.ID)
	if back[4].LabelOr(-1) != 0 {
		t.Fatalf("double toggle label = %d, want 0", back[4].LabelOr(-1))
	}
}

func TestToggleLabel_MissingLabelCountsAsZero(t *testing.T) {
	items := []Item{{ID: "a", Type: Raspberry}}
	out := ToggleLabel(items, "a")
	if out[0].LabelOr(-1) != 1 {
		t.Fatalf("label = %d, want 1", out[0].LabelOr(-1))
	}
}

func TestClampThreshold(t *testing.T) {
	tcs := []struct{ in, want float64 }{
		{-0.2, 0}, {0, 0}, {0.42, 0.42}, {1, 1}, {3, 1},
	}
	for _, tc := range tcs {
		if got := ClampThreshold(tc.in); got != tc.want {
			t.Fatalf("ClampThreshold(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSelectedItems_IgnoresDanglingIDs(t *testing.T) {
	items := ScoredItems()
	s := State{Items: items}.Merge(Select(items[2].ID, "gone", items[0].ID))

	sel := s.SelectedItems()
	if len(sel) != 2 {
		t.Fatalf("len(sel) = %d, want 2", len(sel))
	}
	if sel[0].ID != items[0].ID || sel[1].ID != items[2].ID {
		t.Fatalf("selection not in item order: %v", sel)
	}
	if s.Find(items[2].ID) != 2 || s.Find("gone") != -1 {
		t.Fatalf("Find returned unexpected index")
	}
}

func TestAssignIDs_KeepsExisting(t *testing.T) {
	items := []Item{{ID: "keep"}, {}}
	AssignIDs(items)
	if items[0].ID != "keep" {
		t.Fatalf("existing id replaced: %q", items[0].ID)
	}
	if items[1].ID == "" {
		t.Fatalf("missing id not assigned")
	}
}

func TestDemo(t *testing.T) {
	s, err := Demo("scored")
	if err != nil {
		t.Fatalf("Demo(scored): %v", err)
	}
	if len(s.Items) != 12 || s.Threshold != DefaultThreshold {
		t.Fatalf("unexpected scored demo: %d items, threshold %v", len(s.Items), s.Threshold)
	}
	for _, it := range s.Items {
		if it.Value == nil || it.Label != nil {
			t.Fatalf("scored item should carry a value only: %+v", it)
		}
	}

	s, err = Demo("labelled")
	if err != nil {
		t.Fatalf("Demo(labelled): %v", err)
	}
	for _, it := range s.Items {
		if it.Label == nil || it.ID == "" {
			t.Fatalf("labelled item should carry a label and id: %+v", it)
		}
	}

	if _, err := Demo("strawberry"); err == nil {
		t.Fatalf("expected error for unknown demo")
	}
	if names := DemoNames(); len(names) != 2 || names[0] != "labelled" {
		t.Fatalf("DemoNames() = %v", names)
	}
}
