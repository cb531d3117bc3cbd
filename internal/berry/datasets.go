package berry

import (
	"fmt"
	"sort"
)

// DefaultThreshold is the starting threshold of the scored demo.
const DefaultThreshold = 0.5

// LabelledItems returns the twelve berries of the labelling demo.
func LabelledItems() []Item {
	rows := [][2]int{
		{0, 0}, {0, 1}, {1, 1}, {1, 1}, {1, 0}, {0, 0},
		{0, 0}, {0, 0}, {0, 1}, {1, 1}, {0, 0}, {0, 1},
	}
	items := make([]Item, len(rows))
	for i, r := range rows {
		items[i] = Labelled(Type(r[0]), r[1])
	}
	return items
}

// ScoredItems returns the twelve berries of the discrimination threshold demo.
func ScoredItems() []Item {
	rows := []struct {
		t Type
		v float64
	}{
		{Raspberry, 0.98}, {Blueberry, 0.87}, {Raspberry, 0.82}, {Raspberry, 0.72},
		{Blueberry, 0.66}, {Blueberry, 0.53}, {Blueberry, 0.42}, {Blueberry, 0.30},
		{Raspberry, 0.25}, {Blueberry, 0.21}, {Blueberry, 0.10}, {Blueberry, 0.01},
	}
	items := make([]Item, len(rows))
	for i, r := range rows {
		items[i] = Scored(r.t, r.v)
	}
	return items
}

var demos = map[string]func() State{
	"labelled": func() State { return State{Items: LabelledItems()} },
	"scored":   func() State { return State{Items: ScoredItems(), Threshold: DefaultThreshold} },
}

// Demo returns the initial state of a named built-in demo.
func Demo(name string) (State, error) {
	f, ok := demos[name]
	if !ok {
		return State{}, fmt.Errorf("unknown dataset %q (expected one of %v)", name, DemoNames())
	}
	return f(), nil
}

// DemoNames lists the built-in demos in sorted order.
func DemoNames() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
