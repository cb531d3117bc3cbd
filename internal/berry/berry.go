// Package berry holds the data model shared by the store, the metrics and the
// views: binary-labelled berries and the state that owns them.
//
// A raspberry is the positive class (Type 1), a blueberry the negative one
// (Type 0). An item carries either a binary Label (a prediction the user can
// toggle) or a continuous Value that is compared against State.Threshold.
package berry

import (
	"github.com/google/uuid"
)

// Type is the ground-truth class of an item.
type Type int

const (
	Blueberry Type = 0
	Raspberry Type = 1
)

func (t Type) String() string {
	switch t {
	case Blueberry:
		return "blueberry"
	case Raspberry:
		return "raspberry"
	default:
		return "unknown"
	}
}

// Positive reports whether t is the positive class.
func (t Type) Positive() bool { return t == Raspberry }

// Item is a single berry.
type Item struct {
	ID    string   `json:"id,omitempty" yaml:"id,omitempty"`
	Type  Type     `json:"type" yaml:"type"`
	Label *int     `json:"label,omitempty" yaml:"label,omitempty"`
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty"`
}

// Labelled returns an item predicted with a fixed label.
func Labelled(t Type, label int) Item {
	return Item{ID: uuid.NewString(), Type: t, Label: &label}
}

// Scored returns an item predicted with a continuous score.
func Scored(t Type, value float64) Item {
	return Item{ID: uuid.NewString(), Type: t, Value: &value}
}

// LabelOr returns the item's label, or def when it has none.
func (it Item) LabelOr(def int) int {
	if it.Label == nil {
		return def
	}
	return *it.Label
}

// ValueOr returns the item's score, or def when it has none.
func (it Item) ValueOr(def float64) float64 {
	if it.Value == nil {
		return def
	}
	return *it.Value
}

// AssignIDs gives every item without an ID a fresh one. The input slice is
// updated in place and returned.
func AssignIDs(items []Item) []Item {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}
	return items
}

// ToggleLabel returns a copy of items where the item with the given id has
// its label flipped. A missing label counts as 0. Items are not mutated.
func ToggleLabel(items []Item, id string) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		flipped := 1 - out[i].LabelOr(0)
		out[i].Label = &flipped
	}
	return out
}

// ClampThreshold pins t into [0,1]. Input handlers use it; the store never does.
func ClampThreshold(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
