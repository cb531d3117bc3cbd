package berry

// State is everything a view needs to draw itself.
//
// Threshold is expected in [0,1] and Selection to only reference IDs present
// in Items; neither is enforced.
type State struct {
	Items       []Item
	Threshold   float64
	Selection   map[string]struct{}
	Interacting bool
}

// Patch is a partial update. Nil fields leave the corresponding key alone;
// any set field is assigned as-is, including empty slices and zero values.
type Patch struct {
	Items       *[]Item
	Threshold   *float64
	Selection   *map[string]struct{}
	Interacting *bool
}

// Merge returns s with p applied one level deep.
func (s State) Merge(p Patch) State {
	if p.Items != nil {
		s.Items = *p.Items
	}
	if p.Threshold != nil {
		s.Threshold = *p.Threshold
	}
	if p.Selection != nil {
		s.Selection = *p.Selection
	}
	if p.Interacting != nil {
		s.Interacting = *p.Interacting
	}
	return s
}

// SetItems returns a patch replacing the items.
func SetItems(items []Item) Patch { return Patch{Items: &items} }

// SetThreshold returns a patch replacing the threshold.
func SetThreshold(t float64) Patch { return Patch{Threshold: &t} }

// SetInteracting returns a patch replacing the interaction flag.
func SetInteracting(v bool) Patch { return Patch{Interacting: &v} }

// Select returns a patch replacing the selection with ids.
func Select(ids ...string) Patch {
	sel := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		sel[id] = struct{}{}
	}
	return Patch{Selection: &sel}
}

// SelectedItems returns the selected items in item order. IDs that no longer
// match an item are ignored.
func (s State) SelectedItems() []Item {
	if len(s.Selection) == 0 {
		return nil
	}
	var out []Item
	for _, it := range s.Items {
		if _, ok := s.Selection[it.ID]; ok {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the index of the item with the given id, or -1.
func (s State) Find(id string) int {
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
