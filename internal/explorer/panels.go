package explorer

import (
	"github.com/idlab-discover/berryroc/internal/berry"
	"github.com/idlab-discover/berryroc/internal/metrics"
)

// Each panel subscribes to the store on its own and keeps only what it
// draws, so a SetState recomputes every panel before the next frame.

type matrixPanel struct {
	classify func(berry.State) metrics.Classifier
	counts   metrics.Counts
	summary  metrics.Summary
}

func (p *matrixPanel) update(s berry.State) {
	p.counts = metrics.Tally(s.Items, p.classify(s))
	p.summary = p.counts.Summary()
}

type rocPanel struct {
	classify func(berry.State) metrics.Classifier
	scored   bool
	curve    []metrics.Point
	current  metrics.Point
}

func (p *rocPanel) update(s berry.State) {
	p.scored = metrics.Scored(s.Items)
	if p.scored {
		p.curve = metrics.Curve(s.Items)
	} else {
		p.curve = nil
	}
	p.current = metrics.Tally(s.Items, p.classify(s)).Point()
}

type berryPanel struct {
	items       []berry.Item
	threshold   float64
	selected    []berry.Item
	interacting bool
}

func (p *berryPanel) update(s berry.State) {
	p.items = s.Items
	p.threshold = s.Threshold
	p.selected = s.SelectedItems()
	p.interacting = s.Interacting
}

func (p *berryPanel) isSelected(id string) bool {
	for _, it := range p.selected {
		if it.ID == id {
			return true
		}
	}
	return false
}
