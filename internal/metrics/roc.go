package metrics

import (
	"slices"

	"github.com/idlab-discover/berryroc/internal/berry"
)

// Point is a position in ROC space.
type Point struct {
	FPR float64 `json:"fpr" yaml:"fpr"`
	TPR float64 `json:"tpr" yaml:"tpr"`
}

// Curve returns the ROC curve of scored items: one point per item plus the
// origin, ordered from the lowest score (the all-positive end) to the origin.
//
// Items are sorted ascending by score with a stable sort, then swept from the
// highest score down. Equal scores are not merged; they contribute one point
// each in their original relative order. Items without a score sort as 0.
// When a class is absent its rate is undefined and is reported as 0.
func Curve(items []berry.Item) []Point {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b berry.Item) int {
		av, bv := a.ValueOr(0), b.ValueOr(0)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	})

	positives := 0
	for _, it := range sorted {
		if it.Type.Positive() {
			positives++
		}
	}
	negatives := len(sorted) - positives

	points := make([]Point, len(sorted), len(sorted)+1)
	tp, tn := 0, negatives
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Type.Positive() {
			tp++
		} else {
			tn--
		}
		points[i] = Point{
			TPR: Rate{tp, positives}.Or(0),
			FPR: Rate{negatives - tn, negatives}.Or(0),
		}
	}
	return append(points, Point{})
}
