package metrics

import (
	"math"
	"testing"

	"github.com/idlab-discover/berryroc/internal/berry"
)

func scored(pairs ...float64) []berry.Item {
	items := make([]berry.Item, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, berry.Scored(berry.Type(int(pairs[i])), pairs[i+1]))
	}
	return items
}

func TestTally_Example(t *testing.T) {
	items := scored(1, 0.9, 0, 0.4, 1, 0.2)

	c := Tally(items, AtThreshold(0.5))
	want := Counts{TP: 1, FP: 0, TN: 1, FN: 1}
	if c != want {
		t.Fatalf("Tally = %+v, want %+v", c, want)
	}
	if v, ok := c.Sensitivity().Value(); !ok || v != 0.5 {
		t.Fatalf("sensitivity = (%v,%v), want (0.5,true)", v, ok)
	}
	if v, ok := c.Specificity().Value(); !ok || v != 1.0 {
		t.Fatalf("specificity = (%v,%v), want (1,true)", v, ok)
	}
}

func TestTally_LabelledDemo(t *testing.T) {
	c := Tally(berry.LabelledItems(), ByLabel())
	want := Counts{TP: 3, FP: 3, TN: 5, FN: 1}
	if c != want {
		t.Fatalf("Tally = %+v, want %+v", c, want)
	}
	if c.Positives() != 4 || c.Negatives() != 8 {
		t.Fatalf("positives=%d negatives=%d", c.Positives(), c.Negatives())
	}
}

func TestTally_TotalMatchesLength(t *testing.T) {
	inputs := [][]berry.Item{
		nil,
		berry.LabelledItems(),
		berry.ScoredItems(),
		scored(0, 0.3, 0, 0.3, 0, 0.9),
	}
	for _, items := range inputs {
		for _, th := range []float64{-1, 0, 0.25, 0.5, 0.99, 1, 2} {
			if got := Tally(items, AtThreshold(th)).Total(); got != len(items) {
				t.Fatalf("Total() = %d, want %d (threshold %v)", got, len(items), th)
			}
		}
		if got := Tally(items, ByLabel()).Total(); got != len(items) {
			t.Fatalf("Total() = %d, want %d (by label)", got, len(items))
		}
	}
}

func TestTally_RaisingThresholdNeverIncreasesPositives(t *testing.T) {
	items := berry.ScoredItems()
	prev := Tally(items, AtThreshold(0))
	for th := 0.0; th <= 1.0001; th += 0.01 {
		c := Tally(items, AtThreshold(th))
		if c.TP > prev.TP || c.FP > prev.FP {
			t.Fatalf("threshold %.2f: tp %d->%d fp %d->%d", th, prev.TP, c.TP, prev.FP, c.FP)
		}
		prev = c
	}
}

func TestTally_OutOfRangeThresholdIsDegenerate(t *testing.T) {
	items := berry.ScoredItems()

	all := Tally(items, AtThreshold(-0.5))
	if all.TN != 0 || all.FN != 0 {
		t.Fatalf("negative threshold should predict everything positive: %+v", all)
	}
	none := Tally(items, AtThreshold(1.5))
	if none.TP != 0 || none.FP != 0 {
		t.Fatalf("threshold above 1 should predict nothing positive: %+v", none)
	}
}

func TestAtThreshold_MissingValueIsNegative(t *testing.T) {
	it := berry.Labelled(berry.Raspberry, 1)
	if AtThreshold(0)(it) {
		t.Fatalf("item without value predicted positive")
	}
}

func TestRate_UndefinedPolicy(t *testing.T) {
	r := Rate{0, 0}
	if _, ok := r.Value(); ok {
		t.Fatalf("expected undefined rate")
	}
	if r.Defined() {
		t.Fatalf("Defined() = true for zero denominator")
	}
	if got := r.Or(0); got != 0 {
		t.Fatalf("Or(0) = %v", got)
	}
	if got := r.Format(); got != "0/0 (N/A)" {
		t.Fatalf("Format() = %q", got)
	}
	if got := (Rate{3, 4}).Format(); got != "3/4 (0.75)" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestSummary_NoPredictedPositives(t *testing.T) {
	c := Counts{TN: 3, FN: 2}
	s := c.Summary()

	if s.Precision.Defined() {
		t.Fatalf("precision should be undefined with tp+fp == 0")
	}
	if v := s.Sensitivity.Or(-1); v != 0 {
		t.Fatalf("sensitivity = %v, want 0", v)
	}
	if v := s.FalseNegativeRate.Or(-1); v != 1 {
		t.Fatalf("fnr = %v, want 1", v)
	}
	if v := s.Specificity.Or(-1); v != 1 {
		t.Fatalf("specificity = %v, want 1", v)
	}
	if v := s.FalsePositiveRate.Or(-1); v != 0 {
		t.Fatalf("fpr = %v, want 0", v)
	}
}

func TestCountsPoint(t *testing.T) {
	p := Counts{TP: 3, FP: 3, TN: 5, FN: 1}.Point()
	if p.TPR != 0.75 || p.FPR != 0.375 {
		t.Fatalf("Point() = %+v", p)
	}
	if (Counts{}).Point() != (Point{}) {
		t.Fatalf("empty counts should map to origin")
	}
}

func TestClassify(t *testing.T) {
	s := berry.State{Items: berry.ScoredItems(), Threshold: 0.9}
	if got := Tally(s.Items, Classify(s)); got.TP != 1 || got.FP != 0 {
		t.Fatalf("scored state classified by label? %+v", got)
	}

	s = berry.State{Items: berry.LabelledItems(), Threshold: 0.9}
	if got := Tally(s.Items, Classify(s)); got.TP != 3 {
		t.Fatalf("labelled state not classified by label: %+v", got)
	}
	if Scored(nil) {
		t.Fatalf("empty list should not be scored")
	}
}

func TestCurve_ScoredDemo(t *testing.T) {
	want := []Point{
		{1, 1}, {0.875, 1}, {0.75, 1}, {0.625, 1},
		{0.625, 0.75}, {0.5, 0.75}, {0.375, 0.75}, {0.25, 0.75},
		{0.125, 0.75}, {0.125, 0.5}, {0.125, 0.25}, {0, 0.25},
		{0, 0},
	}
	got := Curve(berry.ScoredItems())
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].FPR-want[i].FPR) > 1e-12 || math.Abs(got[i].TPR-want[i].TPR) > 1e-12 {
			t.Fatalf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCurve_Idempotent(t *testing.T) {
	items := berry.ScoredItems()
	a := Curve(items)
	b := Curve(items)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCurve_DoesNotMutateInput(t *testing.T) {
	items := berry.ScoredItems()
	first := items[0].ID
	Curve(items)
	if items[0].ID != first {
		t.Fatalf("input reordered")
	}
}

func TestCurve_Endpoints(t *testing.T) {
	got := Curve(berry.ScoredItems())
	if got[0] != (Point{FPR: 1, TPR: 1}) {
		t.Fatalf("first point = %+v, want {1 1}", got[0])
	}
	if got[len(got)-1] != (Point{}) {
		t.Fatalf("last point = %+v, want origin", got[len(got)-1])
	}
}

func TestCurve_MonotoneStaircase(t *testing.T) {
	got := Curve(berry.ScoredItems())
	for i := len(got) - 1; i > 0; i-- {
		if got[i-1].FPR < got[i].FPR || got[i-1].TPR < got[i].TPR {
			t.Fatalf("not a staircase between %d and %d: %+v %+v", i-1, i, got[i-1], got[i])
		}
	}
}

func TestCurve_AllNegative(t *testing.T) {
	got := Curve(scored(0, 0.2, 0, 0.6, 0, 0.4))
	want := []Point{{1, 0}, {2.0 / 3, 0}, {1.0 / 3, 0}, {0, 0}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].FPR-want[i].FPR) > 1e-12 || got[i].TPR != 0 {
			t.Fatalf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCurve_TiesKeepStableOrder(t *testing.T) {
	// Same score: the sweep visits the later raspberry first, then the
	// blueberry before it.
	got := Curve(scored(0, 0.5, 1, 0.5))
	want := []Point{{1, 1}, {0, 1}, {0, 0}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCurve_Empty(t *testing.T) {
	got := Curve(nil)
	if len(got) != 1 || got[0] != (Point{}) {
		t.Fatalf("Curve(nil) = %+v, want origin only", got)
	}
}

func TestCurve_AgreesWithTallyAtItemScores(t *testing.T) {
	items := berry.ScoredItems()
	curve := Curve(items)

	// curve[i] corresponds to the i-th lowest score used as threshold.
	sortedValues := []float64{0.01, 0.10, 0.21, 0.25, 0.30, 0.42, 0.53, 0.66, 0.72, 0.82, 0.87, 0.98}
	for i, v := range sortedValues {
		p := Tally(items, AtThreshold(v)).Point()
		if math.Abs(p.FPR-curve[i].FPR) > 1e-12 || math.Abs(p.TPR-curve[i].TPR) > 1e-12 {
			t.Fatalf("threshold %v: tally %+v, curve %+v", v, p, curve[i])
		}
	}
}
