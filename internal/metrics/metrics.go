// Package metrics computes confusion-matrix counts, the rates derived from
// them and ROC curves for a list of berries.
//
// A rate whose denominator is zero is undefined. Rate keeps that distinction
// (Value reports ok=false) and Format prints it as "N/A". Where a plain float
// is unavoidable, such as ROC coordinates, an undefined rate counts as 0.
package metrics

import (
	"fmt"

	"github.com/idlab-discover/berryroc/internal/berry"
)

// Classifier decides whether an item is predicted positive.
type Classifier func(berry.Item) bool

// ByLabel predicts positive when the item's label is 1.
func ByLabel() Classifier {
	return func(it berry.Item) bool { return it.LabelOr(0) == 1 }
}

// AtThreshold predicts positive when the item's score is at least t. Items
// without a score are predicted negative.
func AtThreshold(t float64) Classifier {
	return func(it berry.Item) bool { return it.Value != nil && *it.Value >= t }
}

// Counts is a 2x2 confusion matrix.
type Counts struct {
	TP int `json:"tp" yaml:"tp"`
	FP int `json:"fp" yaml:"fp"`
	TN int `json:"tn" yaml:"tn"`
	FN int `json:"fn" yaml:"fn"`
}

// Tally crosses actual class against classify's prediction for every item.
func Tally(items []berry.Item, classify Classifier) Counts {
	var c Counts
	for _, it := range items {
		predicted := classify(it)
		switch {
		case it.Type.Positive() && predicted:
			c.TP++
		case it.Type.Positive():
			c.FN++
		case predicted:
			c.FP++
		default:
			c.TN++
		}
	}
	return c
}

// Total returns the number of tallied items.
func (c Counts) Total() int { return c.TP + c.FP + c.TN + c.FN }

// Positives returns the number of actually positive items.
func (c Counts) Positives() int { return c.TP + c.FN }

// Negatives returns the number of actually negative items.
func (c Counts) Negatives() int { return c.TN + c.FP }

// Rate is a ratio kept as its integer parts.
type Rate struct {
	Num int `json:"num" yaml:"num"`
	Den int `json:"den" yaml:"den"`
}

// Value returns Num/Den. ok is false when Den is zero.
func (r Rate) Value() (v float64, ok bool) {
	if r.Den == 0 {
		return 0, false
	}
	return float64(r.Num) / float64(r.Den), true
}

// Defined reports whether the rate has a non-zero denominator.
func (r Rate) Defined() bool { return r.Den != 0 }

// Or returns the rate's value, or def when it is undefined.
func (r Rate) Or(def float64) float64 {
	if v, ok := r.Value(); ok {
		return v
	}
	return def
}

// Format renders the rate as "num/den (x.xx)", or "num/den (N/A)" when
// undefined.
func (r Rate) Format() string {
	v, ok := r.Value()
	if !ok {
		return fmt.Sprintf("%d/%d (N/A)", r.Num, r.Den)
	}
	return fmt.Sprintf("%d/%d (%.2f)", r.Num, r.Den, v)
}

func (r Rate) String() string { return r.Format() }

func (c Counts) Sensitivity() Rate       { return Rate{c.TP, c.TP + c.FN} }
func (c Counts) Specificity() Rate       { return Rate{c.TN, c.TN + c.FP} }
func (c Counts) FalsePositiveRate() Rate { return Rate{c.FP, c.FP + c.TN} }
func (c Counts) FalseNegativeRate() Rate { return Rate{c.FN, c.FN + c.TP} }
func (c Counts) Precision() Rate         { return Rate{c.TP, c.TP + c.FP} }

// Summary bundles the five rates shown next to a confusion matrix.
type Summary struct {
	Sensitivity       Rate `json:"sensitivity" yaml:"sensitivity"`
	Specificity       Rate `json:"specificity" yaml:"specificity"`
	FalsePositiveRate Rate `json:"fpr" yaml:"fpr"`
	FalseNegativeRate Rate `json:"fnr" yaml:"fnr"`
	Precision         Rate `json:"precision" yaml:"precision"`
}

// Summary computes all five rates.
func (c Counts) Summary() Summary {
	return Summary{
		Sensitivity:       c.Sensitivity(),
		Specificity:       c.Specificity(),
		FalsePositiveRate: c.FalsePositiveRate(),
		FalseNegativeRate: c.FalseNegativeRate(),
		Precision:         c.Precision(),
	}
}

// Point returns the ROC-space position of these counts. Undefined rates
// count as 0.
func (c Counts) Point() Point {
	return Point{
		FPR: c.FalsePositiveRate().Or(0),
		TPR: c.Sensitivity().Or(0),
	}
}

// Classify returns the classifier matching the way s predicts: by score
// against the threshold when every item has a score, by label otherwise.
func Classify(s berry.State) Classifier {
	if Scored(s.Items) {
		return AtThreshold(s.Threshold)
	}
	return ByLabel()
}

// Scored reports whether every item carries a score. An empty list is not
// scored.
func Scored(items []berry.Item) bool {
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if it.Value == nil {
			return false
		}
	}
	return true
}
