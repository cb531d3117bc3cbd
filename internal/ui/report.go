package ui

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/idlab-discover/berryroc/internal/metrics"
)

// MetricsReport is what the metrics command shows for one dataset.
type MetricsReport struct {
	Dataset string
	// Threshold is nil when items are classified by their label.
	Threshold *float64
	Counts    metrics.Counts
	Summary   metrics.Summary
}

// ReportUI renders metric reports for the CLI
type ReportUI struct {
	writer io.Writer
	quiet  bool
}

// NewReportUI creates a new UI handler for the metrics and roc commands
func NewReportUI(w io.Writer, quiet bool) *ReportUI {
	return &ReportUI{
		writer: w,
		quiet:  quiet,
	}
}

// PrintReport renders the confusion matrix and rates in a box
func (r *ReportUI) PrintReport(report MetricsReport) {
	if r.quiet {
		return
	}

	var output strings.Builder

	output.WriteString(Success.Bold(true).Render("Classification Report"))
	output.WriteString("\n\n")

	if report.Dataset != "" {
		output.WriteString(FormatKeyValue("Dataset", Highlight.Render(report.Dataset)))
		output.WriteString("\n")
	}
	if report.Threshold != nil {
		output.WriteString(FormatKeyValue("Threshold", fmt.Sprintf("%.2f", *report.Threshold)))
	} else {
		output.WriteString(FormatKeyValue("Classified by", "label"))
	}
	output.WriteString("\n")
	output.WriteString(Dim.Render(fmt.Sprintf("(%d berries, %d raspberries, %d blueberries)",
		report.Counts.Total(), report.Counts.Positives(), report.Counts.Negatives())))
	output.WriteString("\n\n")

	output.WriteString(SectionHeader.Render("Confusion Matrix"))
	output.WriteString("\n")
	output.WriteString(RenderMatrix(report.Counts))
	output.WriteString("\n\n")

	output.WriteString(SectionHeader.Render("Rates"))
	output.WriteString("\n")
	output.WriteString(r.renderRateBars(report.Summary))

	fmt.Fprintln(r.writer, SuccessBox.Render(output.String()))
}

func (r *ReportUI) renderRateBars(s metrics.Summary) string {
	var sb strings.Builder
	for i, l := range RateLines(s) {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(Dim.Render(fmt.Sprintf("%-20s", l.Name)))
		v, ok := l.Rate.Value()
		if !ok {
			sb.WriteString(Muted.Render(strings.Repeat("░", 20)))
			sb.WriteString(" ")
			sb.WriteString(Muted.Render(l.Rate.Format()))
			continue
		}
		sb.WriteString(r.renderProgressBar(v, 20))
		sb.WriteString(" ")
		sb.WriteString(l.Rate.Format())
	}
	return sb.String()
}

// renderProgressBar creates a visual bar for a value in [0,1]
func (r *ReportUI) renderProgressBar(score float64, width int) string {
	filled := clampInt(int(score*float64(width)), 0, width)
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)

	var style lipgloss.Style
	if score >= 0.8 {
		style = lipgloss.NewStyle().Foreground(ColorSuccess)
	} else if score >= 0.5 {
		style = lipgloss.NewStyle().Foreground(ColorWarning)
	} else {
		style = lipgloss.NewStyle().Foreground(ColorError)
	}

	return style.Render(bar)
}

// PrintSimpleReport prints a minimal plain text report with no styling
func (r *ReportUI) PrintSimpleReport(report MetricsReport) {
	mode := "label"
	if report.Threshold != nil {
		mode = fmt.Sprintf("threshold=%.2f", *report.Threshold)
	}
	c := report.Counts
	fmt.Fprintf(r.writer, "Dataset: %s | %s | tp=%d fp=%d tn=%d fn=%d\n",
		report.Dataset, mode, c.TP, c.FP, c.TN, c.FN)
	for _, l := range RateLines(report.Summary) {
		fmt.Fprintf(r.writer, "%s: %s\n", l.Name, l.Rate.Format())
	}
}

// PrintCurve prints the ROC points as a table followed by a plot
func (r *ReportUI) PrintCurve(dataset string, points []metrics.Point, current *metrics.Point) {
	if r.quiet {
		return
	}

	var output strings.Builder
	output.WriteString(Success.Bold(true).Render("ROC Curve"))
	output.WriteString("\n\n")
	if dataset != "" {
		output.WriteString(FormatKeyValue("Dataset", Highlight.Render(dataset)))
		output.WriteString("\n\n")
	}

	output.WriteString(Dim.Render(fmt.Sprintf("%4s  %6s  %6s", "#", "fpr", "tpr")))
	output.WriteString("\n")
	for i, p := range points {
		output.WriteString(fmt.Sprintf("%4d  %6.3f  %6.3f\n", i, p.FPR, p.TPR))
	}
	output.WriteString("\n")
	output.WriteString(RenderROC(points, current, 40, 16))

	fmt.Fprintln(r.writer, Box.Render(output.String()))
}

// PrintSimpleCurve prints one "fpr tpr" pair per line
func (r *ReportUI) PrintSimpleCurve(points []metrics.Point) {
	for _, p := range points {
		fmt.Fprintf(r.writer, "%.4f %.4f\n", p.FPR, p.TPR)
	}
}
