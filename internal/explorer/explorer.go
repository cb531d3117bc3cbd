// Package explorer is the interactive terminal view over a berry store.
//
// In labels mode the user walks the berries and flips their predicted label;
// in threshold mode the user moves the discrimination threshold. Either way
// the explorer only writes to the store. The confusion matrix, the rates and
// the ROC plot are separate store subscribers that recompute on every change.
package explorer

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/idlab-discover/berryroc/internal/apperr"
	"github.com/idlab-discover/berryroc/internal/berry"
	"github.com/idlab-discover/berryroc/internal/metrics"
	"github.com/idlab-discover/berryroc/internal/store"
	"github.com/idlab-discover/berryroc/internal/ui"
)

// Mode selects what the user manipulates.
type Mode int

const (
	ModeLabels Mode = iota
	ModeThreshold
)

// ParseMode maps "labels" and "threshold" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "labels", "label":
		return ModeLabels, nil
	case "threshold":
		return ModeThreshold, nil
	default:
		return 0, apperr.Userf("invalid mode %q (expected labels|threshold)", s)
	}
}

func (m Mode) String() string {
	if m == ModeThreshold {
		return "threshold"
	}
	return "labels"
}

// Classifier returns how berries are predicted in mode m. Labels mode always
// uses the labels being toggled, even on a scored dataset.
func (m Mode) Classifier(s berry.State) metrics.Classifier {
	if m == ModeLabels {
		return metrics.ByLabel()
	}
	return metrics.Classify(s)
}

// DefaultStep is how far one key press moves the threshold.
const DefaultStep = 0.01

// Config configures the explorer
type Config struct {
	Dataset string
	Mode    Mode
	Step    float64
}

// Model is the Bubble Tea model for the explorer
type Model struct {
	store *store.Store
	cfg   Config
	keys  keyMap
	help  help.Model
	input textinput.Model

	berries berryPanel
	matrix  matrixPanel
	roc     rocPanel

	unsubscribe []func()

	cursor   int
	editing  bool
	err      error
	quitting bool
	width    int
}

// New creates an explorer bound to s. Call Close to detach it.
func New(s *store.Store, cfg Config) *Model {
	if cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}

	ti := textinput.New()
	ti.Placeholder = "0.50"
	ti.CharLimit = 8
	ti.SetWidth(10)

	m := &Model{
		store: s,
		cfg:   cfg,
		keys:  newKeyMap(cfg.Mode),
		help:  help.New(),
		input: ti,
		width: 80,
	}
	m.matrix.classify = cfg.Mode.Classifier
	m.roc.classify = cfg.Mode.Classifier
	m.unsubscribe = append(m.unsubscribe,
		s.Subscribe(m.berries.update),
		s.Subscribe(m.matrix.update),
		s.Subscribe(m.roc.update),
	)
	if cfg.Mode == ModeLabels {
		st := s.State()
		if sel := st.SelectedItems(); len(sel) > 0 {
			m.cursor = max(st.Find(sel[0].ID), 0)
		}
		m.selectCursor()
	}
	return m
}

// Close unsubscribes every panel from the store.
func (m *Model) Close() {
	for _, u := range m.unsubscribe {
		u()
	}
	m.unsubscribe = nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd { return nil }

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if m.cfg.Mode == ModeThreshold {
			return m.updateThreshold(msg)
		}
		return m.updateLabels(msg)
	}
	return m, nil
}

func (m *Model) updateLabels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleCursor()
	}
	return m, nil
}

func (m *Model) updateThreshold(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Lower):
		m.nudge(-m.cfg.Step)
	case key.Matches(msg, m.keys.Raise):
		m.nudge(m.cfg.Step)
	case key.Matches(msg, m.keys.Edit):
		return m, m.beginEdit()
	}
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		return m, nil
	case "esc", "ctrl+c":
		m.cancelEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	n := len(m.berries.items)
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
	m.selectCursor()
}

func (m *Model) selectCursor() {
	if m.cursor < 0 || m.cursor >= len(m.berries.items) {
		return
	}
	m.store.SetState(berry.Select(m.berries.items[m.cursor].ID))
}

func (m *Model) toggleCursor() {
	if m.cursor < 0 || m.cursor >= len(m.berries.items) {
		return
	}
	id := m.berries.items[m.cursor].ID
	m.store.SetState(berry.SetItems(berry.ToggleLabel(m.store.State().Items, id)))
}

func (m *Model) nudge(delta float64) {
	t := berry.ClampThreshold(m.store.State().Threshold + delta)
	m.store.SetState(berry.SetThreshold(t))
}

// beginEdit focuses the threshold input and marks the store as interacting
// until the edit is committed or cancelled.
func (m *Model) beginEdit() tea.Cmd {
	m.editing = true
	m.err = nil
	m.input.SetValue(fmt.Sprintf("%.2f", m.store.State().Threshold))
	m.store.SetState(berry.SetInteracting(true))
	return m.input.Focus()
}

func (m *Model) commitEdit() {
	v, err := ui.ParseThreshold(m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	m.endEdit()
	interacting := false
	m.store.SetState(berry.Patch{Threshold: &v, Interacting: &interacting})
}

func (m *Model) cancelEdit() {
	m.endEdit()
	m.store.SetState(berry.SetInteracting(false))
}

func (m *Model) endEdit() {
	m.editing = false
	m.err = nil
	m.input.Blur()
}

// View renders the model
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	var b strings.Builder
	title := "Berry Classifier"
	if m.cfg.Dataset != "" {
		title += " · " + m.cfg.Dataset
	}
	b.WriteString(ui.Title.Render(title))
	b.WriteString(" " + ui.Subtitle.Render(m.cfg.Mode.String()+" mode"))
	if m.berries.interacting {
		b.WriteString(" " + ui.Warning.Render("(adjusting…)"))
	}
	b.WriteString("\n\n")

	var left string
	if m.cfg.Mode == ModeThreshold {
		left = m.viewScale()
	} else {
		left = m.viewBerries()
	}
	stats := lipgloss.JoinVertical(lipgloss.Left,
		ui.SectionHeader.Render("Confusion Matrix"),
		ui.RenderMatrix(m.matrix.counts),
		"",
		ui.RenderRates(m.matrix.summary),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		ui.HighlightBox.Render(left), " ", ui.Box.Render(stats)))
	b.WriteString("\n")
	b.WriteString(ui.Box.Render(m.viewROC()))
	b.WriteString("\n")

	if m.editing {
		b.WriteString(ui.Dim.Render("Threshold: "))
		b.WriteString(m.input.View())
		b.WriteString(ui.Dim.Render("  enter: apply · esc: cancel"))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(ui.ErrorBox.Render(ui.Error.Render(m.err.Error())))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) viewBerries() string {
	var b strings.Builder
	b.WriteString(ui.SectionHeader.Render("Berries"))
	b.WriteString("\n")
	for i, it := range m.berries.items {
		cursor := "  "
		if i == m.cursor {
			cursor = ui.Highlight.Render("> ")
		}
		dot := ui.Blueberry.Render("●")
		if it.Type.Positive() {
			dot = ui.Raspberry.Render("●")
		}
		name := fmt.Sprintf("%-9s", it.Type)
		if m.berries.isSelected(it.ID) {
			name = ui.Bold.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s %s\n", cursor, dot, name,
			ui.Dim.Render("predicted"), ui.ClassMark(it.LabelOr(0) == 1)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewScale() string {
	w := min(max(m.width/2-6, 20), 60)
	return ui.SectionHeader.Render("Discrimination Threshold") + "\n\n" +
		ui.RenderScale(m.berries.items, m.berries.threshold, w)
}

func (m *Model) viewROC() string {
	cur := m.roc.current
	header := ui.SectionHeader.Render("ROC") + " " +
		ui.Dim.Render(fmt.Sprintf("fpr=%.2f tpr=%.2f", cur.FPR, cur.TPR))
	return header + "\n" + ui.RenderROC(m.roc.curve, &cur, 32, 12)
}

// Run starts the explorer on s and returns the state left in the store when
// the user quits.
func Run(s *store.Store, cfg Config) (berry.State, error) {
	m := New(s, cfg)
	defer m.Close()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return berry.State{}, err
	}
	return s.State(), nil
}
