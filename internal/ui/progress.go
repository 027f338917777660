// Package ui renders live progress of `lox check` over many files.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lox/internal/driver"
)

// row is one script in the list.
type row struct {
	path    string
	stage   driver.Stage
	status  driver.Status
	elapsed time.Duration
}

func (r row) finished() bool {
	switch r.status {
	case driver.StatusDone, driver.StatusError, driver.StatusCached:
		return true
	}
	return false
}

func (r row) label() string {
	if r.status == driver.StatusWorking {
		return stageVerb[r.stage]
	}
	return string(r.status)
}

// share of a file counted as checked while it sits in a stage
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:    0.1,
	driver.StageParse:   0.4,
	driver.StageResolve: 0.8,
}

var stageVerb = map[driver.Stage]string{
	driver.StageLoad:    "loading",
	driver.StageParse:   "parsing",
	driver.StageResolve: "resolving",
	driver.StageRun:     "running",
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	busyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (r row) style() lipgloss.Style {
	switch r.status {
	case driver.StatusDone, driver.StatusCached:
		return okStyle
	case driver.StatusError:
		return errStyle
	case driver.StatusWorking:
		return busyStyle
	}
	return idleStyle
}

type model struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []row
	byPath  map[string]int
	phase   string // label of the last event without a file
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model fed by events until the
// channel is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(busyStyle))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(76))

	m := &model{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]row, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.rows[i] = row{path: file, status: driver.StatusQueued}
		m.byPath[file] = i
	}
	return m
}

// Run drives the model on out until events is closed.
func Run(title string, files []string, events <-chan driver.Event, out io.Writer) error {
	p := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	_, err := p.Run()
	return err
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for one driver event.
func (m *model) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *model) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if verb := stageVerb[ev.Stage]; ev.Status == driver.StatusWorking && verb != "" {
			m.phase = verb
		}
		return nil
	}
	idx, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	r := &m.rows[idx]
	r.status = ev.Status
	if ev.Stage != "" {
		r.stage = ev.Stage
	}
	if ev.Elapsed > 0 {
		r.elapsed = ev.Elapsed
	}
	return m.bar.SetPercent(m.percent())
}

func (m *model) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var total float64
	for _, r := range m.rows {
		if r.finished() {
			total++
			continue
		}
		if r.status == driver.StatusWorking {
			total += stageWeight[r.stage]
		}
	}
	return total / float64(len(m.rows))
}

func (m *model) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := m.title
	if m.phase != "" {
		header += " (" + m.phase + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 10
	nameWidth := max(m.width-statusWidth-16, 20)
	var finished, failed, cached int
	for _, r := range m.rows {
		status := r.style().Render(fmt.Sprintf("%*s", statusWidth, r.label()))
		fmt.Fprintf(&b, "  %s %s", status, truncate(r.path, nameWidth))
		if r.finished() && r.elapsed > 0 {
			b.WriteString(dimStyle.Render(" " + r.elapsed.Round(time.Millisecond).String()))
		}
		b.WriteByte('\n')
		if r.finished() {
			finished++
		}
		switch r.status {
		case driver.StatusError:
			failed++
		case driver.StatusCached:
			cached++
		}
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	fmt.Fprintf(&b, "\n%d/%d checked, %d with errors, %d cached\n", finished, len(m.rows), failed, cached)
	return b.String()
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
