package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cppdoc/internal/driver"
)

// fileRow is the rendered state of one input file.
type fileRow struct {
	path   string
	stage  driver.Stage
	status driver.Status
	counts driver.Counts
	cached bool
	err    string
}

func (r *fileRow) finished() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusError
}

type correlateView struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	run     string // stage of the whole run, from events without File
	width   int
	done    bool
}

type eventMsg driver.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model that shows per-file pipeline
// progress and the documentation coverage found so far. The model quits
// when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 60

	v := &correlateView{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		v.rows[i] = fileRow{path: f, status: driver.StatusQueued}
		v.byPath[f] = i
	}
	return v
}

func (v *correlateView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.next())
}

func (v *correlateView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return v, tea.Batch(v.apply(driver.Event(msg)), v.next())
	case closedMsg:
		v.done = true
		return v, tea.Quit
	case spinner.TickMsg:
		if v.done {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			v.width = msg.Width
			v.bar.Width = max(msg.Width-4, 10)
		}
		return v, nil
	case progress.FrameMsg:
		m, cmd := v.bar.Update(msg)
		v.bar = m.(progress.Model)
		return v, cmd
	}
	return v, nil
}

func (v *correlateView) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-v.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

// apply folds one event into the rows and animates the bar.
func (v *correlateView) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == driver.StatusWorking {
			v.run = string(ev.Stage)
		}
		return nil
	}
	i, ok := v.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &v.rows[i]
	row.stage, row.status = ev.Stage, ev.Status
	if ev.Err != nil {
		row.err = ev.Err.Error()
	}
	if row.finished() {
		row.counts, row.cached = ev.Counts, ev.Cached
	}
	return v.bar.SetPercent(v.fraction())
}

// stageWeight — доля работы над файлом, выполненная к началу стадии.
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:      0.05,
	driver.StageLex:       0.15,
	driver.StageExtract:   0.45,
	driver.StageCorrelate: 0.75,
}

// fraction is the completed share of all files.
func (v *correlateView) fraction() float64 {
	if len(v.rows) == 0 {
		return 0
	}
	sum := 0.0
	for i := range v.rows {
		if v.rows[i].finished() {
			sum++
			continue
		}
		if v.rows[i].status == driver.StatusWorking {
			sum += stageWeight[v.rows[i].stage]
		}
	}
	return sum / float64(len(v.rows))
}

// totals sums the counts of finished files.
func (v *correlateView) totals() (finished int, c driver.Counts) {
	for i := range v.rows {
		r := &v.rows[i]
		if !r.finished() {
			continue
		}
		finished++
		c.Blocks += r.counts.Blocks
		c.Records += r.counts.Records
		c.Entities += r.counts.Entities
		c.Documented += r.counts.Documented
		c.Orphans += r.counts.Orphans
	}
	return finished, c
}
