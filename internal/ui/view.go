package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cppdoc/internal/driver"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	busyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

const statusWidth = 11

func (v *correlateView) View() string {
	if len(v.rows) == 0 {
		return ""
	}
	var b strings.Builder

	head := v.title
	if v.run != "" {
		head += " (" + v.run + ")"
	}
	if v.done {
		b.WriteString(titleStyle.Render("done: " + head))
	} else {
		b.WriteString(v.spinner.View() + " " + titleStyle.Render(head))
	}
	b.WriteString("\n\n")

	nameWidth := max(v.width/2, 20)
	for i := range v.rows {
		r := &v.rows[i]
		name := runewidth.FillRight(fitWidth(r.path, nameWidth), nameWidth)
		fmt.Fprintf(&b, "  %s %s  %s\n", rowStatus(r), name, rowDetail(r))
	}

	b.WriteString("\n")
	if v.done {
		b.WriteString(v.bar.ViewAs(1))
	} else {
		b.WriteString(v.bar.View())
	}
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(v.summary()))
	b.WriteString("\n")
	return b.String()
}

func rowStatus(r *fileRow) string {
	label := string(r.status)
	style := detailStyle
	switch r.status {
	case driver.StatusDone:
		style = okStyle
	case driver.StatusError:
		style = errStyle
	case driver.StatusWorking:
		label = stageVerb(r.stage)
		style = busyStyle
	}
	return style.Render(fmt.Sprintf("%*s", statusWidth, label))
}

func stageVerb(s driver.Stage) string {
	switch s {
	case driver.StageLoad:
		return "loading"
	case driver.StageLex:
		return "lexing"
	case driver.StageExtract:
		return "extracting"
	case driver.StageCorrelate:
		return "correlating"
	}
	return string(s)
}

// rowDetail renders what was found in a finished file.
func rowDetail(r *fileRow) string {
	if r.err != "" {
		return errStyle.Render(r.err)
	}
	if !r.finished() {
		return ""
	}
	c := r.counts
	parts := []string{
		plural(c.Blocks, "block"),
		plural(c.Records, "record"),
		fmt.Sprintf("%d/%d documented", c.Documented, c.Entities),
	}
	if c.Orphans > 0 {
		parts = append(parts, plural(c.Orphans, "orphan"))
	}
	s := strings.Join(parts, " · ")
	if r.cached {
		s += " (cached)"
	}
	return detailStyle.Render(s)
}

// summary is the footer line with run-wide totals.
func (v *correlateView) summary() string {
	finished, c := v.totals()
	parts := []string{
		fmt.Sprintf("%d/%d files", finished, len(v.rows)),
		plural(c.Entities, "entity"),
		fmt.Sprintf("%s documented", coverage(c.Documented, c.Entities)),
	}
	if c.Orphans > 0 {
		parts = append(parts, plural(c.Orphans, "orphan"))
	}
	return strings.Join(parts, " · ")
}

func coverage(documented, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", documented*100/total)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	if strings.HasSuffix(word, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(word, "y"))
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func fitWidth(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
