// Package terminal is a keyboard-driven terminal rendition of the dashboard.
package terminal

import (
	"fmt"
	"strings"

	"strbrowser/internal/dataset"
	"strbrowser/internal/session"
	"strbrowser/internal/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth        = 40
	maxHeatmapRows  = 12
	maxHeatmapCols  = 60
	defaultWidth    = 100
	sidebarMinWidth = 18
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#21918C"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FDE725")).Background(lipgloss.Color("#440154"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B91C1C"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#21918C"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#3B528B")).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
)

// Model is the bubbletea model: one session driven by key presses
type Model struct {
	session  *session.Session
	diseases []string
	cursor   int
	view     session.View
	err      error
	width    int
	quitting bool
}

// NewModel starts on the catalog's default selection
func NewModel(catalog *dataset.Catalog) *Model {
	sess := session.New(catalog)
	return &Model{
		session:  sess,
		diseases: catalog.Diseases(),
		view:     sess.View(),
		width:    defaultWidth,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses: up/down pick the disease, +/- move the bin width, q quits
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.selectDisease(m.cursor - 1)
			}
		case "down", "j":
			if m.cursor < len(m.diseases)-1 {
				m.selectDisease(m.cursor + 1)
			}
		case "+", "=", "right", "l":
			m.setBinWidth(m.view.Selection.BinWidth + 1)
		case "-", "_", "left", "h":
			m.setBinWidth(m.view.Selection.BinWidth - 1)
		}
	}
	return m, nil
}

func (m *Model) selectDisease(i int) {
	d := m.diseases[i]
	m.apply(session.Input{Disease: &d})
	if m.err == nil {
		m.cursor = i
	}
}

func (m *Model) setBinWidth(w int) {
	m.apply(session.Input{BinWidth: &w})
}

func (m *Model) apply(in session.Input) {
	m.view, m.err = m.session.Update(in)
}

// Selection reports the current selection
func (m *Model) Selection() session.Selection {
	return m.view.Selection
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(views.Title))
	b.WriteString("\n\n")

	sidebar := m.renderDiseases()
	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSummary(),
		"",
		m.renderHistogram(),
		"",
		m.renderHeatmap(),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", main))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("up/down: disease  +/-: bin width  q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderDiseases() string {
	lines := make([]string, 0, len(m.diseases)+1)
	lines = append(lines, labelStyle.Render("Disease"))
	for i, d := range m.diseases {
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+d))
		} else {
			lines = append(lines, "  "+d)
		}
	}
	lines = append(lines, "", labelStyle.Render("Bin width"), valueStyle.Render(fmt.Sprintf("%d", m.view.Selection.BinWidth)))
	return lipgloss.NewStyle().Width(sidebarMinWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSummary() string {
	s, err := views.Summarize(m.view.Selection.Disease, m.view.Alleles)
	if err != nil {
		return boxStyle.Render(errorStyle.Render(err.Error()))
	}
	field := func(label, value string) string {
		return labelStyle.Render(label+": ") + valueStyle.Render(value)
	}
	return boxStyle.Render(strings.Join([]string{
		field("Gene", s.Boxes.Gene) + "   " + field("Type", s.Boxes.Type),
		field("Locus Structure", s.Boxes.LocusStructure) + "   " + field("Inheritance", s.Boxes.Inheritance),
		field("Pathogenic Min", s.Boxes.PathogenicMin.String()) + "   " + field("Pathogenic Max", s.Boxes.PathogenicMax.String()),
		field("Alleles", fmt.Sprintf("%d", s.Counts.Alleles)) + "   " + field("Samples", fmt.Sprintf("%d", s.Counts.Samples)),
	}, "\n"))
}

func (m *Model) renderHistogram() string {
	h, err := views.BuildHistogram(m.view.Selection.Disease, m.view.Alleles, m.view.Selection.BinWidth)
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	lines := []string{labelStyle.Render(h.YTitle + " by " + strings.ToLower(h.XTitle))}
	for _, bin := range h.Bins {
		n := 0
		if h.Peak > 0 {
			n = bin.Count * barWidth / h.Peak
		}
		lines = append(lines, fmt.Sprintf("%8s-%-8s %s %d",
			views.Measure{Value: bin.Lower, Valid: true}, views.Measure{Value: bin.Upper, Valid: true},
			barStyle.Render(strings.Repeat("█", n)), bin.Count))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHeatmap() string {
	h := views.BuildHeatmap(m.view.Motifs)
	if len(h.Rows) == 0 {
		return labelStyle.Render("No motif records")
	}

	lines := []string{labelStyle.Render(fmt.Sprintf("%s by %s (%d alleles)", h.YLabel, strings.ToLower(h.XLabel), len(h.Rows)))}
	for i, row := range h.Rows {
		if i == maxHeatmapRows {
			lines = append(lines, labelStyle.Render(fmt.Sprintf("... %d more", len(h.Rows)-maxHeatmapRows)))
			break
		}
		var cells strings.Builder
		for j, code := range row.Codes {
			if j == maxHeatmapCols {
				break
			}
			if code == views.NoMotif {
				cells.WriteString(" ")
				continue
			}
			cells.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(row.Colors[j])).Render("█"))
		}
		lines = append(lines, fmt.Sprintf("%-14s %s", row.SampleAllele, cells.String()))
	}

	legend := make([]string, 0, len(h.Legend))
	for _, e := range h.Legend {
		legend = append(legend, lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("█")+" "+e.Motif)
	}
	lines = append(lines, strings.Join(legend, "  "))
	return strings.Join(lines, "\n")
}

// Run starts the terminal browser and blocks until the user quits
func Run(catalog *dataset.Catalog) error {
	p := tea.NewProgram(NewModel(catalog), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
