package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
)

type modelT struct {
	report *model.ReportModel
	cursor int
}

func initialModel(rm *model.ReportModel) modelT { return modelT{report: rm} }

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.report.Findings)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	s := m.report.Summary
	fmt.Fprintf(&b, "Findings (%d) critical=%d high=%d medium=%d low=%d info=%d\n\n",
		s.Total, s.Critical, s.High, s.Medium, s.Low, s.Informational)
	for i, f := range m.report.Findings {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		loc := f.Contract
		if f.Function != "" {
			loc += "." + f.Function
		}
		fmt.Fprintf(&b, "%s%s [%s] %s:%d %s\n", marker, f.RuleID, f.Severity, f.File, f.Line, loc)
	}
	if len(m.report.Findings) > 0 {
		f := m.report.Findings[m.cursor]
		fmt.Fprintf(&b, "\n%s\n", f.Message)
		if f.Remediation != "" {
			fmt.Fprintf(&b, "Remediation: %s\n", f.Remediation)
		}
	}
	b.WriteString("\n(q to quit)\n")
	return b.String()
}

// Run launches a minimal findings browser.
func Run(rm *model.ReportModel) error {
	p := tea.NewProgram(initialModel(rm))
	_, err := p.Run()
	return err
}
