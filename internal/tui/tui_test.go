package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
)

func sample() *model.ReportModel {
	return &model.ReportModel{
		Findings: []model.Finding{
			{RuleID: "SOL-REENTRANCY", Severity: model.SeverityCritical, File: "a.sol", Contract: "Bank", Function: "withdraw", Line: 5, Message: "call before state update"},
			{RuleID: "SOL-TX-ORIGIN", Severity: model.SeverityHigh, File: "a.sol", Contract: "Bank", Function: "pay", Line: 9, Message: "tx.origin auth"},
		},
		Summary: model.Summary{Critical: 1, High: 1, Total: 2},
	}
}

func key(s string) tea.KeyMsg {
	if s == "down" {
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigationBounds(t *testing.T) {
	m := initialModel(sample())

	next, _ := m.Update(key("down"))
	m = next.(modelT)
	assert.Equal(t, 1, m.cursor)

	next, _ = m.Update(key("j"))
	m = next.(modelT)
	assert.Equal(t, 1, m.cursor, "cursor stops at the last finding")

	next, _ = m.Update(key("k"))
	m = next.(modelT)
	assert.Equal(t, 0, m.cursor)

	next, _ = m.Update(key("k"))
	m = next.(modelT)
	assert.Equal(t, 0, m.cursor, "cursor stops at the first finding")
}

func TestQuitKeys(t *testing.T) {
	m := initialModel(sample())
	for _, k := range []string{"q", "esc"} {
		msg := key(k)
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, "%s must quit", k)
	}
}

func TestViewShowsSelectedDetail(t *testing.T) {
	m := initialModel(sample())
	out := m.View()
	assert.Contains(t, out, "> SOL-REENTRANCY")
	assert.Contains(t, out, "call before state update")

	next, _ := m.Update(key("down"))
	out = next.(modelT).View()
	assert.Contains(t, out, "> SOL-TX-ORIGIN")
	assert.Contains(t, out, "tx.origin auth")
}
