package engine

import (
	"path/filepath"
	"strings"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/config"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
)

// applyIgnores filters findings based on config ignore rules.
func applyIgnores(findings []model.Finding, cfg config.Config) []model.Finding {
	if len(cfg.Ignore) == 0 {
		return findings
	}
	var out []model.Finding
	for _, f := range findings {
		if isIgnored(f, cfg) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isIgnored(f model.Finding, cfg config.Config) bool {
	for _, ig := range cfg.Ignore {
		if ig.Rule != "" && !strings.EqualFold(ig.Rule, f.RuleID) {
			continue
		}
		if ig.Path != "" && !strings.HasPrefix(filepath.ToSlash(f.File), filepath.ToSlash(ig.Path)) {
			continue
		}
		return true
	}
	return false
}

// suppressInline drops findings carrying a suppression comment near the
// flagged line. Format: // secudity:ignore RULE-ID reason="..."
func suppressInline(findings []model.Finding, sources []Source) []model.Finding {
	contents := make(map[string][]string, len(sources))
	for _, s := range sources {
		contents[s.Path] = strings.Split(s.Content, "\n")
	}
	var out []model.Finding
	for _, f := range findings {
		if hasInlineSuppression(contents[f.File], f.RuleID, f.Line) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func hasInlineSuppression(lines []string, ruleID string, line int) bool {
	if len(lines) == 0 {
		return false
	}
	from := line - 1 - 2
	if from < 0 {
		from = 0
	}
	to := line - 1
	if to >= len(lines) {
		to = len(lines) - 1
	}
	needle := "secudity:ignore " + ruleID
	for i := from; i <= to; i++ {
		if strings.Contains(lines[i], needle) {
			return true
		}
	}
	return false
}
