package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
)

var severityOrder = []model.Severity{
	model.SeverityCritical,
	model.SeverityHigh,
	model.SeverityMedium,
	model.SeverityLow,
	model.SeverityInfo,
}

// WriteMarkdown renders the audit report: summary table, security findings
// grouped by severity, then gas findings grouped by category.
func WriteMarkdown(rm *model.ReportModel, target string, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Security Audit Report\n\n")
	fmt.Fprintf(&b, "**Target:** `%s`\n\n", target)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", rm.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**Run ID:** `%s`\n\n", rm.RunID)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Severity | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Critical | %d |\n", rm.Summary.Critical)
	fmt.Fprintf(&b, "| High | %d |\n", rm.Summary.High)
	fmt.Fprintf(&b, "| Medium | %d |\n", rm.Summary.Medium)
	fmt.Fprintf(&b, "| Low | %d |\n", rm.Summary.Low)
	fmt.Fprintf(&b, "| Informational | %d |\n\n", rm.Summary.Informational)
	if rm.Summary.GasSavings > 0 {
		fmt.Fprintf(&b, "Estimated gas savings available: ~%d gas.\n\n", rm.Summary.GasSavings)
	}

	security, gasFindings := split(rm.Findings)

	b.WriteString("## Security Findings\n\n")
	if len(security) == 0 {
		b.WriteString("No security issues detected.\n\n")
	}
	for _, sev := range severityOrder {
		var group []model.Finding
		for _, f := range security {
			if f.Severity == sev {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s (%d)\n\n", titleCase(string(sev)), len(group))
		for _, f := range group {
			writeFinding(&b, f)
		}
	}

	b.WriteString("## Gas Optimizations\n\n")
	if len(gasFindings) == 0 {
		b.WriteString("No gas optimizations suggested.\n\n")
	}
	byCategory := map[model.Category][]model.Finding{}
	var categories []model.Category
	for _, f := range gasFindings {
		if _, ok := byCategory[f.Category]; !ok {
			categories = append(categories, f.Category)
		}
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}
	for _, cat := range categories {
		group := byCategory[cat]
		fmt.Fprintf(&b, "### %s (%d)\n\n", cat, len(group))
		for _, f := range group {
			writeFinding(&b, f)
		}
	}

	b.WriteString("## References\n\n- [SWC Registry](https://swcregistry.io/)\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeFinding(b *strings.Builder, f model.Finding) {
	loc := f.Contract
	if f.Function != "" {
		loc += "." + f.Function
	}
	fmt.Fprintf(b, "**%s**: %s (line %d)\n\n", f.RuleID, loc, f.Line)
	fmt.Fprintf(b, "%s\n\n", f.Message)
	if f.Snippet != "" {
		fmt.Fprintf(b, "```solidity\n%s\n```\n\n", f.Snippet)
	}
	if f.Remediation != "" {
		fmt.Fprintf(b, "*Remediation:* %s\n\n", f.Remediation)
	}
	if f.SavingsGas > 0 {
		fmt.Fprintf(b, "*Estimated savings:* ~%d gas\n\n", f.SavingsGas)
	}
	if len(f.References) > 0 {
		fmt.Fprintf(b, "*References:* %s\n\n", strings.Join(f.References, ", "))
	}
}

func split(findings []model.Finding) (security, gas []model.Finding) {
	for _, f := range findings {
		if strings.HasPrefix(string(f.Category), "gas-") {
			gas = append(gas, f)
		} else {
			security = append(security, f)
		}
	}
	return
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
