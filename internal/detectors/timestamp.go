package detectors

import (
	"strings"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// timestampDependence flags block.timestamp used in modulus or equality
// comparisons, the lottery-shaped misuse miners can influence. Plain
// before/after deadline comparisons are deliberately not flagged.
type timestampDependence struct{}

func (d *timestampDependence) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "SOL-TIMESTAMP",
		Title:    "Block timestamp used as entropy or exact trigger",
		Category: model.CategoryTimestampDependence,
		Severity: model.SeverityMedium,
	}
}

func (d *timestampDependence) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		for _, st := range fn.Statements {
			if st.Kind != solidity.StmtRequire {
				continue
			}
			if !strings.Contains(st.Cond, "block.timestamp") && !solidity.ContainsWord(st.Cond, "now") {
				continue
			}
			if !strings.Contains(st.Cond, "%") && !strings.Contains(st.Cond, "==") {
				continue
			}
			findings = append(findings, NewFinding(d.Meta(), u, fn, st.Line,
				"block timestamp used in a modulus/equality comparison",
				"Do not derive randomness or exact triggers from block.timestamp; use a commit-reveal scheme or an oracle.",
				[]string{"SWC-116"}, 0.65))
		}
	}
	return findings
}
