package gas

import (
	"strings"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/detectors"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// lengthInLoop flags .length in a loop header; the condition re-reads the
// length every iteration.
type lengthInLoop struct{}

func (d *lengthInLoop) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "GAS-LOOP-LENGTH",
		Title:    "Array length read in loop condition",
		Category: model.CategoryLengthInLoop,
		Severity: model.SeverityInfo,
	}
}

func (d *lengthInLoop) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		for _, st := range fn.Statements {
			if st.Kind != solidity.StmtLoopHeader || !strings.Contains(st.Raw, ".length") {
				continue
			}
			f := detectors.NewFinding(d.Meta(), u, fn, st.Line,
				"loop condition reads .length on every iteration",
				"Cache the length in a local variable before the loop and compare against it.",
				nil, 0.8)
			f.SavingsGas = 3
			findings = append(findings, f)
		}
	}
	return findings
}
