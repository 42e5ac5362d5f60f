package gas

import (
	"github.com/secudityLabs/secudity-audit-toolkit/internal/detectors"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// stringRequireMessage flags require() with a string message; custom errors
// avoid storing and ABI-encoding the revert string.
type stringRequireMessage struct{}

func (d *stringRequireMessage) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "GAS-REQUIRE-STRING",
		Title:    "require with string message",
		Category: model.CategoryStringRequireMessage,
		Severity: model.SeverityInfo,
	}
}

func (d *stringRequireMessage) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		for _, st := range fn.Statements {
			if st.Kind != solidity.StmtRequire || st.Keyword != "require" || !st.HasStringMessage {
				continue
			}
			f := detectors.NewFinding(d.Meta(), u, fn, st.Line,
				"require carries a string revert message",
				"Prefer typed custom errors (error X(); ... revert X();) over string messages.",
				nil, 0.9)
			f.SavingsGas = 50
			findings = append(findings, f)
		}
	}
	return findings
}
