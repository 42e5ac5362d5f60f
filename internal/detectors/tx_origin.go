package detectors

import (
	"strings"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// txOriginAuth flags tx.origin comparisons in require/condition statements.
// tx.origin names the transaction initiator, not the immediate caller, so
// any intermediary contract can satisfy the check.
type txOriginAuth struct{}

func (d *txOriginAuth) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "SOL-TX-ORIGIN",
		Title:    "tx.origin used for authorization",
		Category: model.CategoryTxOriginAuth,
		Severity: model.SeverityHigh,
	}
}

func (d *txOriginAuth) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	emit := func(fn *solidity.Function, st solidity.Statement) {
		findings = append(findings, NewFinding(d.Meta(), u, fn, st.Line,
			"tx.origin compared in an authorization condition",
			"Replace tx.origin with msg.sender; tx.origin checks are phishable through intermediary contracts.",
			[]string{"SWC-115"}, 0.85))
	}
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		for _, st := range fn.Statements {
			if st.Kind == solidity.StmtRequire && strings.Contains(st.Cond, "tx.origin") {
				emit(fn, st)
			}
		}
	}
	for _, m := range u.Modifiers {
		for _, st := range m.Statements {
			if st.Kind == solidity.StmtRequire && strings.Contains(st.Cond, "tx.origin") {
				f := NewFinding(d.Meta(), u, nil, st.Line,
					"tx.origin compared in an authorization condition",
					"Replace tx.origin with msg.sender; tx.origin checks are phishable through intermediary contracts.",
					[]string{"SWC-115"}, 0.85)
				f.Function = m.Name
				findings = append(findings, f)
			}
		}
	}
	return findings
}
