package detectors

import (
	"fmt"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// uncheckedCallReturn flags low-level calls whose success flag is never
// bound to a later condition in the same function. transfer is exempt
// because it reverts on failure.
type uncheckedCallReturn struct{}

func (d *uncheckedCallReturn) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "SOL-UNCHECKED-CALL",
		Title:    "Low-level call result not checked",
		Category: model.CategoryUncheckedCallReturn,
		Severity: model.SeverityHigh,
	}
}

func (d *uncheckedCallReturn) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		for i, st := range fn.Statements {
			if st.Kind != solidity.StmtExternalCall || st.Call == solidity.CallTransfer {
				continue
			}
			if checkedLater(fn.Statements[i+1:], st.BoundVars) {
				continue
			}
			findings = append(findings, NewFinding(d.Meta(), u, fn, st.Line,
				fmt.Sprintf("result of %s is never checked", st.Call),
				"Bind the boolean result and require it, or revert explicitly when the call fails.",
				[]string{"SWC-104"}, 0.7))
		}
	}
	return findings
}

func checkedLater(rest []solidity.Statement, bound []string) bool {
	if len(bound) == 0 {
		return false
	}
	for _, st := range rest {
		if st.Kind != solidity.StmtRequire {
			continue
		}
		for _, v := range bound {
			if solidity.ContainsWord(st.Cond, v) {
				return true
			}
		}
	}
	return false
}
