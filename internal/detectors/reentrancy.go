package detectors

import (
	"fmt"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// reentrancy flags functions where an external call precedes a write to a
// state variable that variable fed the call's value or guard condition
// (checks-effects-interactions violation).
type reentrancy struct{}

func (d *reentrancy) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "SOL-REENTRANCY",
		Title:    "External call before dependent state update",
		Category: model.CategoryReentrancy,
		Severity: model.SeverityCritical,
	}
}

func (d *reentrancy) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		if fn.Mutability == solidity.MutabilityView || fn.Mutability == solidity.MutabilityPure {
			continue
		}
		if f, ok := d.inspectFunction(u, fn); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

func (d *reentrancy) inspectFunction(u *solidity.ContractUnit, fn *solidity.Function) (model.Finding, bool) {
	stmts := fn.Statements
	for i, call := range stmts {
		if call.Kind != solidity.StmtExternalCall {
			continue
		}
		if call.Call != solidity.CallLowLevel && call.Call != solidity.CallDelegate {
			// transfer/send forward a fixed gas stipend; re-entering through
			// them is not flagged to keep noise down
			continue
		}
		for j := i + 1; j < len(stmts); j++ {
			write := stmts[j]
			if write.Kind != solidity.StmtStorageWrite {
				continue
			}
			if !writeFeedsCall(stmts, i, call, write.VarRef) {
				continue
			}
			f := NewFinding(d.Meta(), u, fn, call.Line,
				fmt.Sprintf("external call precedes the update of %q that gates it; the callee can re-enter before effects are recorded", write.VarRef),
				"Apply checks-effects-interactions: update state before the external call, or add a reentrancy guard.",
				[]string{"SWC-107"}, 0.8)
			return f, true
		}
	}
	return model.Finding{}, false
}

// writeFeedsCall reports whether the variable written after the call is read
// to compute the call's value/arguments or appears in a guard preceding it.
func writeFeedsCall(stmts []solidity.Statement, callIdx int, call solidity.Statement, varName string) bool {
	if solidity.ContainsWord(call.Raw, varName) {
		return true
	}
	for k := 0; k < callIdx; k++ {
		if stmts[k].Kind == solidity.StmtRequire && solidity.ContainsWord(stmts[k].Cond, varName) {
			return true
		}
	}
	return false
}
