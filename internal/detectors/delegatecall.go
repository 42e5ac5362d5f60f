package detectors

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// unsafeDelegatecall flags delegatecall targets sourced from function
// arguments or caller-controlled data. Fixed hex-literal addresses and
// constant/immutable state variables are trusted.
type unsafeDelegatecall struct{}

func (d *unsafeDelegatecall) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "SOL-UNSAFE-DELEGATECALL",
		Title:    "delegatecall to caller-controlled target",
		Category: model.CategoryUnsafeDelegatecall,
		Severity: model.SeverityCritical,
	}
}

func (d *unsafeDelegatecall) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		for _, st := range fn.Statements {
			if st.Kind != solidity.StmtExternalCall || st.Call != solidity.CallDelegate {
				continue
			}
			if !taintedTarget(u, fn, st.CallTarget) {
				continue
			}
			findings = append(findings, NewFinding(d.Meta(), u, fn, st.Line,
				fmt.Sprintf("delegatecall target %q is derived from caller-controlled input", st.CallTarget),
				"delegatecall executes in this contract's storage context; restrict targets to fixed, audited implementations.",
				[]string{"SWC-112"}, 0.75))
		}
	}
	return findings
}

func taintedTarget(u *solidity.ContractUnit, fn *solidity.Function, target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}
	if common.IsHexAddress(strings.Trim(target, "()")) {
		return false // fixed literal address
	}
	if sv := u.StateVar(target); sv != nil && sv.Mutability != solidity.VarMutable {
		return false // constant/immutable pointer
	}
	if strings.Contains(target, "msg.sender") || strings.Contains(target, "msg.data") {
		return true
	}
	for _, p := range fn.Params {
		if solidity.ContainsWord(target, p) {
			return true
		}
	}
	return false
}
