package gas

import (
	"fmt"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/detectors"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// constantCandidate flags mutable state variables that are never reassigned
// after construction; constant/immutable replaces storage reads with
// bytecode constants.
type constantCandidate struct{}

func (d *constantCandidate) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "GAS-CONSTANT-CANDIDATE",
		Title:    "State variable never reassigned after construction",
		Category: model.CategoryConstantCandidate,
		Severity: model.SeverityLow,
	}
}

func (d *constantCandidate) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for _, sv := range u.StateVars {
		if sv.Mutability != solidity.VarMutable {
			continue
		}
		if !sv.HasInitializer && !writtenInConstructor(u, sv.Name) {
			continue // never set at all; nothing to freeze
		}
		if writtenOutsideConstructor(u, sv.Name) {
			continue
		}
		keyword := "immutable"
		if sv.HasInitializer {
			keyword = "constant"
		}
		f := detectors.NewFinding(d.Meta(), u, nil, sv.Line,
			fmt.Sprintf("state variable %q is only set during construction", sv.Name),
			fmt.Sprintf("Mark %q as %s to avoid a storage read on every access.", sv.Name, keyword),
			nil, 0.7)
		f.SavingsGas = 2100
		findings = append(findings, f)
	}
	return findings
}

func writtenInConstructor(u *solidity.ContractUnit, name string) bool {
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		if !fn.IsConstructor {
			continue
		}
		for _, st := range fn.Statements {
			if st.Kind == solidity.StmtStorageWrite && st.VarRef == name {
				return true
			}
		}
	}
	return false
}

func writtenOutsideConstructor(u *solidity.ContractUnit, name string) bool {
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		if fn.IsConstructor {
			continue
		}
		for _, st := range fn.Statements {
			if st.Kind == solidity.StmtStorageWrite && st.VarRef == name {
				return true
			}
		}
	}
	return false
}
