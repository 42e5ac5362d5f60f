package gas

import (
	"fmt"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/detectors"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// publicToExternal flags public functions never called from inside the unit;
// external lets arguments stay in calldata.
type publicToExternal struct{}

func (d *publicToExternal) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "GAS-PUBLIC-EXTERNAL",
		Title:    "public function never called internally",
		Category: model.CategoryVisibilityOptimization,
		Severity: model.SeverityInfo,
	}
}

func (d *publicToExternal) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		if fn.Visibility != solidity.VisibilityPublic || fn.IsConstructor || fn.IsReceiveOrFallback {
			continue
		}
		if calledInternally(u, fn.Name) {
			continue
		}
		f := detectors.NewFinding(d.Meta(), u, fn, fn.Line,
			fmt.Sprintf("public function %s is never called from inside the contract", fn.Name),
			"Declare the function external so its arguments are read from calldata instead of copied to memory.",
			nil, 0.6)
		f.SavingsGas = 200
		findings = append(findings, f)
	}
	return findings
}

func calledInternally(u *solidity.ContractUnit, name string) bool {
	needle := name + "("
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		for _, st := range fn.Statements {
			raw := st.Raw
			if !solidity.ContainsWord(raw, name) {
				continue
			}
			// a this.name(...) call is an external self-call, not internal use
			idx := 0
			for {
				p := indexFrom(raw, needle, idx)
				if p < 0 {
					break
				}
				if p < 5 || raw[p-5:p] != "this." {
					return true
				}
				idx = p + len(needle)
			}
		}
	}
	return false
}

func indexFrom(s, sub string, from int) int {
	if from >= len(s) {
		return -1
	}
	for i := from; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
