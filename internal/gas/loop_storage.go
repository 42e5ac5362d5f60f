package gas

import (
	"fmt"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/detectors"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// loopStorageRead flags state variables read inside loop bodies; each storage
// read costs roughly 2100 gas and can usually be cached in memory.
type loopStorageRead struct{}

func (d *loopStorageRead) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "GAS-LOOP-STORAGE",
		Title:    "Storage read inside loop",
		Category: model.CategoryGasLoopStorageRead,
		Severity: model.SeverityInfo,
	}
}

func (d *loopStorageRead) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		seen := map[string]bool{}
		for _, st := range fn.Statements {
			if !st.InLoop || len(st.Reads) == 0 {
				continue
			}
			for _, name := range st.Reads {
				if seen[name] {
					continue
				}
				seen[name] = true
				f := detectors.NewFinding(d.Meta(), u, fn, st.Line,
					fmt.Sprintf("state variable %q is read inside a loop", name),
					"Cache the value in a memory variable before the loop and write it back once after.",
					nil, 0.6)
				f.SavingsGas = 2100
				findings = append(findings, f)
			}
		}
	}
	return findings
}
