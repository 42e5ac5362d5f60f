package detectors

import (
	"fmt"
	"strings"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// lockedEther flags contracts that can receive value but have no statement
// anywhere in the unit that sends it out again.
type lockedEther struct{}

func (d *lockedEther) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "SOL-LOCKED-ETHER",
		Title:    "Contract accepts ether but cannot release it",
		Category: model.CategoryLockedEther,
		Severity: model.SeverityMedium,
	}
}

func (d *lockedEther) Inspect(u *solidity.ContractUnit) []model.Finding {
	if u.Kind != "contract" || !u.AcceptsEther() {
		return nil
	}
	line := u.Line
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		if fn.Mutability == solidity.MutabilityPayable && line == u.Line {
			line = fn.Line
		}
		for _, st := range fn.Statements {
			if st.Kind == solidity.StmtExternalCall && (st.Call.ValueBearing() || st.CallValue != "") {
				return nil
			}
			if strings.Contains(st.Raw, "selfdestruct") {
				return nil
			}
		}
	}
	f := NewFinding(d.Meta(), u, nil, line,
		fmt.Sprintf("contract %s accepts ether but no function transfers value out", u.Name),
		"Add a withdrawal path, or reject incoming value by removing payable entry points.",
		[]string{"SWC-132"}, 0.7)
	return []model.Finding{f}
}
