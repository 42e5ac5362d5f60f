package gas

import (
	"github.com/secudityLabs/secudity-audit-toolkit/internal/detectors"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// storagePacking flags units mixing full-word and sub-word state variables;
// grouping the small ones can merge storage slots. Declaration-order layout
// is not simulated, presence of both shapes is the whole signal.
type storagePacking struct{}

var subWordTypes = map[string]bool{
	"bool": true, "uint8": true, "uint16": true, "uint32": true,
	"uint64": true, "uint128": true, "int8": true, "int16": true,
	"int32": true, "int64": true, "int128": true,
}

func (d *storagePacking) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "GAS-STORAGE-PACKING",
		Title:    "State variables could share storage slots",
		Category: model.CategoryStoragePacking,
		Severity: model.SeverityLow,
	}
}

func (d *storagePacking) Inspect(u *solidity.ContractUnit) []model.Finding {
	if len(u.StateVars) < 2 {
		return nil
	}
	fullWord := false
	subWord := false
	for _, sv := range u.StateVars {
		if sv.Mutability != solidity.VarMutable {
			continue // constants occupy no slot
		}
		switch {
		case sv.Type == "uint256" || sv.Type == "int256":
			fullWord = true
		case subWordTypes[sv.Type]:
			subWord = true
		}
	}
	if !fullWord || !subWord {
		return nil
	}
	f := detectors.NewFinding(d.Meta(), u, nil, u.StateVars[0].Line,
		"full-word and sub-word state variables are mixed; smaller types grouped together can share a 32-byte slot",
		"Declare bool/uint8/uint16-style variables adjacently so they pack into one storage slot.",
		nil, 0.5)
	f.SavingsGas = 20000
	return []model.Finding{f}
}
