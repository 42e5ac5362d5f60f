package gas

import (
	"fmt"
	"regexp"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/detectors"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

var rePostIncrement = regexp.MustCompile(`([A-Za-z_$][\w$]*)\+\+`)

// postIncrement flags i++ in loop headers; ++i skips the temporary the
// post-increment form allocates.
type postIncrement struct{}

func (d *postIncrement) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "GAS-POST-INCREMENT",
		Title:    "Post-increment in loop header",
		Category: model.CategoryPostIncrement,
		Severity: model.SeverityInfo,
	}
}

func (d *postIncrement) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		for _, st := range fn.Statements {
			if st.Kind != solidity.StmtLoopHeader {
				continue
			}
			m := rePostIncrement.FindStringSubmatch(st.Raw)
			if m == nil {
				continue
			}
			f := detectors.NewFinding(d.Meta(), u, fn, st.Line,
				fmt.Sprintf("loop uses post-increment %s++", m[1]),
				fmt.Sprintf("Use ++%s instead of %s++ in the loop header.", m[1], m[1]),
				nil, 0.9)
			f.SavingsGas = 5
			findings = append(findings, f)
		}
	}
	return findings
}
