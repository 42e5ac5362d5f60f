package detectors

import (
	"fmt"
	"strings"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// missingAccessControl flags public/external state-changing functions that
// mutate an authority-shaped variable without any sender-identity guard.
type missingAccessControl struct{}

var authorityNames = []string{"owner", "admin", "governor", "governance", "operator", "authority", "guardian", "controller"}

func (d *missingAccessControl) Meta() model.RuleMeta {
	return model.RuleMeta{
		ID:       "SOL-ACCESS-CONTROL",
		Title:    "State-changing function without access control",
		Category: model.CategoryMissingAccessControl,
		Severity: model.SeverityCritical,
	}
}

func (d *missingAccessControl) Inspect(u *solidity.ContractUnit) []model.Finding {
	var findings []model.Finding
	for fi := range u.Functions {
		fn := &u.Functions[fi]
		if fn.IsConstructor || fn.IsReceiveOrFallback {
			continue
		}
		if fn.Visibility != solidity.VisibilityPublic && fn.Visibility != solidity.VisibilityExternal {
			continue
		}
		if fn.Mutability == solidity.MutabilityView || fn.Mutability == solidity.MutabilityPure {
			continue
		}
		if guardedByModifier(u, fn) || guardedInBody(fn) {
			continue
		}
		target := sensitiveWrite(u, fn)
		if target == "" {
			continue
		}
		sev := model.SeverityHigh
		if gatesFunds(u, target) {
			sev = model.SeverityCritical
		}
		f := NewFinding(d.Meta(), u, fn, fn.Line,
			fmt.Sprintf("%s/%s writes %q but neither a modifier nor an in-body check restricts the caller", fn.Visibility, fn.Name, target),
			"Guard the function with a sender-identity modifier (e.g. an owner check that reverts) or an explicit require on msg.sender.",
			[]string{"SWC-105", "SWC-106"}, 0.7)
		f.Severity = sev
		findings = append(findings, f)
	}
	return findings
}

// guardedByModifier resolves applied modifiers by name within the unit only;
// inherited modifiers are opaque and cannot vouch for the function.
func guardedByModifier(u *solidity.ContractUnit, fn *solidity.Function) bool {
	for _, name := range fn.Modifiers {
		if m := u.ModifierByName(name); m != nil && m.EnforcesAuth {
			return true
		}
	}
	return false
}

func guardedInBody(fn *solidity.Function) bool {
	for _, st := range fn.Statements {
		if st.Kind != solidity.StmtRequire {
			continue
		}
		if strings.Contains(st.Cond, "msg.sender") || strings.Contains(strings.ToLower(st.Cond), "hasrole") {
			return true
		}
	}
	return false
}

// sensitiveWrite returns the first written state variable that looks like an
// authority reference: address-typed with an authority-ish name, written in
// the constructor, or compared against msg.sender elsewhere in the unit.
func sensitiveWrite(u *solidity.ContractUnit, fn *solidity.Function) string {
	for _, st := range fn.Statements {
		if st.Kind != solidity.StmtStorageWrite {
			continue
		}
		if authorityShaped(u, st.VarRef) {
			return st.VarRef
		}
	}
	return ""
}

func authorityShaped(u *solidity.ContractUnit, name string) bool {
	sv := u.StateVar(name)
	if sv == nil {
		return false
	}
	if strings.HasPrefix(sv.Type, "address") {
		lower := strings.ToLower(name)
		for _, hint := range authorityNames {
			if strings.Contains(lower, hint) {
				return true
			}
		}
	}
	for _, fn := range u.Functions {
		if fn.IsConstructor {
			for _, st := range fn.Statements {
				if st.Kind == solidity.StmtStorageWrite && st.VarRef == name {
					return true
				}
			}
		}
	}
	return comparedAgainstSender(u, name)
}

func comparedAgainstSender(u *solidity.ContractUnit, name string) bool {
	check := func(stmts []solidity.Statement) bool {
		for _, st := range stmts {
			if st.Kind == solidity.StmtRequire &&
				strings.Contains(st.Cond, "msg.sender") && solidity.ContainsWord(st.Cond, name) {
				return true
			}
		}
		return false
	}
	for _, fn := range u.Functions {
		if check(fn.Statements) {
			return true
		}
	}
	for _, m := range u.Modifiers {
		if check(m.Statements) {
			return true
		}
	}
	return false
}

// gatesFunds reports whether the variable is read where value moves: either
// inside a value-bearing call expression, or as a guard in a function that
// performs one. Such variables escalate the finding to critical.
func gatesFunds(u *solidity.ContractUnit, name string) bool {
	for _, fn := range u.Functions {
		transfers := false
		guards := false
		for _, st := range fn.Statements {
			switch {
			case st.Kind == solidity.StmtExternalCall && (st.Call.ValueBearing() || st.CallValue != ""):
				transfers = true
				if solidity.ContainsWord(st.Raw, name) {
					return true
				}
			case st.Kind == solidity.StmtRequire && solidity.ContainsWord(st.Cond, name):
				guards = true
			}
		}
		if transfers && guards {
			return true
		}
	}
	return false
}
