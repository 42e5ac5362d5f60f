package detectors

import (
	"runtime"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/util"
)

// Detector is one pure rule: it inspects a single contract unit and returns
// zero or more findings. Detectors hold no mutable state and may run in any
// order or concurrently; output ordering is imposed by the aggregator.
type Detector interface {
	Meta() model.RuleMeta
	Inspect(unit *solidity.ContractUnit) []model.Finding
}

type Registry struct {
	detectors []Detector
	log       hclog.Logger
}

func NewRegistry(log hclog.Logger) *Registry {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Registry{log: log}
}

func (r *Registry) Register(d Detector) { r.detectors = append(r.detectors, d) }

// RegisterBuiltin installs the security rule catalog.
func (r *Registry) RegisterBuiltin() {
	r.Register(&reentrancy{})
	r.Register(&missingAccessControl{})
	r.Register(&txOriginAuth{})
	r.Register(&uncheckedCallReturn{})
	r.Register(&timestampDependence{})
	r.Register(&unsafeDelegatecall{})
	r.Register(&lockedEther{})
}

func (r *Registry) Detectors() []Detector { return r.detectors }

// Run evaluates every detector against every unit concurrently and returns
// the merged findings. A panicking rule aborts only its own contribution.
func (r *Registry) Run(units []solidity.ContractUnit) []model.Finding {
	cpu := runtime.NumCPU()
	if cpu < 2 {
		cpu = 2
	}
	type res struct{ fs []model.Finding }
	ch := make(chan res, len(r.detectors)*len(units))
	var wg sync.WaitGroup
	sem := make(chan struct{}, cpu)
	for _, d := range r.detectors {
		for i := range units {
			d, u := d, &units[i]
			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				defer func() {
					if rec := recover(); rec != nil {
						r.log.Error("detector panicked; dropping its findings for this unit",
							"rule", d.Meta().ID, "contract", u.Name, "panic", rec)
						ch <- res{}
					}
				}()
				ch <- res{fs: d.Inspect(u)}
			}()
		}
	}
	wg.Wait()
	close(ch)
	var out []model.Finding
	for r := range ch {
		out = append(out, r.fs...)
	}
	return out
}

// NewFinding builds a finding bound to a unit and optionally a function,
// carrying the declaration indexes the aggregator sorts on.
func NewFinding(meta model.RuleMeta, u *solidity.ContractUnit, fn *solidity.Function, line int, msg, remediation string, refs []string, confidence float64) model.Finding {
	f := model.Finding{
		RuleID:        meta.ID,
		Category:      meta.Category,
		Severity:      meta.Severity,
		Confidence:    confidence,
		File:          u.File,
		Contract:      u.Name,
		Line:          line,
		Snippet:       util.ExtractSnippet(u.Source, line, 4),
		Message:       msg,
		Remediation:   remediation,
		References:    refs,
		ContractIndex: u.Index,
		FunctionIndex: -1,
	}
	if fn != nil {
		f.Function = fn.Name
		f.FunctionIndex = fn.Index
	}
	f.Fingerprint = util.Fingerprint(meta.ID, u.File, line, u.Name+"/"+f.Function)
	return f
}
