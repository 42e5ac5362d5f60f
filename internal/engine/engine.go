package engine

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/config"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/detectors"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/gas"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/report"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/solidity"
)

// Source is one in-memory source unit to scan. All I/O happens in the CLI
// layer; the engine only sees text.
type Source struct {
	Path    string
	Content string
}

type Engine struct {
	security *detectors.Registry
	gas      *detectors.Registry
	cfg      config.Config
	log      hclog.Logger
}

func New(cfg config.Config, log hclog.Logger) *Engine {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	sec := detectors.NewRegistry(log.Named("security"))
	sec.RegisterBuiltin()
	return &Engine{
		security: sec,
		gas:      gas.NewCatalog(log.Named("gas")),
		cfg:      cfg,
		log:      log,
	}
}

func (e *Engine) SecurityCatalog() *detectors.Registry { return e.security }
func (e *Engine) GasCatalog() *detectors.Registry      { return e.gas }

// ExtractContracts parses one source unit into contract units plus any parse
// warnings. It never fails; warnings stand in for unparseable regions.
func ExtractContracts(sourceText, fileIdentifier string) ([]solidity.ContractUnit, []model.Finding) {
	return solidity.Extract(sourceText, fileIdentifier)
}

// RunAllDetectors evaluates both catalogs against the units and aggregates
// the result. Rule evaluation is concurrent; the aggregate happens after the
// join barrier inside each registry run.
func (e *Engine) RunAllDetectors(units []solidity.ContractUnit, warnings []model.Finding) *model.ReportModel {
	return e.run(units, warnings, nil)
}

func (e *Engine) run(units []solidity.ContractUnit, warnings []model.Finding, sources []Source) *model.ReportModel {
	security := e.security.Run(units)
	security = append(security, warnings...)
	gasFindings := e.gas.Run(units)

	security = e.applyFilters(security, sources)
	gasFindings = e.applyFilters(gasFindings, sources)
	return report.Aggregate(security, gasFindings)
}

// Scan extracts every source concurrently, then runs the detector catalogs.
// Cancellation abandons not-yet-extracted sources; units already extracted
// are still analyzed and reported.
func (e *Engine) Scan(ctx context.Context, sources []Source) *model.ReportModel {
	start := time.Now()

	type extracted struct {
		units    []solidity.ContractUnit
		warnings []model.Finding
	}
	results := make([]extracted, len(sources))

	cpu := runtime.NumCPU()
	if cpu < 2 {
		cpu = 2
	}
	sem := make(chan struct{}, cpu)
	var wg sync.WaitGroup
	for i := range sources {
		if ctx.Err() != nil {
			e.log.Warn("scan cancelled; reporting partial results", "remaining", len(sources)-i)
			break
		}
		i := i
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			units, warnings := solidity.Extract(sources[i].Content, sources[i].Path)
			results[i] = extracted{units: units, warnings: warnings}
		}()
	}
	wg.Wait()

	var units []solidity.ContractUnit
	var warnings []model.Finding
	for _, r := range results {
		units = append(units, r.units...)
		warnings = append(warnings, r.warnings...)
	}
	// renumber declaration order globally so the aggregator's ordering spans
	// files deterministically
	for i := range units {
		units[i].Index = i
	}

	rm := e.run(units, warnings, sources)
	rm.Elapsed = time.Since(start)
	e.log.Debug("scan complete", "sources", len(sources), "contracts", len(units), "findings", rm.Summary.Total)
	return rm
}

func (e *Engine) applyFilters(findings []model.Finding, sources []Source) []model.Finding {
	findings = filterBySeverity(findings, e.cfg)
	findings = filterByRules(findings, e.cfg)
	findings = applyIgnores(findings, e.cfg)
	if sources != nil {
		findings = suppressInline(findings, sources)
	}
	return findings
}
