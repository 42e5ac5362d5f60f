package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
)

// Aggregate merges security and gas findings into one ordered report model.
// Duplicates on (category, contract, function, line) collapse to the highest
// severity. The output order is a deterministic total order so repeated scans
// of the same source diff cleanly.
func Aggregate(security, gas []model.Finding) *model.ReportModel {
	merged := dedupe(append(append([]model.Finding{}, security...), gas...))

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if ra, rb := model.SeverityRank(a.Severity), model.SeverityRank(b.Severity); ra != rb {
			return ra > rb
		}
		if a.ContractIndex != b.ContractIndex {
			return a.ContractIndex < b.ContractIndex
		}
		if a.FunctionIndex != b.FunctionIndex {
			return a.FunctionIndex < b.FunctionIndex
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.RuleID < b.RuleID
	})

	rm := &model.ReportModel{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Findings:    merged,
	}
	for _, f := range merged {
		switch f.Severity {
		case model.SeverityCritical:
			rm.Summary.Critical++
		case model.SeverityHigh:
			rm.Summary.High++
		case model.SeverityMedium:
			rm.Summary.Medium++
		case model.SeverityLow:
			rm.Summary.Low++
		default:
			rm.Summary.Informational++
		}
		rm.Summary.Total++
		rm.Summary.GasSavings += f.SavingsGas
	}
	return rm
}

type dedupeKey struct {
	file     string
	category model.Category
	contract string
	function string
	line     int
}

// dedupe keeps one finding per key, elevating to the highest severity seen.
// The file is part of the key: identically-named contracts in different
// source units are distinct findings.
func dedupe(in []model.Finding) []model.Finding {
	seen := map[dedupeKey]int{}
	var out []model.Finding
	for _, f := range in {
		k := dedupeKey{f.File, f.Category, f.Contract, f.Function, f.Line}
		if idx, ok := seen[k]; ok {
			if model.SeverityRank(f.Severity) > model.SeverityRank(out[idx].Severity) {
				out[idx].Severity = f.Severity
			}
			if f.SavingsGas > out[idx].SavingsGas {
				out[idx].SavingsGas = f.SavingsGas
			}
			continue
		}
		seen[k] = len(out)
		out = append(out, f)
	}
	return out
}
