package model

import "time"

type Severity string

const (
	SeverityInfo     Severity = "informational"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityInfo:     1,
	SeverityLow:      2,
	SeverityMedium:   3,
	SeverityHigh:     4,
	SeverityCritical: 5,
}

func ParseSeverity(s string) Severity {
	switch s {
	case string(SeverityCritical):
		return SeverityCritical
	case string(SeverityHigh):
		return SeverityHigh
	case string(SeverityMedium):
		return SeverityMedium
	case string(SeverityLow):
		return SeverityLow
	default:
		return SeverityInfo
	}
}

func SeverityRank(s Severity) int { return severityRank[s] }

func SeverityGTE(a, b Severity) bool { return severityRank[a] >= severityRank[b] }

// Category is the closed set of issue kinds the detectors can report.
type Category string

const (
	CategoryReentrancy             Category = "reentrancy"
	CategoryMissingAccessControl   Category = "missing-access-control"
	CategoryTxOriginAuth           Category = "tx-origin-auth"
	CategoryUncheckedCallReturn    Category = "unchecked-call-return"
	CategoryTimestampDependence    Category = "timestamp-dependence"
	CategoryUnsafeDelegatecall     Category = "unsafe-delegatecall"
	CategoryLockedEther            Category = "locked-ether"
	CategoryParseWarning           Category = "parse-warning"
	CategoryGasLoopStorageRead     Category = "gas-loop-storage-read"
	CategoryStringRequireMessage   Category = "gas-string-require"
	CategoryVisibilityOptimization Category = "gas-visibility"
	CategoryConstantCandidate      Category = "gas-constant-candidate"
	CategoryPostIncrement          Category = "gas-post-increment"
	CategoryStoragePacking         Category = "gas-storage-packing"
	CategoryLengthInLoop           Category = "gas-loop-length"
)

type RuleMeta struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
}

type Finding struct {
	RuleID      string   `json:"ruleId"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Confidence  float64  `json:"confidence"`
	File        string   `json:"file"`
	Contract    string   `json:"contract"`
	Function    string   `json:"function,omitempty"`
	Line        int      `json:"line"`
	Snippet     string   `json:"snippet,omitempty"`
	Message     string   `json:"message"`
	Remediation string   `json:"remediation,omitempty"`
	References  []string `json:"references,omitempty"`
	// SavingsGas is an opaque estimated-savings hint carried by gas findings;
	// it is a ballpark figure, not a simulated cost.
	SavingsGas  int    `json:"savingsGas,omitempty"`
	Fingerprint string `json:"fingerprint"`

	// Declaration indexes backing the aggregator's stable ordering.
	// -1 when the finding is not tied to a declaration.
	ContractIndex int `json:"-"`
	FunctionIndex int `json:"-"`
}

type Summary struct {
	Critical      int `json:"critical"`
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
	Informational int `json:"informational"`
	Total         int `json:"total"`
	// GasSavings sums the savings hints of all gas findings.
	GasSavings int `json:"gasSavings"`
}

// ReportModel is the aggregated, ordered scan output consumed by renderers.
type ReportModel struct {
	RunID       string        `json:"runId"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Findings    []Finding     `json:"findings"`
	Summary     Summary       `json:"summary"`
	Elapsed     time.Duration `json:"elapsed"`
}

// HasBlocking reports whether the scan found anything at High severity or
// above; the CLI maps this to a non-zero exit status.
func (r *ReportModel) HasBlocking() bool {
	return r.Summary.Critical > 0 || r.Summary.High > 0
}
