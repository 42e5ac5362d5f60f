package report

import (
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
)

// WriteSARIF renders the report model as SARIF 2.1.0.
func WriteSARIF(rm *model.ReportModel, w io.Writer) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI("secudity", "https://github.com/secudityLabs/secudity-audit-toolkit")
	run.AutomationDetails = sarif.NewRunAutomationDetails().WithGUID(rm.RunID)

	for _, f := range rm.Findings {
		rule := run.AddRule(f.RuleID).
			WithDescription(f.Message).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: toSarifLevel(f.Severity)})

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f.File)).
				WithRegion(sarif.NewRegion().WithStartLine(f.Line)),
		)
		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(f.Message)).
			WithLevel(toSarifLevel(f.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	doc.AddRun(run)
	return doc.PrettyWrite(w)
}

func toSarifLevel(s model.Severity) string {
	switch s {
	case model.SeverityCritical, model.SeverityHigh:
		return "error"
	case model.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
