// Package gas holds the efficiency rule catalog. It shares the detector
// runner with the security catalog but reports at informational/low severity
// with estimated-savings hints.
package gas

import (
	"github.com/hashicorp/go-hclog"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/detectors"
)

// NewCatalog returns a registry loaded with the gas rules.
func NewCatalog(log hclog.Logger) *detectors.Registry {
	r := detectors.NewRegistry(log)
	r.Register(&loopStorageRead{})
	r.Register(&lengthInLoop{})
	r.Register(&postIncrement{})
	r.Register(&stringRequireMessage{})
	r.Register(&publicToExternal{})
	r.Register(&constantCandidate{})
	r.Register(&storagePacking{})
	return r
}
