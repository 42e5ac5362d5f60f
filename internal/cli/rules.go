package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/config"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/engine"
)

func newRulesCmd(log hclog.Logger) *cobra.Command {
	cmd := &cobra.Command{Use: "rules", Short: "List available rules"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List security and gas detectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := engine.New(config.Default(), log)
			for _, d := range eng.SecurityCatalog().Detectors() {
				m := d.Meta()
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", m.ID, m.Severity, m.Title)
			}
			for _, d := range eng.GasCatalog().Detectors() {
				m := d.Meta()
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", m.ID, m.Severity, m.Title)
			}
			return nil
		},
	})
	return cmd
}
