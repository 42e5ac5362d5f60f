package app

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/cli"
)

func BuildRoot() *cobra.Command {
	log := hclog.New(&hclog.LoggerOptions{
		Name:   "secudity",
		Level:  hclog.LevelFromString(os.Getenv("SECUDITY_LOG_LEVEL")),
		Output: os.Stderr,
	})
	root := &cobra.Command{Use: "secudity", Short: "Smart contract security and gas analysis"}
	cli.AddCommands(root, log)
	return root
}
