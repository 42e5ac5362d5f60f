package main

import (
	"os"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/app"
)

func main() {
	if err := app.BuildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
