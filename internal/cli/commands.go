package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/config"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/engine"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/report"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/tui"
)

func AddCommands(root *cobra.Command, log hclog.Logger) {
	root.AddCommand(newScanCmd(log))
	root.AddCommand(newQuickCmd(log))
	root.AddCommand(newRulesCmd(log))
	root.AddCommand(newInitCmd())
}

func newScanCmd(log hclog.Logger) *cobra.Command {
	var (
		format     string
		outputFile string
		failOn     string
		useTUI     bool
	)
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan Solidity sources for vulnerabilities and gas issues",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			rm, err := runScan(cmd, log, path)
			if err != nil {
				return err
			}
			if useTUI {
				return tui.Run(rm)
			}

			var w io.Writer = cmd.OutOrStdout()
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			switch format {
			case "json":
				data, err := json.MarshalIndent(rm, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(data))
			case "sarif":
				if err := report.WriteSARIF(rm, w); err != nil {
					return err
				}
			case "markdown":
				if err := report.WriteMarkdown(rm, path, w); err != nil {
					return err
				}
			default:
				printTable(w, rm)
			}

			if failOn != "" {
				threshold := model.ParseSeverity(failOn)
				for _, f := range rm.Findings {
					if model.SeverityGTE(f.Severity, threshold) {
						return fmt.Errorf("findings at or above %s severity", threshold)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|markdown|sarif")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&failOn, "fail-on", "high", "Exit non-zero when a finding of this severity or higher exists (empty disables)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Browse findings interactively")
	return cmd
}

func newQuickCmd(log hclog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "quick [path]",
		Short: "Scan and print only the severity summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			rm, err := runScan(cmd, log, path)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), rm)
			return nil
		},
	}
}

func runScan(cmd *cobra.Command, log hclog.Logger, path string) (*model.ReportModel, error) {
	root := path
	if info, err := os.Stat(path); err != nil {
		return nil, err
	} else if !info.IsDir() {
		root = filepath.Dir(path)
	}
	cfg, cfgPath, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", cfgPath, err)
	}
	sources, err := discoverSources(path)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no Solidity sources found under %s", path)
	}
	log.Info("scanning", "path", path, "sources", len(sources))
	eng := engine.New(cfg, log)
	return eng.Scan(cmd.Context(), sources), nil
}

// discoverSources walks the target collecting .sol files, honoring the
// root's .gitignore. Paths are sorted so scans are reproducible.
func discoverSources(path string) ([]engine.Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	var paths []string
	if !info.IsDir() {
		paths = []string{path}
	} else {
		var ign *gitignore.GitIgnore
		if gi, err := gitignore.CompileIgnoreFile(filepath.Join(path, ".gitignore")); err == nil {
			ign = gi
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if d.Name() == ".git" || d.Name() == "node_modules" {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(d.Name()), ".sol") {
				return nil
			}
			if rel, relErr := filepath.Rel(path, p); relErr == nil && ign != nil && ign.MatchesPath(rel) {
				return nil
			}
			paths = append(paths, p)
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(paths)
	}
	sources := make([]engine.Source, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, engine.Source{Path: filepath.ToSlash(p), Content: string(b)})
	}
	return sources, nil
}

func printTable(w io.Writer, rm *model.ReportModel) {
	printSummary(w, rm)
	for _, f := range rm.Findings {
		loc := f.Contract
		if f.Function != "" {
			loc += "." + f.Function
		}
		fmt.Fprintf(w, "- %s [%s] %s:%d %s %s\n", f.RuleID, f.Severity, f.File, f.Line, loc, f.Message)
	}
}

func printSummary(w io.Writer, rm *model.ReportModel) {
	s := rm.Summary
	fmt.Fprintf(w, "Findings: %d (critical=%d high=%d medium=%d low=%d info=%d) elapsed %s\n",
		s.Total, s.Critical, s.High, s.Medium, s.Low, s.Informational, rm.Elapsed)
	if s.GasSavings > 0 {
		fmt.Fprintf(w, "Estimated gas savings available: ~%d\n", s.GasSavings)
	}
}
