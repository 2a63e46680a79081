package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"nominalc/internal/ast"
	"nominalc/internal/core"
	"nominalc/internal/diag"
	"nominalc/internal/diagfmt"
	"nominalc/internal/scenario"
	"nominalc/internal/source"
	"nominalc/internal/symbols"
)

var (
	scenarioListOnly bool
	scenarioAll      bool
)

func init() {
	scenarioCmd.Flags().BoolVar(&scenarioListOnly, "list", false, "list available scenarios and exit")
	scenarioCmd.Flags().BoolVar(&scenarioAll, "all", false, "run every cataloged scenario concurrently")
}

var scenarioCmd = &cobra.Command{
	Use:   "scenario [name]",
	Short: "Attribute one of spec.md's named end-to-end scenarios",
	Long:  "scenario builds a hand-constructed compilation unit for a named scenario (s1, s6, ...) and runs it through the Attribute pass, printing whatever diagnostics the pipeline reports.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if scenarioListOnly || (len(args) == 0 && !scenarioAll) {
			listScenarios(cmd)
			return nil
		}
		if scenarioAll {
			return runAllScenarios(cmd)
		}
		return runScenario(cmd, args[0])
	},
}

var scenarioHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

func listScenarios(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	if resolveColor(cmd) {
		fmt.Fprintln(out, scenarioHeaderStyle.Render(fmt.Sprintf("%-4s %-20s %s", "NAME", "TITLE", "DESCRIPTION")))
	} else {
		fmt.Fprintf(out, "%-4s %-20s %s\n", "NAME", "TITLE", "DESCRIPTION")
	}
	for _, info := range scenario.Catalog {
		fmt.Fprintf(out, "%-4s %-20s %s\n", info.Name, info.Title, info.Description)
	}
}

// attributeScenario builds and attributes one named scenario on its own
// Pipeline, then runs the advisory Analyzer and TransTypes erasure over
// every class the scenario declares, so the CLI's own entry point exercises
// the full Attribute/Analyze/EraseClass surface core.Pipeline documents
// (not just Attribute). It returns the diagnostics reported and the
// scenario's FileSet so callers can resolve real line:col positions.
func attributeScenario(cmd *cobra.Command, name string) ([]diag.Diagnostic, *source.FileSet, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	bag := diag.NewBag(256)
	p := core.New(core.WithReporter(bag), core.WithConfig(cfg))

	unit, files, err := scenario.Build(name, p.Names)
	if err != nil {
		return nil, nil, err
	}
	p.Attribute(unit)
	p.Analyze(unit)
	for _, classSym := range topLevelClasses(p, unit) {
		p.EraseClass(classSym)
	}
	return bag.Items(), files, nil
}

// topLevelClasses resolves every top-level class/interface a scenario's
// compilation unit declares back to its symbols.SymbolID via Pipeline's own
// FindSymbol, so callers can drive EraseClass without reaching into
// declareUnit's private bookkeeping.
func topLevelClasses(p *core.Pipeline, unit *ast.Unit) []symbols.SymbolID {
	if !unit.Root.IsValid() {
		return nil
	}
	root := unit.Decls.Get(unit.Root)
	var out []symbols.SymbolID
	for _, id := range root.Children {
		d := unit.Decls.Get(id)
		if d.Kind != ast.DeclClass && d.Kind != ast.DeclInterface {
			continue
		}
		name, ok := p.Names.Lookup(d.Name)
		if !ok {
			continue
		}
		if sym := p.FindSymbol(name); sym != symbols.NoSymbolID {
			out = append(out, sym)
		}
	}
	return out
}

func runScenario(cmd *cobra.Command, name string) error {
	items, files, err := attributeScenario(cmd, name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintf(out, "scenario %q attributed with no diagnostics\n", name)
		return nil
	}
	diagfmt.Pretty(out, items, diagfmt.Opts{Color: resolveColor(cmd), Files: files})

	for _, d := range items {
		if d.Severity == diag.SevError {
			return fmt.Errorf("scenario %q reported %d diagnostic(s)", name, len(items))
		}
	}
	return nil
}

// runAllScenarios attributes every cataloged scenario concurrently, the
// same errgroup fan-out shape the teacher's directory-wide diagnose pass
// uses per-file, just with one scenario standing in for one file.
func runAllScenarios(cmd *cobra.Command) error {
	results := make([][]diag.Diagnostic, len(scenario.Catalog))
	files := make([]*source.FileSet, len(scenario.Catalog))

	g, _ := errgroup.WithContext(cmd.Context())
	for i, info := range scenario.Catalog {
		g.Go(func(i int, name string) func() error {
			return func() error {
				items, fs, err := attributeScenario(cmd, name)
				if err != nil {
					return err
				}
				results[i] = items
				files[i] = fs
				return nil
			}
		}(i, info.Name))
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color := resolveColor(cmd)
	anyErrors := false
	for i, info := range scenario.Catalog {
		items := results[i]
		if len(items) == 0 {
			fmt.Fprintf(out, "%s: attributed with no diagnostics\n", info.Name)
			continue
		}
		fmt.Fprintf(out, "%s:\n", info.Name)
		diagfmt.Pretty(out, items, diagfmt.Opts{Color: color, Files: files[i]})
		for _, d := range items {
			if d.Severity == diag.SevError {
				anyErrors = true
			}
		}
	}
	if anyErrors {
		return fmt.Errorf("one or more scenarios reported errors")
	}
	return nil
}
