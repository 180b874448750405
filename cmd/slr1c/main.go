/*
Command slr1c builds SLR(1) parse tables for a grammar and translates
programs of the while-language into quadruples.

	slr1c tables grammar/while.grammar
	slr1c parse -e "while ( a > b ) { a = a + -1 }"
	slr1c run prog.while
	slr1c repl

Settings are read from a TOML file (default slr1.toml, if present).
Command line flags take precedence over settings from the file.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Yuk1no000/slr1-project/lr"
	"github.com/Yuk1no000/slr1-project/lr/scanner"
	"github.com/Yuk1no000/slr1-project/lr/scanner/lexmach"
	"github.com/Yuk1no000/slr1-project/tac"
)

// tracer traces with key 'slr1.cli'.
func tracer() tracing.Trace {
	return tracing.Select("slr1.cli")
}

var cfg = defaultConfig()

var configPath string

var cache = lr.NewTableCache()

var rootCmd = &cobra.Command{
	Use:   "slr1c",
	Short: "SLR(1) table builder and translator for the while-language",
	Long: `slr1c provides these features:
- Computes FIRST and FOLLOW sets, the LR(0) automaton and SLR(1) tables of a grammar.
- Translates while-programs into quadruples.
- Interprets the quadruples.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	fs := rootCmd.PersistentFlags()
	fs.StringVarP(&configPath, "config", "c", "", "configuration file (default slr1.toml)")
	fs.StringP("grammar", "g", "", "grammar file")
	fs.StringP("trace", "t", "", "trace level [Debug|Info|Error]")
	fs.String("scanner", "", "scanner for programs [lexmachine|go]")
	fs.Int("max-steps", 0, "maximum number of instructions executed per run")
	fs.String("dump-dir", "", "directory for Graphviz and HTML exports")
	fs.StringP("output", "o", "", "file to write quadruples to")
	fs.Bool("panic-on-syntax-error", false, "panic on syntax errors (debugging)")
}

func main() {
	initDisplay()
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// setup reads the configuration, publishes global settings to gconf and sets
// up logging for every sub-command.
func setup(cmd *cobra.Command, args []string) error {
	path, explicit := configPath, configPath != ""
	if !explicit {
		path = "slr1.toml"
	}
	c, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	if err = c.override(cmd.Flags()); err != nil {
		return err
	}
	cfg = c
	gconf.Initialize(cfg.globals())
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(cfg.Trace)
	for _, key := range []string{"slr1.cli", "slr1.lr", "slr1.scanner", "slr1.tac"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	gtrace.SyntaxTracer.SetTraceLevel(level)
	tracer().Infof("trace level is %s", cfg.Trace)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// --- Shared helpers --------------------------------------------------------

// loadGrammar reads the grammar file, named either by the first argument or
// by the configuration.
func loadGrammar(args []string) (*lr.Grammar, error) {
	path := cfg.Grammar
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, fmt.Errorf("no grammar file given")
	}
	g, err := lr.ReadGrammarFile(path)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded grammar %s with %d rules", g.Name, g.Size())
	return g, nil
}

// translator bundles everything needed to turn program text into quadruples.
type translator struct {
	g      *lr.Grammar
	tables *lr.Tables
	sem    *tac.Semantics
	lm     *lexmach.LMAdapter
}

func newTranslator(g *lr.Grammar) (*translator, error) {
	tables, err := cache.Tables(g)
	if err != nil {
		return nil, err
	}
	sem, err := tac.Bind(g)
	if err != nil {
		return nil, err
	}
	tr := &translator{g: g, tables: tables, sem: sem}
	if cfg.Scanner != "go" {
		if tr.lm, err = lexmach.NewWhileLanguage(); err != nil {
			return nil, fmt.Errorf("cannot create scanner: %w", err)
		}
	}
	return tr, nil
}

// tokenizer creates a scanner for program text. Scanner errors are collected
// in errs.
func (tr *translator) tokenizer(source string, errs *[]error) (scanner.Tokenizer, error) {
	var scan scanner.Tokenizer
	if tr.lm != nil {
		sc, err := tr.lm.Scanner(source)
		if err != nil {
			return nil, err
		}
		scan = sc
	} else {
		scan = scanner.GoTokenizer(tr.g.Name, strings.NewReader(source))
	}
	scan.SetErrorHandler(func(err error) {
		*errs = append(*errs, err)
	})
	return scanner.SignedNumbers(scan), nil
}

// writeFile creates a file in directory dir and fills it with write.
func writeFile(dir, name string, write func(f *os.File) error) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tracer().Infof("wrote %s", path)
	return f.Close()
}
