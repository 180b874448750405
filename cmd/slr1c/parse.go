package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	slr1 "github.com/Yuk1no000/slr1-project"
	"github.com/Yuk1no000/slr1-project/lr/scanner"
	"github.com/Yuk1no000/slr1-project/lr/slr"
	"github.com/Yuk1no000/slr1-project/runtime"
	"github.com/Yuk1no000/slr1-project/tac"
)

func init() {
	parseCmd := &cobra.Command{
		Use:     "parse [program file]",
		Short:   "Translate a while-program into quadruples",
		Example: `  slr1c parse -e "while ( a > b ) { a = a + -1 }" --steps`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runParse,
	}
	runCmd := &cobra.Command{
		Use:     "run [program file]",
		Short:   "Translate a while-program and interpret the quadruples",
		Example: `  slr1c run prog.while`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runRun,
	}
	for _, cmd := range []*cobra.Command{parseCmd, runCmd} {
		cmd.Flags().StringP("expr", "e", "", "program text (default: program file or stdin)")
		cmd.Flags().Bool("tokens", false, "print the tokens of the program")
		cmd.Flags().Bool("steps", false, "print every step of the parser")
		rootCmd.AddCommand(cmd)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	code, err := translateSource(cmd, args)
	if err != nil {
		return err
	}
	pterm.Info.Printf("%d quadruples\n", len(code))
	pterm.Print(code.String())
	if cfg.Output != "" {
		return writeFile(".", cfg.Output, func(f *os.File) error {
			_, err := io.WriteString(f, code.String())
			return err
		})
	}
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	code, err := translateSource(cmd, args)
	if err != nil {
		return err
	}
	ip := tac.NewInterpreter()
	ip.MaxSteps = cfg.MaxSteps
	if err = ip.Run(code); err != nil {
		return err
	}
	pterm.Info.Printf("program finished after %d steps\n", ip.Steps())
	printVariables(ip.Runtime)
	return nil
}

// translateSource reads the program and translates it, using the grammar of
// the configuration.
func translateSource(cmd *cobra.Command, args []string) (tac.Code, error) {
	source, err := readSource(cmd, args)
	if err != nil {
		return nil, err
	}
	g, err := loadGrammar(nil)
	if err != nil {
		return nil, err
	}
	tr, err := newTranslator(g)
	if err != nil {
		return nil, err
	}
	tokens, _ := cmd.Flags().GetBool("tokens")
	steps, _ := cmd.Flags().GetBool("steps")
	var opts []slr.Option
	if steps {
		opts = append(opts, slr.WithTrace(func(s slr.Step) {
			pterm.Println(s.String())
		}))
	}
	return tr.translate(slr.NewParser(tr.tables, tr.sem, opts...), source, tokens)
}

// translate scans and parses source with parser p.
func (tr *translator) translate(p *slr.Parser, source string, showTokens bool) (tac.Code, error) {
	var errs []error
	scan, err := tr.tokenizer(source, &errs)
	if err != nil {
		return nil, err
	}
	tokens := scanner.Tokens(scan)
	if len(errs) > 0 {
		return nil, fmt.Errorf("scanner: %w", errs[0])
	}
	if showTokens {
		printTokens(tokens)
	}
	return p.ParseTokens(tokens)
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	if expr, _ := cmd.Flags().GetString("expr"); expr != "" {
		return expr, nil
	}
	var src []byte
	var err error
	if len(args) > 0 {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return "", fmt.Errorf("cannot read program: %w", err)
	}
	return string(src), nil
}

func printTokens(tokens []slr1.Token) {
	var b strings.Builder
	for _, t := range tokens {
		fmt.Fprintf(&b, "%s ", t)
	}
	pterm.Info.Println(strings.TrimSpace(b.String()))
}

func printVariables(rt *runtime.Runtime) {
	rt.Globals().Each(func(name string, tag *runtime.Tag) {
		pterm.Printf("%s = %s\n", name, tag.Value())
	})
}
