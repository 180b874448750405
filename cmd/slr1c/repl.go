package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Yuk1no000/slr1-project/lr/slr"
	"github.com/Yuk1no000/slr1-project/tac"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Translate and run while-programs interactively",
		Long: `repl reads one program per line, prints its quadruples and runs them.
Variables keep their values between lines. Commands:
  :vars    print all variables
  :tables  print the SLR(1) tables
  :reset   forget all variables
  :quit    leave the REPL (or <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

// Intp is the interactive interpreter.
type Intp struct {
	tr     *translator
	parser *slr.Parser
	ip     *tac.Interpreter
	repl   *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	g, err := loadGrammar(nil)
	if err != nil {
		return err
	}
	tr, err := newTranslator(g)
	if err != nil {
		return err
	}
	repl, err := readline.NewEx(&readline.Config{
		Prompt:          "slr1> ",
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{
		tr:     tr,
		parser: slr.NewParser(tr.tables, tr.sem),
		ip:     newInterpreter(),
		repl:   repl,
	}
	pterm.Info.Printf("grammar %s, quit with <ctrl>D\n", g.Name)
	intp.REPL()
	return nil
}

func newInterpreter() *tac.Interpreter {
	ip := tac.NewInterpreter()
	ip.MaxSteps = cfg.MaxSteps
	return ip
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval executes a command or translates and runs a program, given on a line
// by itself. It returns true if the user wants to quit.
func (intp *Intp) Eval(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":vars":
		printVariables(intp.ip.Runtime)
		return false
	case ":tables":
		pterm.Println(intp.tr.tables.String())
		return false
	case ":reset":
		intp.ip = newInterpreter()
		return false
	}
	code, err := intp.tr.translate(intp.parser, line, false)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	pterm.Print(code.String())
	if err = intp.ip.Run(code); err != nil {
		pterm.Error.Println(err.Error())
	}
	return false
}
