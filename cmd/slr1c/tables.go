package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/rosed"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Yuk1no000/slr1-project/lr"
)

var tablesFlags = struct {
	states *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tables [grammar file]",
		Short:   "Show FIRST and FOLLOW sets, the LR(0) automaton and the SLR(1) tables of a grammar",
		Example: `  slr1c tables grammar/while.grammar --dump-dir dump`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTables,
	}
	tablesFlags.states = cmd.Flags().Bool("states", true, "print the item sets of the automaton")
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	g, err := loadGrammar(args)
	if err != nil {
		return err
	}
	pterm.Info.Printf("grammar %s\n", g.Name)
	pterm.Println(g.String())
	ga := lr.Analysis(g)
	pterm.Println(firstFollowTable(ga))
	gen := lr.NewTableGenerator(ga)
	err = gen.CreateTables()
	if *tablesFlags.states {
		pterm.Info.Printf("LR(0) automaton with %d states\n", gen.CFSM().Size())
		pterm.DefaultTree.WithRoot(cfsmTree(g, gen.CFSM())).Render()
	}
	if cfg.DumpDir != "" {
		if derr := writeFile(cfg.DumpDir, g.Name+".dot", func(f *os.File) error {
			return gen.CFSM().CFSM2GraphViz(f)
		}); derr != nil {
			return derr
		}
	}
	if err != nil {
		for _, c := range gen.Conflicts {
			pterm.Error.Println(c.Error())
		}
		return fmt.Errorf("%d conflict(s) in grammar %s", len(gen.Conflicts), g.Name)
	}
	tables := gen.Tables()
	pterm.Info.Println("SLR(1) tables")
	pterm.Println(tables.String())
	if cfg.DumpDir != "" {
		if err = writeFile(cfg.DumpDir, g.Name+"-action.html", func(f *os.File) error {
			return tables.ActionTableAsHTML(f)
		}); err != nil {
			return err
		}
		return writeFile(cfg.DumpDir, g.Name+"-goto.html", func(f *os.File) error {
			return tables.GotoTableAsHTML(f)
		})
	}
	return nil
}

// firstFollowTable renders FIRST and FOLLOW of every non-terminal.
func firstFollowTable(ga *lr.LRAnalysis) string {
	data := [][]string{{"non-terminal", "FIRST", "FOLLOW"}}
	for _, A := range ga.Grammar().NonTerminals() {
		data = append(data, []string{
			A.Name,
			fmt.Sprintf("%v", ga.First(A)),
			fmt.Sprintf("%v", ga.Follow(A)),
		})
	}
	return rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// cfsmTree creates a tree of states, listing items and transitions per state.
func cfsmTree(g *lr.Grammar, dfa *lr.CFSM) pterm.TreeNode {
	ll := pterm.LeveledList{}
	for _, s := range dfa.States() {
		label := fmt.Sprintf("state %d", s.ID)
		if s.Accept {
			label += " (accept)"
		}
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: label})
		for _, item := range s.Items() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: item.String()})
		}
		for _, syms := range [][]*lr.Symbol{g.Terminals(), g.NonTerminals()} {
			for _, A := range syms {
				if next := s.Next(A); next != nil {
					ll = append(ll, pterm.LeveledListItem{
						Level: 1,
						Text:  fmt.Sprintf("on %s goto %d", A.Name, next.ID),
					})
				}
			}
		}
	}
	return pterm.NewTreeFromLeveledList(ll)
}
