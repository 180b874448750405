package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/rosed"
)

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID,
			dotEscaper.Replace(edge.label.Name))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

// characters with a special meaning in record labels
var dotEscaper = strings.NewReplacer(
	`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func forGraphviz(S *ItemSet) string {
	var b strings.Builder
	for _, i := range S.Items() {
		b.WriteString(dotEscaper.Replace(i.String()))
		b.WriteString(`\l`)
	}
	return b.String()
}

// === HTML and Text Export ==================================================

// GotoTableAsHTML exports the GOTO-table in HTML-format.
func (t *Tables) GotoTableAsHTML(w io.Writer) error {
	return t.asHTML("GOTO", t.g.nonterminals, w, func(state int, A *Symbol) string {
		if to, ok := t.Goto(state, A.Name); ok {
			return fmt.Sprintf("%d", to)
		}
		return ""
	})
}

// ActionTableAsHTML exports the SLR(1) ACTION-table in HTML-format.
func (t *Tables) ActionTableAsHTML(w io.Writer) error {
	return t.asHTML("ACTION", t.g.terminals, w, func(state int, a *Symbol) string {
		return t.Action(state, a.Name).String()
	})
}

func (t *Tables) asHTML(tname string, cols []*Symbol, w io.Writer, cell func(int, *Symbol) string) error {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "%s table for grammar %s<p>", tname, t.g.Name)
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range cols {
		fmt.Fprintf(&b, "<td>%s</td>", htmlEscaper.Replace(A.Name))
	}
	b.WriteString("</tr>\n")
	for state := 0; state < t.StateCount(); state++ {
		fmt.Fprintf(&b, "<tr><td>state %d</td>\n", state)
		for _, A := range cols {
			td := cell(state, A)
			if td == "" {
				td = "&nbsp;"
			}
			fmt.Fprintf(&b, "<td>%s</td>\n", td)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var htmlEscaper = strings.NewReplacer(`<`, "&lt;", `>`, "&gt;", `&`, "&amp;")

// String renders ACTION and GOTO side by side as a text table, one row per
// state, terminals first.
func (t *Tables) String() string {
	data := [][]string{}
	header := []string{"state"}
	for _, a := range t.g.terminals {
		header = append(header, a.Name)
	}
	for _, A := range t.g.nonterminals {
		if A == t.g.StartSymbol() {
			continue
		}
		header = append(header, A.Name)
	}
	data = append(data, header)
	for state := 0; state < t.StateCount(); state++ {
		row := []string{fmt.Sprintf("%d", state)}
		for _, a := range t.g.terminals {
			row = append(row, t.Action(state, a.Name).String())
		}
		for _, A := range t.g.nonterminals {
			if A == t.g.StartSymbol() {
				continue
			}
			cell := ""
			if to, ok := t.Goto(state, A.Name); ok {
				cell = fmt.Sprintf("%d", to)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return rosed.Edit("").
		InsertTableOpts(0, data, 120, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
