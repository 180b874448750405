package lr

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Arrow separates the left and right hand side of a rule in grammar sources.
const Arrow = "->"

// ReadGrammar reads a grammar in line-oriented text format:
//
//    S' -> S
//    S -> while ( C ) { S }
//    S -> id = E
//
// One production per line, symbols separated by white space. Blank lines and lines
// starting with "//" are ignored. The left hand side of the first production is
// the start symbol; by convention this is the augmenting rule.
func ReadGrammar(name string, r io.Reader) (*Grammar, error) {
	var productions [][]string
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[1] != Arrow {
			return nil, &LoadError{Grammar: name, Line: lineno, Msg: "expected 'LHS -> RHS'"}
		}
		if len(fields) == 2 {
			return nil, &LoadError{Grammar: name, Line: lineno, Msg: "empty right hand side"}
		}
		p := append([]string{fields[0]}, fields[2:]...)
		tracer().Debugf("read production %v", p)
		productions = append(productions, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Grammar: name, Line: lineno, Msg: err.Error()}
	}
	return NewGrammar(name, productions)
}

// ReadGrammarFile reads a grammar from a file, see ReadGrammar. The grammar is
// named after the file's base name.
func ReadGrammarFile(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Grammar: path, Msg: err.Error()}
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadGrammar(name, f)
}
