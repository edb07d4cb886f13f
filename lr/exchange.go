package lr

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The production exchange format lists one production per line:
//
//     <id>: <lhs> -> <symbol> <symbol> …
//
// An empty right hand side is written as 'ε'. Blank lines and lines starting
// with '#' are ignored when reading. Non-terminals are exactly the names which
// appear on a left hand side; every other name is a terminal.

const arrow = "->"

// WriteProductions writes the production list of g in exchange format.
func WriteProductions(w io.Writer, g *Grammar) error {
	for _, p := range g.productions {
		if _, err := fmt.Fprintf(w, "%d: %s %s %s\n", p.ID, p.LHS.Name, arrow, rhsString(p.RHS, " ")); err != nil {
			return err
		}
	}
	return nil
}

// ProductionsString returns the production list of g in exchange format.
func ProductionsString(g *Grammar) string {
	var b strings.Builder
	WriteProductions(&b, g) // strings.Builder does not fail
	return b.String()
}

type rawProduction struct {
	line int
	id   int
	lhs  string
	rhs  []string
}

// ReadProductions parses a production list in exchange format and creates a
// grammar from it. Productions have to be listed in ID order, starting with the
// augmented start production 0.
func ReadProductions(name string, r io.Reader) (*Grammar, error) {
	var raw []rawProduction
	lhsNames := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rp, err := parseProductionLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		rp.line = lineno
		raw = append(raw, rp)
		lhsNames[rp.lhs] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	prods := make([]Production, len(raw))
	for i, rp := range raw {
		p := Production{ID: rp.id, LHS: N(rp.lhs)}
		for _, name := range rp.rhs {
			if lhsNames[name] {
				p.RHS = append(p.RHS, N(name))
			} else {
				p.RHS = append(p.RHS, T(name))
			}
		}
		prods[i] = p
	}
	g, err := NewGrammar(name, prods)
	if err != nil {
		return nil, fmt.Errorf("production list %s: %w", name, err)
	}
	return g, nil
}

func parseProductionLine(line string) (rawProduction, error) {
	var rp rawProduction
	colon := strings.Index(line, ":")
	if colon < 0 {
		return rp, fmt.Errorf("missing production ID in %q", line)
	}
	id, err := strconv.Atoi(strings.TrimSpace(line[:colon]))
	if err != nil {
		return rp, fmt.Errorf("malformed production ID in %q", line)
	}
	fields := strings.Fields(line[colon+1:])
	if len(fields) < 2 || fields[1] != arrow {
		return rp, fmt.Errorf("expected '<lhs> %s …' in %q", arrow, line)
	}
	rp.id, rp.lhs = id, fields[0]
	rhs := fields[2:]
	if len(rhs) == 1 && rhs[0] == EpsilonName {
		rhs = nil
	}
	for _, name := range rhs {
		if name == EpsilonName {
			return rp, fmt.Errorf("'%s' must be the only symbol of an empty right hand side", EpsilonName)
		}
	}
	rp.rhs = rhs
	return rp, nil
}
