package lr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Render writes a human readable form of the table to w: the production list,
// followed by a single grid holding the ACTION columns (terminals) and the GOTO
// columns (non-terminals) for every state. If maxStates > 0, only the first
// maxStates states are printed.
func (t *Table) Render(w io.Writer, maxStates int) error {
	if err := WriteProductions(w, t.g); err != nil {
		return err
	}
	grid, err := t.renderGrid(maxStates)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n"+grid+"\n")
	return err
}

func (t *Table) renderGrid(maxStates int) (string, error) {
	header := []string{"state"}
	header = append(header, t.terminals...)
	for _, A := range t.nonterminals[1:] { // S' never is a GOTO column
		header = append(header, A)
	}
	data := pterm.TableData{header}
	for i, s := range t.states {
		if maxStates > 0 && i >= maxStates {
			data = append(data, []string{fmt.Sprintf("… %d more", len(t.states)-maxStates)})
			break
		}
		row := make([]string, len(header))
		row[0] = strconv.Itoa(s)
		for _, e := range t.ActionEntries(s) {
			row[1+t.termCol[e.Terminal]] = e.Action.String()
		}
		for _, e := range t.GotoEntries(s) {
			if j := t.ntCol[e.Nonterminal]; j > 0 {
				row[len(t.terminals)+j] = strconv.Itoa(e.Target)
			}
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// String returns the uncolored rendering of the complete table.
func (t *Table) String() string {
	var b strings.Builder
	if err := t.Render(&b, 0); err != nil {
		return fmt.Sprintf("<table %s: %v>", t.g.Name, err)
	}
	return pterm.RemoveColorFromString(b.String())
}
