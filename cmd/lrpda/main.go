package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lrpda/lang"
	"github.com/npillmayer/lrpda/lr"
	"github.com/npillmayer/lrpda/lr/formal"
	"github.com/npillmayer/lrpda/lr/pda"
	"github.com/npillmayer/lrpda/lr/tablegen"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace {
		return gtrace.SyntaxTracer
	}))
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	tname := flag.String("table", "generated", "Parser table [generated|demo|assign]")
	lexer := flag.String("lexer", "lang", "Tokenizer [lang|go]")
	showGrammar := flag.Bool("grammar", false, "Print the production set and exit")
	showReport := flag.Bool("report", false, "Print formal properties of the grammar and exit")
	cfsm := flag.String("cfsm", "", "Write the CFSM of the generated table to a Graphviz file")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	//
	intp := &Intp{}
	if err := intp.use(*tname); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	if err := intp.setLexer(*lexer); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	switch {
	case *cfsm != "":
		if err := writeCFSM(*cfsm); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		return
	case *showGrammar:
		if err := lr.WriteProductions(os.Stdout, intp.table.Grammar()); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		return
	case *showReport:
		if err := formal.Report(os.Stdout, lr.NewAnalysis(intp.table.Grammar())); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		return
	}
	if flag.NArg() > 0 {
		failed := 0
		for _, name := range flag.Args() {
			if !intp.parseFile(name) {
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
		return
	}
	repl, err := readline.New(prompt)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	pterm.Info.Println("Welcome to lrpda")
	pterm.Info.Println("Enter a program, finish it with an empty line. Quit with <ctrl>D or :quit")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

const (
	prompt       = "lrpda> "
	continuation = "  ...> "
)

// Intp is our interpreter object.
type Intp struct {
	tableName string
	table     *lr.Table
	goLexer   bool // tokenize with the Go tokenizer
	repl      *readline.Instance
	lines     []string    // program text collected so far
	last      *pda.Parser // parser of the last parse
}

func (intp *Intp) use(name string) error {
	var t *lr.Table
	switch name {
	case "generated":
		var err error
		if t, err = lang.Tables(); err != nil {
			return err
		}
	case "demo":
		t = lang.DemoTable()
	case "assign":
		t = lang.AssignTable()
	default:
		return fmt.Errorf("unknown table %q, expected one of generated, demo, assign", name)
	}
	intp.tableName, intp.table = name, t
	tracer().Infof("using table %s for grammar %s", name, t.Grammar().Name)
	return nil
}

func (intp *Intp) setLexer(name string) error {
	switch name {
	case "lang":
		intp.goLexer = false
	case "go":
		intp.goLexer = true
	default:
		return fmt.Errorf("unknown lexer %q, expected lang or go", name)
	}
	return nil
}

func (intp *Intp) parseFile(name string) bool {
	src, err := ioutil.ReadFile(name)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	pterm.Info.Println(name)
	return intp.parse(string(src))
}

func (intp *Intp) parse(src string) bool {
	parse := lang.ParseWith
	if intp.goLexer {
		parse = lang.ParseGo
	}
	accepted, p, err := parse(intp.table, src)
	if p != nil {
		intp.last = p
		fmt.Println(p.Trace())
	}
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	if accepted {
		pterm.Info.Println("accepted")
	} else {
		pterm.Info.Println("rejected")
	}
	return accepted && err == nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if len(intp.lines) == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			if quit := intp.command(strings.Fields(strings.TrimSpace(line))); quit {
				break
			}
			continue
		}
		if strings.TrimSpace(line) != "" {
			intp.lines = append(intp.lines, line)
			intp.repl.SetPrompt(continuation)
			continue
		}
		if len(intp.lines) > 0 {
			intp.parse(strings.Join(intp.lines, "\n") + "\n")
			intp.lines = intp.lines[:0]
			intp.repl.SetPrompt(prompt)
		}
	}
	fmt.Println("Good bye!")
}

// command executes a REPL command. It returns true if the session should end.
func (intp *Intp) command(args []string) bool {
	var err error
	switch args[0] {
	case ":quit", ":q":
		return true
	case ":table":
		err = intp.table.Render(os.Stdout, 0)
	case ":grammar":
		err = printGrammarTree(intp.table.Grammar())
	case ":stack":
		if intp.last == nil {
			pterm.Info.Println("nothing parsed yet")
			break
		}
		err = intp.last.RenderStack(os.Stdout)
	case ":trace":
		if intp.last == nil {
			pterm.Info.Println("nothing parsed yet")
			break
		}
		fmt.Println(intp.last.Trace())
		var fp string
		if fp, err = intp.last.Trace().Fingerprint(); err == nil {
			pterm.Info.Println("trace fingerprint " + fp)
		}
	case ":report":
		err = formal.Report(os.Stdout, lr.NewAnalysis(intp.table.Grammar()))
	case ":use":
		if len(args) != 2 {
			err = fmt.Errorf("usage: :use generated|demo|assign")
			break
		}
		err = intp.use(args[1])
	case ":lexer":
		if len(args) != 2 {
			err = fmt.Errorf("usage: :lexer lang|go")
			break
		}
		err = intp.setLexer(args[1])
	default:
		err = fmt.Errorf("unknown command %s", args[0])
	}
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	return false
}

// printGrammarTree displays the productions grouped by their left hand side.
func printGrammarTree(g *lr.Grammar) error {
	ll := pterm.LeveledList{{Level: 0, Text: "grammar " + g.Name}}
	for _, A := range g.Nonterminals() {
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: A})
		for _, p := range g.ProductionsFor(A) {
			ll = append(ll, pterm.LeveledListItem{Level: 2, Text: fmt.Sprintf("%d: %v", p.ID, p)})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	return pterm.DefaultTree.WithRoot(root).Render()
}

func writeCFSM(filename string) error {
	gen := tablegen.NewGenerator(lr.NewAnalysis(lang.Grammar()))
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = gen.CFSM().ToGraphViz(f); err != nil {
		return err
	}
	pterm.Info.Printf("wrote CFSM with %d states to %s\n", gen.CFSM().Size(), filename)
	return nil
}
