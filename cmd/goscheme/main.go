// cmd/goscheme/main.go — the REPL and batch file loader (SPEC_FULL.md
// §3.5).
//
// Grounded on the teacher's cmd/msg/main.go: a liner-backed prompt loop
// with a continuation probe, Ctrl-D/`,quit` to exit, and history
// persisted to a dotfile in the user's home directory. The teacher probes
// for "incomplete input" using MindScript's own parser error classifier;
// this driver does the equivalent with a plain paren/string balance
// count, since Scheme's reader has no brace/indentation ambiguity to
// resolve.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dhassan/goscheme"
	"github.com/peterh/liner"
)

const (
	historyFile = ".goscheme_history"
	promptMain  = "> "
	promptCont  = "  "
)

func main() {
	loadFlag := stringList{}
	flag.Var(&loadFlag, "load", "load a Scheme source file before the REPL (repeatable)")
	evalFlag := flag.String("e", "", "evaluate an expression and print its result")
	testFlag := flag.Bool("test", false, "load every -load file and print a PASS/FAIL summary")
	flag.Parse()

	ip := goscheme.NewStandardInterpreter()

	if *testFlag {
		os.Exit(runTestMode(ip, loadFlag))
	}

	for _, f := range loadFlag {
		if err := goscheme.LoadFile(ip, f); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	if *evalFlag != "" {
		v, err := ip.EvalSource(*evalFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println(goscheme.Show(v))
	}

	if flag.NArg() == 0 {
		os.Exit(runRepl(ip))
	}

	for _, f := range flag.Args() {
		if err := goscheme.LoadFile(ip, f); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runTestMode(ip *goscheme.Interpreter, files []string) int {
	pass, fail := 0, 0
	for _, f := range files {
		if err := goscheme.LoadFile(ip, f); err != nil {
			fmt.Printf("FAIL %s: %s\n", f, err.Error())
			fail++
			continue
		}
		fmt.Printf("PASS %s\n", f)
		pass++
	}
	fmt.Printf("\n%d passed, %d failed\n", pass, fail)
	if fail > 0 {
		return 1
	}
	return 0
}

func runRepl(ip *goscheme.Interpreter) int {
	fmt.Println("goscheme REPL. Ctrl-D exits; ,quit also exits.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readBalancedForm(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ",quit" {
			return 0
		}

		v, err := ip.EvalSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}
		fmt.Println(goscheme.Show(v))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readBalancedForm reads lines until parentheses and quotes balance out,
// the Scheme-syntax equivalent of the teacher's incomplete-input probe.
func readBalancedForm(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	depth := 0
	inString := false

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if err != nil {
			if err == io.EOF {
				return "", false
			}
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		escaped := false
		for _, r := range line {
			if inString {
				if escaped {
					escaped = false
					continue
				}
				switch r {
				case '\\':
					escaped = true
				case '"':
					inString = false
				}
				continue
			}
			switch r {
			case '"':
				inString = true
			case '(', '[':
				depth++
			case ')', ']':
				depth--
			}
		}
		if depth <= 0 && !inString {
			return b.String(), true
		}
	}
}
