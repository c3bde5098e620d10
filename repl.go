package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/owendewing/Harmony/syntax"
	"github.com/peterh/liner"
)

const (
	historyFile = ".harmony_history"
	promptMain  = "harmony> "
	promptCont  = "...      "
	banner      = "Harmony REPL. Each input is compiled to JavaScript. Type :quit to exit, :reset to forget declarations."
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

// session accumulates accepted inputs so later entries can refer to earlier
// declarations. Each eval returns only the JavaScript the new input added.
type session struct {
	source   string
	output   string
	optimize bool
}

func (s *session) eval(code string) (string, error) {
	candidate := s.source + code + "\n"
	js, err := compileProgram(candidate, s.optimize, false)
	if err != nil {
		return "", err
	}

	added := js
	if s.output != "" {
		added = strings.TrimPrefix(strings.TrimPrefix(js, s.output), "\n")
	}
	s.source = candidate
	s.output = js
	return added, nil
}

func (s *session) reset() {
	s.source = ""
	s.output = ""
}

func runRepl(optimize bool) (ret int) {
	fmt.Println(banner)

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
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
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

	s := &session{optimize: optimize}
	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			case ":reset":
				s.reset()
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		js, err := s.eval(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		if js != "" {
			fmt.Println(green(js))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe keeps prompting while the buffered input is a valid
// prefix of a program that ran out of tokens.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := syntax.Parse(src); syntax.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
