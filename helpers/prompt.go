package helpers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Songmu/prompter"
	"github.com/mattn/go-isatty"
)

// Asker reads answers from the operator. Ask returns io.EOF once no more
// answers can be read.
type Asker interface {
	Ask(message string) (string, error)
	Confirm(message string, defaultAnswer bool) bool
}

// prompter answers with the default, without reading, when this is set
const useDefaultEnv = "GO_PROMPTER_USE_DEFAULT"

// NewAsker prompts interactively on a terminal and falls back to reading
// one answer per line otherwise.
func NewAsker() Asker {
	if Interactive(os.Stdin, os.Stdout, os.Getenv) {
		return TerminalAsker{}
	}
	return NewLineAsker(os.Stdin, os.Stdout)
}

// Interactive reports whether prompter can read answers: both ends must be
// terminals and the default-answer switch must be off.
func Interactive(in, out *os.File, getenv func(string) string) bool {
	if getenv(useDefaultEnv) != "" {
		return false
	}
	return isTerminal(in) && isTerminal(out)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type TerminalAsker struct{}

// Ask returns io.EOF when no terminal is available, prompter would
// otherwise answer with an empty default forever.
func (TerminalAsker) Ask(message string) (string, error) {
	if !Interactive(os.Stdin, os.Stdout, os.Getenv) {
		return "", io.EOF
	}
	return prompter.Prompt(message, ""), nil
}

func (TerminalAsker) Confirm(message string, defaultAnswer bool) bool {
	return prompter.YN(message, defaultAnswer)
}

type LineAsker struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLineAsker(in io.Reader, out io.Writer) *LineAsker {
	return &LineAsker{in: bufio.NewReader(in), out: out}
}

func (a *LineAsker) Ask(message string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", message)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *LineAsker) Confirm(message string, defaultAnswer bool) bool {
	hint := "(y/N)"
	if defaultAnswer {
		hint = "(Y/n)"
	}
	answer, err := a.Ask(message + " " + hint)
	if err != nil || answer == "" {
		return defaultAnswer
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return defaultAnswer
}
