package domain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

type CommandArgs []string

// Command is a single invocation of an external tool.
type Command struct {
	Name  string
	Args  []string
	Dir   string
	Env   []string
	Stdin io.Reader
	// Stdout, when set, receives the standard output instead of the captured result.
	Stdout io.Writer
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return fmt.Sprintf("%s %s", c.Name, strings.Join(c.Args, " "))
}

func NewCommand(list []string) Command {
	var name string
	var args []string

	if len(list) > 1 {
		name = list[0]
		args = list[1:]
	} else {
		name = list[0]
		args = []string{}
	}

	return Command{Name: name, Args: args}
}

// NewComposeCommand builds a docker-compose invocation run from the project directory.
func NewComposeCommand(dir string, list []string) Command {
	return Command{Name: "docker-compose", Args: list, Dir: dir}
}

// NewContainerCommand executes the command inside a running service of the stack.
func NewContainerCommand(dir string, container string, list []string) Command {
	args := []string{"exec", "-T", container}
	args = append(args, list...)

	return NewComposeCommand(dir, args)
}

// Runner invokes external commands. The returned string is the combined output.
type Runner interface {
	Run(ctx context.Context, cmd Command) (string, error)
}

// ExitError is returned by a Runner when the command ran and exited non-zero.
type ExitError struct {
	Command string
	Status  int
	Output  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("'%s' exited with status %d", e.Command, e.Status)
}

// ExecRunner runs commands on the host. Output is copied to Stream (if set) while
// being captured.
type ExecRunner struct {
	Stream io.Writer
}

func NewExecRunner(stream io.Writer) *ExecRunner {
	return &ExecRunner{Stream: stream}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdin = c.Stdin

	var buf bytes.Buffer
	var out io.Writer = &buf
	if r.Stream != nil {
		out = io.MultiWriter(&buf, r.Stream)
	}
	cmd.Stdout = out
	cmd.Stderr = out
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}

	err := cmd.Run()
	if err == nil {
		return buf.String(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return buf.String(), &ExitError{Command: c.String(), Status: exitErr.ExitCode(), Output: buf.String()}
	}
	return buf.String(), errors.Wrapf(err, "unable to run '%s'", c)
}

// WriteResultToFile runs the command and stores its standard output in file.
func (c Command) WriteResultToFile(ctx context.Context, runner Runner, file io.Writer) error {
	c.Stdout = file
	_, err := runner.Run(ctx, c)
	return err
}
