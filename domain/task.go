package domain

import (
	"context"
)

type TaskID string

type Task struct {
	Name           TaskID
	Description    string
	Container      *string
	Dir            string
	Env            []string
	ExecutionCheck TaskExecutionCheck
	CommandArgs    CommandArgs
}

// Command resolves the invocation of the task, inside its container when one is set.
func (t Task) Command() Command {
	var command Command
	if t.Container != nil {
		command = NewContainerCommand(t.Dir, *t.Container, t.CommandArgs)
	} else {
		command = NewCommand(t.CommandArgs)
		command.Dir = t.Dir
	}
	command.Env = t.Env

	return command
}

// Execute runs the task unless its execution check says otherwise.
// The returned bool reports whether the command was executed.
func (t Task) Execute(ctx context.Context, runner Runner) (bool, error) {
	if t.ExecutionCheck != nil && !t.ExecutionCheck.CanExecute() {
		return false, nil
	}

	if _, err := runner.Run(ctx, t.Command()); err != nil {
		return true, err
	}

	if t.ExecutionCheck != nil {
		t.ExecutionCheck.PostExecute()
	}

	return true, nil
}
