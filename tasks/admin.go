package tasks

import (
	"strings"

	"webup/stackup/domain"
)

const emailPlaceholder = "{email}"

// Create a task bootstrapping the first admin account.
// Every '{email}' in args is replaced by the given email.
func AdminTask(dir string, container string, args domain.CommandArgs, email string) domain.Task {
	task := domain.Task{Name: "admin:create", Description: "Create the first admin account", Dir: dir}

	task.Container = &container
	task.CommandArgs = make(domain.CommandArgs, 0, len(args))
	for _, arg := range args {
		task.CommandArgs = append(task.CommandArgs, strings.ReplaceAll(arg, emailPlaceholder, email))
	}

	return task
}
