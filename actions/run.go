package actions

import (
	"context"

	"go.uber.org/zap"

	"webup/stackup/domain"
	"webup/stackup/helpers"
	"webup/stackup/tasks"
)

// RunTaskActionHandler executes the named task, a build task override taking precedence.
func RunTaskActionHandler(ctx context.Context, config domain.Config, runner domain.Runner, log *helpers.Logger, name domain.TaskID) error {
	var task domain.Task

	// first, search for the build tasks (which could be overrided)
	taskFound := false
	for _, t := range config.BuildTasks {
		if t.Name == name {
			task = t
			taskFound = true
			break
		}
	}

	// if no task is found, try to create a default task
	if !taskFound {
		defaultTask, err := tasks.CreateTaskWithName(name, config)
		if err != nil {
			return err
		}
		task = defaultTask
	}

	// disable the execution check for standalone execution
	task.ExecutionCheck = nil

	if _, err := task.Execute(ctx, runner); err != nil {
		return err
	}
	log.Success("Task executed", zap.String("task", string(task.Name)))
	return nil
}
