package tasks

import (
	"fmt"

	"webup/stackup/domain"
)

var defaultTaskNames = []domain.TaskID{
	"npm:install",
	"npm:build",
	"composer",
	"db:update",
	"docker:install",
	"compose:install",
}

func CreateTaskWithName(name domain.TaskID, config domain.Config) (domain.Task, error) {

	// custom tasks first, they may shadow a default one
	for _, task := range config.CustomTasks {
		if task.Name == name {
			if task.Dir == "" {
				task.Dir = config.AppDir
			}
			return task, nil
		}
	}

	// default tasks
	switch name {
	case "npm:install":
		return NpmTask(config.AppDir), nil
	case "npm:build":
		return NpmBuildTask(config.AppDir), nil
	case "composer":
		return ComposerTask(config.AppDir), nil
	case "db:update":
		return DbUpdateTask(config.AppDir, config.Containers.App), nil
	case "docker:install":
		return DockerEngineTask(nil), nil
	case "compose:install":
		return ComposeToolTask(nil), nil
	}

	return domain.Task{}, fmt.Errorf("Unable to find the task '%s'", name)
}

// AllTaskNames lists the default tasks followed by the custom ones.
func AllTaskNames(config domain.Config) []domain.TaskID {
	names := append([]domain.TaskID{}, defaultTaskNames...)
	for _, task := range config.CustomTasks {
		if !containsTask(names, task.Name) {
			names = append(names, task.Name)
		}
	}
	return names
}

func containsTask(names []domain.TaskID, name domain.TaskID) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
