package tasks

import (
	"path/filepath"

	"webup/stackup/domain"
)

// Create a task for running 'composer install'
func ComposerTask(dir string) domain.Task {
	task := domain.Task{Name: "composer", Description: "Run 'composer install' in the application directory", Dir: dir}

	// check if 'composer.json' has been updated since last install into 'vendor'
	task.ExecutionCheck = &domain.ModificationDateTaskExecutionCheck{
		UpdatedFile: filepath.Join(dir, "composer.json"),
		CompareTo:   filepath.Join(dir, "vendor"),
	}
	task.CommandArgs = []string{"composer", "install", "--no-dev", "--optimize-autoloader", "--no-interaction"}
	task.Env = []string{"COMPOSER_ALLOW_SUPERUSER=1"}

	return task
}
