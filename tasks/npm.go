package tasks

import (
	"path/filepath"

	"webup/stackup/domain"
)

// Create a task for running 'npm install'
func NpmTask(dir string) domain.Task {
	task := domain.Task{Name: "npm:install", Description: "Run 'npm install' in the application directory", Dir: dir}

	// check if 'package.json' has been updated since last install into 'node_modules'
	task.ExecutionCheck = &domain.ModificationDateTaskExecutionCheck{
		UpdatedFile: filepath.Join(dir, "package.json"),
		CompareTo:   filepath.Join(dir, "node_modules"),
	}
	task.CommandArgs = []string{"npm", "install"}

	return task
}

// Create a task producing the production frontend build
func NpmBuildTask(dir string) domain.Task {
	task := domain.Task{Name: "npm:build", Description: "Run 'npm run build' in the application directory", Dir: dir}
	task.CommandArgs = []string{"npm", "run", "build"}

	return task
}
