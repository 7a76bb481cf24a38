package tasks

import "webup/stackup/domain"

// Create a task running the migrations to update the DB
func DbUpdateTask(dir string, container string) domain.Task {
	task := domain.Task{Name: "db:update", Description: "Run the migrations to update the DB", Dir: dir}

	// execute 'php artisan migrate' into the app container
	task.Container = &container
	task.CommandArgs = []string{"php", "artisan", "migrate", "--force"}

	return task
}
