package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webup/stackup/domain"
)

func testConfig() domain.Config {
	return domain.Config{
		AppDir:     "/var/www/app",
		Containers: domain.ContainerConfig{App: "app", Db: "db"},
	}
}

func TestCreateDefaultTasks(t *testing.T) {
	config := testConfig()

	cases := map[domain.TaskID]string{
		"npm:install": "npm install",
		"npm:build":   "npm run build",
		"composer":    "composer install --no-dev --optimize-autoloader --no-interaction",
		"db:update":   "docker-compose exec -T app php artisan migrate --force",
	}
	for name, command := range cases {
		task, err := CreateTaskWithName(name, config)
		require.NoError(t, err, name)
		assert.Equal(t, name, task.Name)
		assert.Equal(t, command, task.Command().String())
		assert.Equal(t, "/var/www/app", task.Command().Dir)
	}
}

func TestCreateUnknownTask(t *testing.T) {
	_, err := CreateTaskWithName("bower", testConfig())
	assert.EqualError(t, err, "Unable to find the task 'bower'")
}

func TestCustomTaskShadowsDefault(t *testing.T) {
	config := testConfig()
	config.CustomTasks = []domain.Task{
		{Name: "npm:build", CommandArgs: domain.CommandArgs{"yarn", "build"}},
		{Name: "queue:restart", CommandArgs: domain.CommandArgs{"php", "artisan", "queue:restart"}},
	}

	task, err := CreateTaskWithName("npm:build", config)
	require.NoError(t, err)
	assert.Equal(t, "yarn build", task.Command().String())
	assert.Equal(t, "/var/www/app", task.Dir)

	names := AllTaskNames(config)
	assert.Equal(t, domain.TaskID("queue:restart"), names[len(names)-1])
	assert.Len(t, names, len(defaultTaskNames)+1)
}

func TestAdminTask(t *testing.T) {
	task := AdminTask("/var/www/app", "app", domain.CommandArgs{"php", "artisan", "app:create-admin", "--email={email}"}, "admin@example.com")
	assert.Equal(t, "docker-compose exec -T app php artisan app:create-admin --email=admin@example.com", task.Command().String())
}

func TestToolInstallTasksAreSkippedWhenPresent(t *testing.T) {
	present := func(name string) (string, error) { return "/usr/bin/" + name, nil }

	assert.False(t, DockerEngineTask(present).ExecutionCheck.CanExecute())
	assert.False(t, ComposeToolTask(present).ExecutionCheck.CanExecute())
	assert.Equal(t, "sh", DockerEngineTask(present).Command().Name)
}
