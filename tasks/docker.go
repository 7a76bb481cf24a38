package tasks

import "webup/stackup/domain"

const (
	dockerInstallScript  = "curl -fsSL https://get.docker.com | sh"
	composeInstallScript = `curl -fsSL "https://github.com/docker/compose/releases/latest/download/docker-compose-$(uname -s)-$(uname -m)" -o /usr/local/bin/docker-compose && chmod +x /usr/local/bin/docker-compose`
)

// Create a task installing the Docker engine, skipped when 'docker' is already present
func DockerEngineTask(lookPath func(string) (string, error)) domain.Task {
	task := domain.Task{Name: "docker:install", Description: "Install the Docker engine"}

	task.ExecutionCheck = &domain.MissingBinaryTaskExecutionCheck{Binary: "docker", LookPath: lookPath}
	task.CommandArgs = []string{"sh", "-c", dockerInstallScript}

	return task
}

// Create a task installing docker-compose, skipped when it is already present
func ComposeToolTask(lookPath func(string) (string, error)) domain.Task {
	task := domain.Task{Name: "compose:install", Description: "Install docker-compose"}

	task.ExecutionCheck = &domain.MissingBinaryTaskExecutionCheck{Binary: "docker-compose", LookPath: lookPath}
	task.CommandArgs = []string{"sh", "-c", composeInstallScript}

	return task
}
