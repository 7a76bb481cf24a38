package utils

import (
	"context"
	"strings"

	"github.com/docker/docker/client"
	"github.com/pkg/errors"

	"webup/stackup/domain"
)

// GetContainerIDs lists the containers of the compose project in dir.
func GetContainerIDs(ctx context.Context, runner domain.Runner, dir string) ([]string, error) {
	cmd := domain.NewComposeCommand(dir, []string{"ps", "-q"})
	output, err := runner.Run(ctx, cmd)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to list the containers")
	}

	ids := []string{}
	for _, line := range strings.Split(output, "\n") {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ContainerInspector reads container state from the Docker engine.
type ContainerInspector interface {
	State(ctx context.Context, containerID string) (domain.DockerContainerState, error)
}

type DockerInspector struct {
	client *client.Client
}

func NewDockerInspector() (*DockerInspector, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &DockerInspector{client: cli}, nil
}

func (d *DockerInspector) State(ctx context.Context, containerID string) (domain.DockerContainerState, error) {
	info, err := d.client.ContainerInspect(ctx, containerID)
	if err != nil {
		return domain.DockerContainerState{}, errors.WithStack(err)
	}
	if info.ContainerJSONBase == nil || info.State == nil {
		return domain.DockerContainerState{}, errors.Errorf("no state reported for container '%s'", containerID)
	}

	state := domain.DockerContainerState{
		Name:    strings.TrimPrefix(info.Name, "/"),
		Status:  info.State.Status,
		Running: info.State.Running,
	}
	if info.State.Health != nil {
		state.Health = info.State.Health.Status
	}
	return state, nil
}

func (d *DockerInspector) Close() error {
	return d.client.Close()
}
