package domain

type DockerContainerState struct {
	Name    string
	Status  string
	Running bool
	// Health is empty when the image declares no healthcheck
	Health string
}

func (s DockerContainerState) Ready() bool {
	if !s.Running {
		return false
	}
	return s.Health == "" || s.Health == "healthy"
}
