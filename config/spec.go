package config

import (
	"time"

	"webup/stackup/domain"
)

type TaskSpec struct {
	Name     domain.TaskID     `yaml:"name"`
	Override *TaskOverrideSpec `yaml:"override"`
}

type TaskOverrideSpec struct {
	Container   *string   `yaml:"container"`
	CommandArgs *[]string `yaml:"command"`
}

type CustomTaskSpec struct {
	Name        domain.TaskID `yaml:"name"`
	Description string        `yaml:"description"`
	Container   string        `yaml:"container"`
	CommandArgs []string      `yaml:"command"`
}

func (spec CustomTaskSpec) IsValid() bool {
	return spec.Name != "" && len(spec.CommandArgs) > 0
}

type repositorySpec struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch"`
}

type envFilesSpec struct {
	Sample string `yaml:"sample"`
	Target string `yaml:"target"`
}

type databaseSpec struct {
	Name string `yaml:"name"`
	User string `yaml:"user"`
}

type platformSpec struct {
	OS                string   `yaml:"os"`
	SupportedVersions []string `yaml:"supported_versions"`
	MinMemoryGB       uint64   `yaml:"min_memory_gb"`
}

type readinessSpec struct {
	Attempts     int           `yaml:"attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
}

type schedulerSpec struct {
	TaskSchedule   string `yaml:"task_schedule"`
	BackupSchedule string `yaml:"backup_schedule"`
	BackupLog      string `yaml:"backup_log"`
}

type backupSpec struct {
	Script string   `yaml:"script"`
	Dir    string   `yaml:"dir"`
	Files  []string `yaml:"files"`
}
