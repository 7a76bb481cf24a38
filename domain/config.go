package domain

import "time"

type Config struct {
	Repository Repository
	AppDir     string
	EnvFiles   EnvFiles
	Database   Database
	Containers ContainerConfig

	Platform Platform
	Packages []string

	// BuildTasks are executed in order by the build step
	BuildTasks  []Task
	CustomTasks []Task
	AdminArgs   CommandArgs

	Readiness    Readiness
	Scheduler    Scheduler
	BackupConfig Backup
	Checklist    []string
}

type Repository struct {
	URL    string
	Branch string
}

type EnvFiles struct {
	Sample string
	Target string
}

type Database struct {
	Name string
	User string
}

type ContainerConfig struct {
	App string
	Db  string
}

type Platform struct {
	OSID              string
	SupportedVersions []string
	MinMemoryGB       uint64
}

type Readiness struct {
	Attempts     int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

type Scheduler struct {
	TaskSchedule   string
	BackupSchedule string
	BackupLog      string
}

type Backup struct {
	Script string
	Dir    string
	Files  []string
}
