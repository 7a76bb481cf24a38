package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"webup/stackup/domain"
	"webup/stackup/tasks"
)

const (
	DefaultFilename = "stackup.yml"
)

var (
	defaultPackages = []string{
		"nginx",
		"mysql-server",
		"redis-server",
		"php-fpm", "php-cli", "php-mysql", "php-redis", "php-mbstring", "php-xml",
		"php-curl", "php-zip", "php-bcmath", "php-gd",
		"composer",
		"nodejs", "npm",
		"git", "curl", "unzip",
		"supervisor",
		"cron",
		"certbot", "python3-certbot-nginx",
	}
	defaultBuildTasks = []domain.TaskID{"npm:install", "npm:build", "composer"}
	defaultAdminArgs  = []string{"php", "artisan", "app:create-admin", "--email={email}"}
)

type parserConfig struct {
	Repository   repositorySpec    `yaml:"repository"`
	AppDir       string            `yaml:"app_dir"`
	EnvFiles     envFilesSpec      `yaml:"env_files"`
	Database     databaseSpec      `yaml:"database"`
	Containers   map[string]string `yaml:"containers"`
	Platform     platformSpec      `yaml:"platform"`
	Packages     []string          `yaml:"packages"`
	BuildTasks   []TaskSpec        `yaml:"build_tasks"`
	CustomTasks  []CustomTaskSpec  `yaml:"custom_tasks"`
	AdminCommand []string          `yaml:"admin_command"`
	Readiness    readinessSpec     `yaml:"readiness"`
	Scheduler    schedulerSpec     `yaml:"scheduler"`
	Backup       backupSpec        `yaml:"backup"`
	Checklist    []string          `yaml:"checklist"`
}

func defaultParserConfig() parserConfig {
	return parserConfig{
		Repository: repositorySpec{URL: "https://github.com/webup/stack-app.git", Branch: "main"},
		AppDir:     "/var/www/app",
		EnvFiles:   envFilesSpec{Sample: ".env.example", Target: ".env"},
		Database:   databaseSpec{Name: "app", User: "app"},
		Platform: platformSpec{
			OS:                "ubuntu",
			SupportedVersions: []string{"20.04", "22.04", "24.04"},
			MinMemoryGB:       2,
		},
		Readiness: readinessSpec{Attempts: 10, InitialDelay: 2 * time.Second, MaxDelay: 30 * time.Second},
		Scheduler: schedulerSpec{
			TaskSchedule:   "* * * * *",
			BackupSchedule: "0 2 * * *",
			BackupLog:      "/var/log/stackup-backup.log",
		},
		Backup: backupSpec{
			Script: "/usr/local/bin/stackup-backup.sh",
			Dir:    "/var/backups/stackup",
			Files:  []string{".env", "storage"},
		},
	}
}

func (parsed parserConfig) convertToConfig(config *domain.Config) error {
	config.Repository = domain.Repository(parsed.Repository)
	config.AppDir = parsed.AppDir
	config.EnvFiles = domain.EnvFiles(parsed.EnvFiles)
	config.Database = domain.Database(parsed.Database)

	// container config
	containerConfig := domain.ContainerConfig{
		App: "app",
		Db:  "db",
	}
	if appContainerName, ok := parsed.Containers["app"]; ok {
		containerConfig.App = appContainerName
	}
	if dbContainerName, ok := parsed.Containers["db"]; ok {
		containerConfig.Db = dbContainerName
	}
	config.Containers = containerConfig

	config.Platform = domain.Platform{
		OSID:              parsed.Platform.OS,
		SupportedVersions: parsed.Platform.SupportedVersions,
		MinMemoryGB:       parsed.Platform.MinMemoryGB,
	}

	config.Packages = parsed.Packages
	if len(config.Packages) == 0 {
		config.Packages = defaultPackages
	}

	config.AdminArgs = parsed.AdminCommand
	if len(config.AdminArgs) == 0 {
		config.AdminArgs = defaultAdminArgs
	}

	// custom tasks
	// NOTE: must be handled before the build tasks because the custom tasks can be specified inside the build tasks
	customTasks := []domain.Task{}
	for i, taskSpec := range parsed.CustomTasks {
		if !taskSpec.IsValid() {
			return errors.Errorf("custom task #%d needs a name and a command", i+1)
		}
		task := domain.Task{Name: taskSpec.Name, Description: taskSpec.Description, Dir: config.AppDir}
		// the task runs on the host when no container is given or when it is 'none'
		if taskSpec.Container != "" && taskSpec.Container != "none" {
			container := taskSpec.Container
			task.Container = &container
		}
		task.CommandArgs = taskSpec.CommandArgs
		customTasks = append(customTasks, task)
	}
	config.CustomTasks = customTasks

	// build tasks
	buildSpecs := parsed.BuildTasks
	if len(buildSpecs) == 0 {
		for _, name := range defaultBuildTasks {
			buildSpecs = append(buildSpecs, TaskSpec{Name: name})
		}
	}
	buildTasks := []domain.Task{}
	for _, taskSpec := range buildSpecs {

		task, err := tasks.CreateTaskWithName(taskSpec.Name, *config)
		if err != nil {
			return err
		}

		// check for override
		if taskSpec.Override != nil {

			// check if a container is specified
			// if the value is 'none', the command will be run on the host
			if taskSpec.Override.Container != nil {
				if *taskSpec.Override.Container != "none" {
					task.Container = taskSpec.Override.Container
				} else {
					task.Container = nil
				}
			}

			// check if the command is overrided
			if taskSpec.Override.CommandArgs != nil {
				if len(*taskSpec.Override.CommandArgs) == 0 {
					return errors.Errorf("Not enough args to execute the task '%s'", taskSpec.Name)
				}
				task.CommandArgs = *taskSpec.Override.CommandArgs
			}
		}

		buildTasks = append(buildTasks, task)
	}
	config.BuildTasks = buildTasks

	config.Readiness = domain.Readiness(parsed.Readiness)
	config.Scheduler = domain.Scheduler(parsed.Scheduler)
	config.BackupConfig = domain.Backup(parsed.Backup)

	// checklist
	config.Checklist = parsed.Checklist

	return nil
}

// Load reads the config file at path over the defaults.
// A missing file is only an error when required is set.
func Load(path string, required bool) (domain.Config, error) {

	config := domain.Config{}
	parsed := defaultParserConfig()

	configFile, err := os.ReadFile(path)
	if err != nil && (required || !os.IsNotExist(err)) {
		return config, errors.Wrapf(err, "Unable to read the config file '%s'", path)
	}

	if err == nil {
		if err := yaml.Unmarshal(configFile, &parsed); err != nil {
			return config, errors.Wrapf(err, "Unable to parse the config file. Check '%s' syntax", path)
		}
	}

	if err := parsed.validate(); err != nil {
		return config, err
	}

	if err := parsed.convertToConfig(&config); err != nil {
		return config, err
	}

	return config, nil
}

func (parsed parserConfig) validate() error {
	switch {
	case parsed.Repository.URL == "":
		return errors.New("repository.url must be set")
	case parsed.AppDir == "":
		return errors.New("app_dir must be set")
	case parsed.EnvFiles.Sample == "" || parsed.EnvFiles.Target == "":
		return errors.New("env_files.sample and env_files.target must be set")
	case parsed.Readiness.Attempts < 1:
		return errors.New("readiness.attempts must be at least 1")
	case parsed.Backup.Script == "" || parsed.Backup.Dir == "":
		return errors.New("backup.script and backup.dir must be set")
	}
	return nil
}
