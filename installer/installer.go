package installer

import (
	"context"
	"crypto/rand"
	"io"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"webup/stackup/domain"
	"webup/stackup/helpers"
)

// Step names, reported in every StepError.
const (
	StepPreflight    = "preflight"
	StepInput        = "input"
	StepSecrets      = "secrets"
	StepDependencies = "dependencies"
	StepFetch        = "fetch"
	StepConfigure    = "configure"
	StepBuild        = "build"
	StepLaunch       = "launch"
	StepTLS          = "tls"
	StepScheduler    = "scheduler"
	StepReport       = "report"
)

type step struct {
	name  string
	title string
	done  string
	run   func(ctx context.Context, ictx *domain.InstallContext) error
}

// Installer provisions the whole stack on the current host.
// Its collaborators are exported so they can be replaced.
type Installer struct {
	Config domain.Config
	Runner domain.Runner
	Logger *helpers.Logger
	Asker  helpers.Asker

	System SystemInfo
	Cloner Cloner
	// Probe reports the readiness of the stack, the Docker engine is queried when nil
	Probe Probe

	Out io.Writer
	// Colored enables the colors of the final report
	Colored  bool
	Random   io.Reader
	Sleep    func(ctx context.Context, d time.Duration) error
	LookPath func(string) (string, error)

	// User is added to the docker group once the engine is installed
	User string

	// Preset holds values given on the command line, they are not asked again
	Preset domain.InstallContext
}

func New(config domain.Config, runner domain.Runner, logger *helpers.Logger) *Installer {
	user := os.Getenv("SUDO_USER")
	if user == "" {
		user = os.Getenv("USER")
	}

	return &Installer{
		Config:   config,
		Runner:   runner,
		Logger:   logger,
		Asker:    helpers.NewAsker(),
		System:   HostSystem{},
		Cloner:   GitCloner{Progress: os.Stdout},
		Out:      os.Stdout,
		Random:   rand.Reader,
		Sleep:    sleepContext,
		LookPath: exec.LookPath,
		User:     user,
	}
}

func (in *Installer) steps() []step {
	return []step{
		{StepPreflight, "Checking the host", "Host is supported", in.preflight},
		{StepInput, "Collecting the installation settings", "Settings collected", in.input},
		{StepSecrets, "Generating the secrets", "Secrets generated", in.secrets},
		{StepDependencies, "Installing the system dependencies", "System dependencies installed", in.dependencies},
		{StepFetch, "Fetching the application", "Application fetched", in.fetch},
		{StepConfigure, "Writing the environment file", "Environment file written", in.configure},
		{StepBuild, "Building the application", "Application built", in.build},
		{StepLaunch, "Starting the services", "Services started", in.launch},
		{StepTLS, "Issuing the TLS certificate", "TLS certificate issued", in.tls},
		{StepScheduler, "Scheduling the recurring jobs", "Recurring jobs scheduled", in.scheduler},
		{StepReport, "Writing the report", "Installation complete", in.report},
	}
}

// Run executes every step in order and stops at the first failure.
// The returned context holds whatever was collected until then.
func (in *Installer) Run(ctx context.Context) (*domain.InstallContext, error) {
	ictx := &domain.InstallContext{Domain: in.Preset.Domain, Email: in.Preset.Email}

	for _, s := range in.steps() {
		if err := ctx.Err(); err != nil {
			return ictx, err
		}

		in.Logger.Info(s.title, zap.String("step", s.name))
		if err := s.run(ctx, ictx); err != nil {
			return ictx, err
		}
		in.Logger.Success(s.done)
	}

	return ictx, nil
}

// Preflight runs the host checks alone.
func (in *Installer) Preflight(ctx context.Context) (domain.OSInfo, error) {
	ictx := &domain.InstallContext{}
	err := in.preflight(ctx, ictx)
	return ictx.OS, err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
