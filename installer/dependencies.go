package installer

import (
	"context"

	"go.uber.org/zap"

	"webup/stackup/domain"
	"webup/stackup/tasks"
)

const noninteractive = "DEBIAN_FRONTEND=noninteractive"

func (in *Installer) dependencies(ctx context.Context, ictx *domain.InstallContext) error {
	update := domain.NewCommand([]string{"apt-get", "update"})
	update.Env = []string{noninteractive}
	if _, err := in.Runner.Run(ctx, update); err != nil {
		return domain.Fail(domain.KindPackageManager, StepDependencies, err)
	}

	install := domain.NewCommand(append([]string{"apt-get", "install", "-y"}, in.Config.Packages...))
	install.Env = []string{noninteractive}
	if _, err := in.Runner.Run(ctx, install); err != nil {
		return domain.Fail(domain.KindPackageManager, StepDependencies, err)
	}

	engine := tasks.DockerEngineTask(in.LookPath)
	executed, err := engine.Execute(ctx, in.Runner)
	if err != nil {
		return domain.Fail(domain.KindPackageManager, StepDependencies, err)
	}
	if !executed {
		in.Logger.Info("Docker engine already installed, skipping")
	} else if in.User != "" && in.User != "root" {
		usermod := domain.NewCommand([]string{"usermod", "-aG", "docker", in.User})
		if _, err := in.Runner.Run(ctx, usermod); err != nil {
			return domain.Fail(domain.KindPackageManager, StepDependencies, err)
		}
		in.Logger.Info("User added to the docker group", zap.String("user", in.User))
	}

	compose := tasks.ComposeToolTask(in.LookPath)
	executed, err = compose.Execute(ctx, in.Runner)
	if err != nil {
		return domain.Fail(domain.KindPackageManager, StepDependencies, err)
	}
	if !executed {
		in.Logger.Info("docker-compose already installed, skipping")
	}

	return nil
}
