package installer

import (
	"context"

	"webup/stackup/domain"
	"webup/stackup/tasks"
	"webup/stackup/utils"
)

func (in *Installer) launch(ctx context.Context, ictx *domain.InstallContext) error {
	dir := in.Config.AppDir

	up := domain.NewComposeCommand(dir, []string{"up", "-d"})
	if _, err := in.Runner.Run(ctx, up); err != nil {
		return domain.Fail(domain.KindStartup, StepLaunch, err)
	}

	probe := in.Probe
	if probe == nil {
		inspector, err := utils.NewDockerInspector()
		if err != nil {
			return domain.Fail(domain.KindStartup, StepLaunch, err)
		}
		defer inspector.Close()
		probe = ComposeProbe{Runner: in.Runner, Dir: dir, Inspector: inspector}
	}
	if err := WaitReady(ctx, probe, in.Config.Readiness, in.Sleep, in.Logger); err != nil {
		return domain.Fail(domain.KindStartup, StepLaunch, err)
	}

	migrate := tasks.DbUpdateTask(dir, in.Config.Containers.App)
	if _, err := migrate.Execute(ctx, in.Runner); err != nil {
		return domain.Fail(domain.KindStartup, StepLaunch, err)
	}

	admin := tasks.AdminTask(dir, in.Config.Containers.App, in.Config.AdminArgs, ictx.Email)
	if _, err := admin.Execute(ctx, in.Runner); err != nil {
		return domain.Fail(domain.KindStartup, StepLaunch, err)
	}

	return nil
}
