package installer

import (
	"context"

	"go.uber.org/zap"

	"webup/stackup/domain"
)

func (in *Installer) build(ctx context.Context, ictx *domain.InstallContext) error {
	for _, task := range in.Config.BuildTasks {
		executed, err := task.Execute(ctx, in.Runner)
		if err != nil {
			return domain.Fail(domain.KindBuild, StepBuild, err)
		}
		if !executed {
			in.Logger.Info("Up to date, skipping", zap.String("task", string(task.Name)))
		}
	}
	return nil
}
