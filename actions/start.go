package actions

import (
	"context"

	"webup/stackup/domain"
)

// ComposeActionHandler runs a docker-compose subcommand in the application directory.
func ComposeActionHandler(ctx context.Context, config domain.Config, runner domain.Runner, args ...string) error {
	cmd := domain.NewComposeCommand(config.AppDir, args)
	_, err := runner.Run(ctx, cmd)
	return err
}

func StartActionHandler(ctx context.Context, config domain.Config, runner domain.Runner) error {
	return ComposeActionHandler(ctx, config, runner, "up", "-d")
}
