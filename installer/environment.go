package installer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"webup/stackup/domain"
	"webup/stackup/utils"
)

// EnvValues maps the keys rewritten in the environment file to their values.
func EnvValues(config domain.Config, ictx domain.InstallContext) map[string]string {
	return map[string]string{
		"APP_URL":          ictx.Domain,
		"DB_ROOT_PASSWORD": ictx.DBRootPassword,
		"DB_DATABASE":      config.Database.Name,
		"DB_USERNAME":      config.Database.User,
		"DB_PASSWORD":      ictx.DBPassword,
		"REDIS_PASSWORD":   ictx.RedisPassword,
	}
}

func (in *Installer) configure(ctx context.Context, ictx *domain.InstallContext) error {
	sample := filepath.Join(in.Config.AppDir, in.Config.EnvFiles.Sample)
	target := filepath.Join(in.Config.AppDir, in.Config.EnvFiles.Target)

	if _, err := os.Stat(sample); err != nil {
		return domain.Fail(domain.KindMissingTemplate, StepConfigure, errors.Wrapf(err, "no environment template at %s", sample))
	}
	if err := utils.CopyFileContents(sample, target, 0640); err != nil {
		return domain.Fail(domain.KindFilesystem, StepConfigure, err)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		return domain.Fail(domain.KindFilesystem, StepConfigure, errors.WithStack(err))
	}
	content = utils.SubstituteEnv(content, EnvValues(in.Config, *ictx))
	if err := os.WriteFile(target, content, 0640); err != nil {
		return domain.Fail(domain.KindFilesystem, StepConfigure, errors.WithStack(err))
	}

	return nil
}
