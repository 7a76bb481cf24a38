package installer

import (
	"context"

	"webup/stackup/domain"
)

func CertbotCommand(ictx domain.InstallContext) domain.Command {
	return domain.NewCommand([]string{
		"certbot", "--nginx",
		"-d", ictx.Domain,
		"--non-interactive", "--agree-tos",
		"-m", ictx.Email,
	})
}

func (in *Installer) tls(ctx context.Context, ictx *domain.InstallContext) error {
	if _, err := in.Runner.Run(ctx, CertbotCommand(*ictx)); err != nil {
		return domain.Fail(domain.KindCertIssuance, StepTLS, err)
	}

	reload := domain.NewCommand([]string{"systemctl", "reload", "nginx"})
	if _, err := in.Runner.Run(ctx, reload); err != nil {
		return domain.Fail(domain.KindCertIssuance, StepTLS, err)
	}
	return nil
}
