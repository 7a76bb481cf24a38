package installer

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"webup/stackup/domain"
)

const gib = 1 << 30

func (in *Installer) preflight(ctx context.Context, ictx *domain.InstallContext) error {
	platform := in.Config.Platform

	info, err := in.System.OSRelease()
	if err != nil {
		return domain.Fail(domain.KindUnsupportedOS, StepPreflight, err)
	}
	ictx.OS = info

	if info.ID != platform.OSID {
		return domain.Fail(domain.KindUnsupportedOS, StepPreflight, errors.Errorf("%s is not supported, %s is required", info, platform.OSID))
	}
	if !contains(platform.SupportedVersions, info.Version) {
		in.Logger.Warn("This version has not been tested, continuing anyway", zap.String("os", info.String()), zap.Strings("tested", platform.SupportedVersions))
	}

	total, err := in.System.TotalMemory()
	if err != nil {
		return domain.Fail(domain.KindInsufficientMemory, StepPreflight, err)
	}
	// floored, 1.9GiB counts as 1
	if gb := total / gib; gb < platform.MinMemoryGB {
		return domain.Fail(domain.KindInsufficientMemory, StepPreflight, errors.Errorf("%dGB of memory available, %dGB required", gb, platform.MinMemoryGB))
	}

	in.Logger.Info("Host checked", zap.String("os", info.String()), zap.Uint64("memory_gb", total/gib))
	return nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
