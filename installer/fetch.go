package installer

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"webup/stackup/domain"
	"webup/stackup/utils"
)

// Cloner fetches the application sources into an empty directory.
type Cloner interface {
	Clone(ctx context.Context, repo domain.Repository, dir string) error
}

type GitCloner struct {
	Progress io.Writer
}

func (c GitCloner) Clone(ctx context.Context, repo domain.Repository, dir string) error {
	options := &git.CloneOptions{URL: repo.URL, Progress: c.Progress}
	if repo.Branch != "" {
		options.ReferenceName = plumbing.NewBranchReferenceName(repo.Branch)
		options.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, dir, false, options); err != nil {
		return errors.Wrapf(err, "unable to clone %s", repo.URL)
	}
	return nil
}

func (in *Installer) fetch(ctx context.Context, ictx *domain.InstallContext) error {
	dir := in.Config.AppDir

	if utils.DirExists(dir) {
		in.Logger.Warn("Removing the previous checkout", zap.String("dir", dir))
		if err := os.RemoveAll(dir); err != nil {
			return domain.Fail(domain.KindFilesystem, StepFetch, errors.WithStack(err))
		}
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return domain.Fail(domain.KindFilesystem, StepFetch, errors.WithStack(err))
	}

	if err := in.Cloner.Clone(ctx, in.Config.Repository, dir); err != nil {
		return domain.Fail(domain.KindClone, StepFetch, err)
	}
	return nil
}
