package actions

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"webup/stackup/domain"
	"webup/stackup/helpers"
)

// RestoreActionHandler puts back the files and the database saved at timestamp.
// Nothing is touched unless the operator confirms or yes is set.
func RestoreActionHandler(ctx context.Context, config domain.Config, runner domain.Runner, log *helpers.Logger, asker helpers.Asker, backupDir string, timestamp string, yes bool) error {
	if backupDir == "" {
		backupDir = config.BackupConfig.Dir
	}
	archive := filepath.Join(backupDir, "files_"+timestamp+".tar.gz")
	dump := filepath.Join(backupDir, "db_"+timestamp+".sql")

	for _, file := range []string{archive, dump} {
		if _, err := os.Stat(file); err != nil {
			return errors.Wrapf(err, "Backup '%s' not found", timestamp)
		}
	}

	if !yes && !asker.Confirm("The application files and the database are going to be replaced. Are you sure you want to continue?", false) {
		log.Warn("Restoration cancelled")
		return nil
	}

	if err := untar(archive, config.AppDir, log); err != nil {
		return err
	}

	name, user, password, err := DatabaseCredentials(config)
	if err != nil {
		return err
	}
	if err := restoreMySQL(ctx, config, runner, name, user, password, dump); err != nil {
		return err
	}
	log.Info("Database restored", zap.String("database", name))

	return nil
}

func untar(tarball string, destination string, log *helpers.Logger) error {
	reader, err := os.Open(tarball)
	if err != nil {
		return errors.WithStack(err)
	}
	defer reader.Close()

	gzipReader, err := gzip.NewReader(reader)
	if err != nil {
		return errors.Wrapf(err, "Unable to read %s", tarball)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return errors.WithStack(err)
		}

		dest := filepath.Join(destination, header.Name)
		if !strings.HasPrefix(dest, filepath.Clean(destination)+string(filepath.Separator)) {
			return errors.Errorf("Refusing to extract '%s' outside of %s", header.Name, destination)
		}

		log.Info("Restoring", zap.String("file", header.Name))
		if err := copyFile(dest, tarReader, header.FileInfo()); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(dest string, source io.Reader, sourceInfo os.FileInfo) error {
	if sourceInfo.IsDir() {
		return errors.WithStack(os.MkdirAll(dest, 0755))
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.WithStack(err)
	}

	file, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, sourceInfo.Mode().Perm())
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	_, err = io.Copy(file, source)
	return errors.WithStack(err)
}

func restoreMySQL(ctx context.Context, config domain.Config, runner domain.Runner, database, user, password, dump string) error {
	file, err := os.Open(dump)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	cmd := mysqlCommand(config, password, []string{"mysql", "-u", user, database})
	cmd.Stdin = file
	if _, err := runner.Run(ctx, cmd); err != nil {
		return errors.Wrap(err, "Unable to restore the database")
	}
	return nil
}
