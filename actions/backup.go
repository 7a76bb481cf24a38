package actions

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoonb/archivex"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"webup/stackup/domain"
	"webup/stackup/helpers"
	"webup/stackup/utils"
)

// TimestampLayout names the files of one backup, as the nightly script does.
const TimestampLayout = "20060102_150405"

type BackupResult struct {
	Timestamp string
	Dump      string
	Archive   string
}

// DatabaseCredentials reads the database settings of the application from its environment file.
func DatabaseCredentials(config domain.Config) (name, user, password string, err error) {
	env, err := utils.ReadDotEnv(filepath.Join(config.AppDir, config.EnvFiles.Target))
	if err != nil {
		return "", "", "", errors.Wrap(err, "Unable to read the database credentials")
	}

	name, user, password = env["DB_DATABASE"], env["DB_USERNAME"], env["DB_PASSWORD"]
	if name == "" {
		name = config.Database.Name
	}
	if user == "" {
		user = config.Database.User
	}
	return name, user, password, nil
}

// BackupActionHandler dumps the database and archives the application files into outputDir.
func BackupActionHandler(ctx context.Context, config domain.Config, runner domain.Runner, log *helpers.Logger, outputDir string, now time.Time) (BackupResult, error) {
	if outputDir == "" {
		outputDir = config.BackupConfig.Dir
	}
	result := BackupResult{Timestamp: now.Format(TimestampLayout)}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return result, errors.Wrap(err, "Unable to create the backup directory")
	}

	// database dump
	name, user, password, err := DatabaseCredentials(config)
	if err != nil {
		return result, err
	}

	result.Dump = filepath.Join(outputDir, "db_"+result.Timestamp+".sql")
	if err := makeDump(ctx, config, runner, name, user, password, result.Dump); err != nil {
		return result, err
	}
	log.Info("Database dumped", zap.String("file", result.Dump))

	// files
	result.Archive = filepath.Join(outputDir, "files_"+result.Timestamp+".tar.gz")
	if err := archiveFiles(config, result.Archive); err != nil {
		return result, err
	}
	log.Info("Files archived", zap.String("file", result.Archive))

	return result, nil
}

func makeDump(ctx context.Context, config domain.Config, runner domain.Runner, name, user, password, destination string) error {
	cmd := mysqlCommand(config, password, []string{"mysqldump", "-u", user, name})

	file, err := os.CreateTemp(filepath.Dir(destination), "stackupdump")
	if err != nil {
		return errors.Wrap(err, "Unable to create a tmp file")
	}
	defer file.Close()

	if err := cmd.WriteResultToFile(ctx, runner, file); err != nil {
		os.Remove(file.Name())
		return errors.Wrap(err, "Unable to dump the database")
	}

	return errors.WithStack(os.Rename(file.Name(), destination))
}

func archiveFiles(config domain.Config, destination string) error {
	tar := new(archivex.TarFile)
	if err := tar.Create(destination); err != nil {
		return errors.Wrap(err, "Unable to create the archive")
	}

	if err := addFiles(tar, config); err != nil {
		tar.Close()
		os.Remove(destination)
		return err
	}

	return errors.Wrap(tar.Close(), "Unable to write the archive")
}

// addFiles puts the configured files in the archive, relative to the application directory.
// Missing ones are skipped.
func addFiles(tar *archivex.TarFile, config domain.Config) error {
	for _, file := range config.BackupConfig.Files {
		source := filepath.Join(config.AppDir, file)
		info, err := os.Stat(source)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return errors.WithStack(err)
		}

		if info.IsDir() {
			err = tar.AddAll(source, true)
		} else {
			var content []byte
			if content, err = os.ReadFile(source); err == nil {
				err = tar.Add(file, content)
			}
		}
		if err != nil {
			return errors.Wrapf(err, "Unable to archive %s", file)
		}
	}

	return nil
}

// mysqlCommand runs a MySQL client inside the db service, authenticated with password.
// The password is forwarded from the environment of docker-compose, never through its arguments.
func mysqlCommand(config domain.Config, password string, list []string) domain.Command {
	args := []string{"exec", "-T", "-e", "MYSQL_PWD", config.Containers.Db}
	cmd := domain.NewComposeCommand(config.AppDir, append(args, list...))
	cmd.Env = []string{"MYSQL_PWD=" + password}
	return cmd
}
