package installer

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"

	"webup/stackup/domain"
)

//go:embed templates/backup.sh.tmpl
var backupScriptTemplate string

var backupScript = template.Must(template.New("backup.sh").
	Option("missingkey=error").
	Funcs(template.FuncMap{"quote": shellescape.Quote}).
	Parse(backupScriptTemplate))

type BackupScriptData struct {
	AppDir      string
	BackupDir   string
	DBContainer string
	DBName      string
	DBUser      string
	DBPassword  string
	Files       []string
}

func RenderBackupScript(data BackupScriptData) ([]byte, error) {
	var buf bytes.Buffer
	if err := backupScript.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "unable to render the backup script")
	}
	return buf.Bytes(), nil
}

// CronEntries returns the lines registered in the crontab: the framework
// scheduler and the nightly backup.
func CronEntries(config domain.Config) []string {
	return []string{
		fmt.Sprintf("%s cd %s && php artisan schedule:run >> /dev/null 2>&1", config.Scheduler.TaskSchedule, config.AppDir),
		fmt.Sprintf("%s %s >> %s 2>&1", config.Scheduler.BackupSchedule, config.BackupConfig.Script, config.Scheduler.BackupLog),
	}
}

func (in *Installer) scheduler(ctx context.Context, ictx *domain.InstallContext) error {
	script, err := RenderBackupScript(BackupScriptData{
		AppDir:      in.Config.AppDir,
		BackupDir:   in.Config.BackupConfig.Dir,
		DBContainer: in.Config.Containers.Db,
		DBName:      in.Config.Database.Name,
		DBUser:      in.Config.Database.User,
		DBPassword:  ictx.DBPassword,
		Files:       in.Config.BackupConfig.Files,
	})
	if err != nil {
		return domain.Fail(domain.KindScheduler, StepScheduler, err)
	}

	path := in.Config.BackupConfig.Script
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return domain.Fail(domain.KindFilesystem, StepScheduler, errors.WithStack(err))
	}
	if err := os.WriteFile(path, script, 0755); err != nil {
		return domain.Fail(domain.KindFilesystem, StepScheduler, errors.WithStack(err))
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(path, 0755); err != nil {
		return domain.Fail(domain.KindFilesystem, StepScheduler, errors.WithStack(err))
	}

	if err := in.appendCrontab(ctx, CronEntries(in.Config)); err != nil {
		return domain.Fail(domain.KindScheduler, StepScheduler, err)
	}
	return nil
}

// appendCrontab adds entries after the current crontab of the user.
// Entries already present are added again.
func (in *Installer) appendCrontab(ctx context.Context, entries []string) error {
	current, err := in.Runner.Run(ctx, domain.NewCommand([]string{"crontab", "-l"}))
	if err != nil {
		var exitErr *domain.ExitError
		if !errors.As(err, &exitErr) {
			return err
		}
		// no crontab yet for this user
		current = ""
	}

	if current != "" && !strings.HasSuffix(current, "\n") {
		current += "\n"
	}
	table := current + strings.Join(entries, "\n") + "\n"

	install := domain.NewCommand([]string{"crontab", "-"})
	install.Stdin = strings.NewReader(table)
	_, err = in.Runner.Run(ctx, install)
	return err
}
