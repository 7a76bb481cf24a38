package actions

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webup/stackup/domain"
	"webup/stackup/helpers"
)

type fakeRunner struct {
	commands []domain.Command
	stdin    string
	output   string
	err      error
}

func (r *fakeRunner) Run(ctx context.Context, cmd domain.Command) (string, error) {
	r.commands = append(r.commands, cmd)
	if cmd.Stdin != nil {
		content, _ := io.ReadAll(cmd.Stdin)
		r.stdin = string(content)
	}
	if cmd.Stdout != nil && r.err == nil {
		io.WriteString(cmd.Stdout, r.output)
	}
	return r.output, r.err
}

type answer bool

func (a answer) Ask(message string) (string, error)              { return "", io.EOF }
func (a answer) Confirm(message string, defaultAnswer bool) bool { return bool(a) }

func appConfig(t *testing.T) domain.Config {
	t.Helper()
	dir := t.TempDir()
	app := filepath.Join(dir, "app")

	require.NoError(t, os.MkdirAll(filepath.Join(app, "storage", "logs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(app, ".env"), []byte("DB_DATABASE=shop\nDB_USERNAME=shop_user\nDB_PASSWORD=s3cret\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(app, "storage", "logs", "app.log"), []byte("log line\n"), 0644))

	return domain.Config{
		AppDir:       app,
		EnvFiles:     domain.EnvFiles{Sample: ".env.example", Target: ".env"},
		Database:     domain.Database{Name: "app", User: "app"},
		Containers:   domain.ContainerConfig{App: "app", Db: "db"},
		BackupConfig: domain.Backup{Dir: filepath.Join(dir, "backups"), Files: []string{".env", "storage"}},
	}
}

func archiveEntries(t *testing.T, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	gz, err := gzip.NewReader(file)
	require.NoError(t, err)
	reader := tar.NewReader(gz)

	names := []string{}
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, header.Name)
	}
	return names
}

func TestBackup(t *testing.T) {
	config := appConfig(t)
	runner := &fakeRunner{output: "-- MySQL dump\n"}
	now := time.Date(2024, 1, 31, 2, 0, 0, 0, time.UTC)

	result, err := BackupActionHandler(context.Background(), config, runner, helpers.NewLogger(io.Discard, false), "", now)
	require.NoError(t, err)

	assert.Equal(t, "20240131_020000", result.Timestamp)
	assert.Equal(t, filepath.Join(config.BackupConfig.Dir, "db_20240131_020000.sql"), result.Dump)

	dump, err := os.ReadFile(result.Dump)
	require.NoError(t, err)
	assert.Equal(t, "-- MySQL dump\n", string(dump))

	require.Len(t, runner.commands, 1)
	assert.Equal(t, "docker-compose exec -T -e MYSQL_PWD db mysqldump -u shop_user shop", runner.commands[0].String())
	assert.Equal(t, []string{"MYSQL_PWD=s3cret"}, runner.commands[0].Env)
	assert.Equal(t, config.AppDir, runner.commands[0].Dir)

	entries := archiveEntries(t, result.Archive)
	assert.Contains(t, entries, ".env")
	found := false
	for _, entry := range entries {
		if strings.HasPrefix(entry, "storage") && strings.HasSuffix(entry, "app.log") {
			found = true
		}
	}
	assert.True(t, found, "storage files archived: %v", entries)
}

func TestBackupFailedDumpLeavesNoFile(t *testing.T) {
	config := appConfig(t)
	runner := &fakeRunner{err: &domain.ExitError{Command: "mysqldump", Status: 2}}

	_, err := BackupActionHandler(context.Background(), config, runner, helpers.NewLogger(io.Discard, false), "", time.Now())
	require.Error(t, err)

	files, err := os.ReadDir(config.BackupConfig.Dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func writeBackup(t *testing.T, dir, timestamp string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(content)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "files_"+timestamp+".tar.gz"), buf.Bytes(), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_"+timestamp+".sql"), []byte("INSERT INTO users VALUES (1);\n"), 0644))
}

func TestRestore(t *testing.T) {
	config := appConfig(t)
	writeBackup(t, config.BackupConfig.Dir, "20240131_020000", map[string]string{
		"storage/app/avatar.png": "png",
	})
	runner := &fakeRunner{}

	err := RestoreActionHandler(context.Background(), config, runner, helpers.NewLogger(io.Discard, false), answer(false), "", "20240131_020000", true)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(config.AppDir, "storage", "app", "avatar.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(content))

	require.Len(t, runner.commands, 1)
	assert.Equal(t, "docker-compose exec -T -e MYSQL_PWD db mysql -u shop_user shop", runner.commands[0].String())
	assert.NotContains(t, runner.commands[0].String(), "s3cret")
	assert.Equal(t, []string{"MYSQL_PWD=s3cret"}, runner.commands[0].Env)
	assert.Equal(t, "INSERT INTO users VALUES (1);\n", runner.stdin)
}

func TestRestoreCancelled(t *testing.T) {
	config := appConfig(t)
	writeBackup(t, config.BackupConfig.Dir, "20240131_020000", map[string]string{"storage/new.txt": "new"})
	runner := &fakeRunner{}

	err := RestoreActionHandler(context.Background(), config, runner, helpers.NewLogger(io.Discard, false), answer(false), "", "20240131_020000", false)
	require.NoError(t, err)
	assert.Empty(t, runner.commands)
	assert.NoFileExists(t, filepath.Join(config.AppDir, "storage", "new.txt"))
}

func TestRestoreRejectsEscapingPaths(t *testing.T) {
	config := appConfig(t)
	writeBackup(t, config.BackupConfig.Dir, "20240131_020000", map[string]string{"../../evil.sh": "rm -rf /"})

	err := RestoreActionHandler(context.Background(), config, &fakeRunner{}, helpers.NewLogger(io.Discard, false), answer(true), "", "20240131_020000", false)
	assert.Error(t, err)
}

func TestRestoreUnknownTimestamp(t *testing.T) {
	config := appConfig(t)
	err := RestoreActionHandler(context.Background(), config, &fakeRunner{}, helpers.NewLogger(io.Discard, false), answer(true), "", "19700101_000000", true)
	assert.Error(t, err)
}

func TestRunTaskDisablesExecutionCheck(t *testing.T) {
	config := appConfig(t)
	config.BuildTasks = []domain.Task{{
		Name:           "composer",
		Dir:            config.AppDir,
		CommandArgs:    domain.CommandArgs{"composer", "install"},
		ExecutionCheck: domain.ModificationDateTaskExecutionCheck{UpdatedFile: "/nonexistent"},
	}}
	runner := &fakeRunner{}

	require.NoError(t, RunTaskActionHandler(context.Background(), config, runner, helpers.NewLogger(io.Discard, false), "composer"))
	require.Len(t, runner.commands, 1)
	assert.Equal(t, "composer install", runner.commands[0].String())

	assert.Error(t, RunTaskActionHandler(context.Background(), config, runner, helpers.NewLogger(io.Discard, false), "bower"))
}

func TestStart(t *testing.T) {
	config := appConfig(t)
	runner := &fakeRunner{}

	require.NoError(t, StartActionHandler(context.Background(), config, runner))
	assert.Equal(t, "docker-compose up -d", runner.commands[0].String())
	assert.Equal(t, config.AppDir, runner.commands[0].Dir)
}

func TestComposeAction(t *testing.T) {
	config := appConfig(t)
	runner := &fakeRunner{}

	require.NoError(t, ComposeActionHandler(context.Background(), config, runner, "logs", "app"))
	assert.Equal(t, "docker-compose logs app", runner.commands[0].String())
}

func TestRestoreBackupRoundTrip(t *testing.T) {
	config := appConfig(t)
	log := helpers.NewLogger(io.Discard, false)
	runner := &fakeRunner{output: "-- MySQL dump\n"}

	result, err := BackupActionHandler(context.Background(), config, runner, log, "", time.Date(2024, 1, 31, 2, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// lose the application files
	logFile := filepath.Join(config.AppDir, "storage", "logs", "app.log")
	require.NoError(t, os.RemoveAll(filepath.Join(config.AppDir, "storage")))
	require.NoError(t, os.WriteFile(filepath.Join(config.AppDir, ".env"), []byte("DB_DATABASE=broken\n"), 0600))

	restoreRunner := &fakeRunner{}
	err = RestoreActionHandler(context.Background(), config, restoreRunner, log, answer(false), "", result.Timestamp, true)
	require.NoError(t, err)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, "log line\n", string(content))

	env, err := os.ReadFile(filepath.Join(config.AppDir, ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "DB_DATABASE=shop")

	require.Len(t, restoreRunner.commands, 1)
	assert.Equal(t, "docker-compose exec -T -e MYSQL_PWD db mysql -u shop_user shop", restoreRunner.commands[0].String())
	assert.Equal(t, "-- MySQL dump\n", restoreRunner.stdin)
}
