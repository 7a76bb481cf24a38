package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jawher/mow.cli"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"webup/stackup/actions"
	"webup/stackup/config"
	"webup/stackup/domain"
	"webup/stackup/helpers"
	"webup/stackup/installer"
	"webup/stackup/tasks"
)

func main() {

	app := cli.App("stackup", "Provision the PHP web stack on an Ubuntu host")

	app.Version("v version", "stackup 1.0.0")

	configPath := app.String(cli.StringOpt{
		Name:   "c config",
		Value:  config.DefaultFilename,
		Desc:   "Path of the configuration file, optional unless set explicitly",
		EnvVar: "STACKUP_CONFIG",
	})
	noColor := app.Bool(cli.BoolOpt{
		Name:  "no-color",
		Value: false,
		Desc:  "Disable the colored output",
	})

	var (
		cfg     domain.Config
		log     *helpers.Logger
		runner  domain.Runner
		colored bool
	)

	app.Before = func() {
		colored = !*noColor && isatty.IsTerminal(os.Stdout.Fd())
		log = helpers.NewLogger(os.Stdout, colored)
		runner = domain.NewExecRunner(os.Stdout)

		required := *configPath != config.DefaultFilename
		loaded, err := config.Load(*configPath, required)
		if err != nil {
			log.Error("Invalid configuration", zap.Error(err))
			cli.Exit(1)
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Command("install", "Provision the whole stack on this host", func(cmd *cli.Cmd) {

		domainOpt := cmd.StringOpt("d domain", "", "Domain name serving the application, asked when empty")
		emailOpt := cmd.StringOpt("e email", "", "Email of the first admin account, asked when empty")

		cmd.Action = func() {
			inst := installer.New(cfg, runner, log)
			inst.Preset = domain.InstallContext{Domain: *domainOpt, Email: *emailOpt}
			inst.Colored = colored

			if _, err := inst.Run(ctx); err != nil {
				exitWithError(log, "Installation failed", err)
			}
		}
	})

	app.Command("check", "Check that this host can run the stack", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			inst := installer.New(cfg, runner, log)
			info, err := inst.Preflight(ctx)
			if err != nil {
				exitWithError(log, "Host not supported", err)
			}
			log.Success("Host is supported", zap.String("os", info.String()))
		}
	})

	app.Command("start", "Start the services", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			if err := actions.StartActionHandler(ctx, cfg, runner); err != nil {
				exitWithError(log, "Unable to start the services", err)
			}
		}
	})

	app.Command("stop", "Stop the services", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			if err := actions.ComposeActionHandler(ctx, cfg, runner, "stop"); err != nil {
				exitWithError(log, "Unable to stop the services", err)
			}
		}
	})

	app.Command("restart", "Restart the services", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			if err := actions.ComposeActionHandler(ctx, cfg, runner, "restart"); err != nil {
				exitWithError(log, "Unable to restart the services", err)
			}
		}
	})

	app.Command("logs", "Display logs of all services (or the specified service)", func(cmd *cli.Cmd) {

		cmd.Spec = "[SERVICE]"
		service := cmd.StringArg("SERVICE", "", "The Compose service to log")

		cmd.Action = func() {
			args := []string{"logs"}
			if *service != "" {
				args = append(args, *service)
			}
			if err := actions.ComposeActionHandler(ctx, cfg, runner, args...); err != nil {
				exitWithError(log, "Unable to display the logs", err)
			}
		}
	})

	app.Command("tasks", "List the available tasks", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			fmt.Println("Available tasks:")
			for _, task := range tasks.AllTaskNames(cfg) {
				fmt.Printf("   %s\n", task)
			}
		}
	})

	app.Command("run", "Execute a task", func(cmd *cli.Cmd) {

		cmd.Spec = "TASK"
		taskName := cmd.StringArg("TASK", "", "Execute the specified task. Run 'stackup tasks' to get the list of the tasks")

		cmd.Action = func() {
			if err := actions.RunTaskActionHandler(ctx, cfg, runner, log, domain.TaskID(*taskName)); err != nil {
				exitWithError(log, "Task failed", err)
			}
		}
	})

	app.Command("backup", "Dump the database and archive the application files", func(cmd *cli.Cmd) {

		output := cmd.StringOpt("o output", "", "Directory receiving the backup, the configured backup dir by default")

		cmd.Action = func() {
			result, err := actions.BackupActionHandler(ctx, cfg, runner, log, *output, time.Now())
			if err != nil {
				exitWithError(log, "Backup failed", err)
			}
			log.Success("Backup done", zap.String("timestamp", result.Timestamp))
		}
	})

	app.Command("restore", "Restore a backup made by 'stackup backup' or the nightly job", func(cmd *cli.Cmd) {

		cmd.Spec = "[-i] [-y] TIMESTAMP"
		input := cmd.StringOpt("i input", "", "Directory holding the backup, the configured backup dir by default")
		yes := cmd.BoolOpt("y yes", false, "Do not ask for confirmation")
		timestamp := cmd.StringArg("TIMESTAMP", "", "Timestamp of the backup, i.e. 20240131_020000")

		cmd.Action = func() {
			err := actions.RestoreActionHandler(ctx, cfg, runner, log, helpers.NewAsker(), *input, *timestamp, *yes)
			if err != nil {
				exitWithError(log, "Restoration failed", err)
			}
		}
	})

	app.Run(os.Args)
}

func exitWithError(log *helpers.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	cli.Exit(1)
}
