package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Abeautifulsnow/pipu/internal/config"
	"github.com/Abeautifulsnow/pipu/internal/envlock"
	"github.com/Abeautifulsnow/pipu/internal/execx"
	"github.com/Abeautifulsnow/pipu/internal/messages"
	"github.com/Abeautifulsnow/pipu/internal/pip"
	"github.com/Abeautifulsnow/pipu/internal/pyenv"
	"github.com/Abeautifulsnow/pipu/internal/terminal"
	"github.com/Abeautifulsnow/pipu/internal/ui"
	"github.com/Abeautifulsnow/pipu/internal/upgrade"
)

var isTerminal = terminal.IsInteractive

var newPrompter = func() ui.Prompter { return ui.NewHuhPrompter() }

func newRootCmd() *cobra.Command {
	var (
		asyncUpgrade bool
		yes          bool
		pythonFlag   string
		configPath   string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			out := cmd.OutOrStdout()

			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			path := configPath
			if path == "" {
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			override := cfg.Python
			if cmd.Flags().Changed("python") {
				override = pythonFlag
			}
			concurrent := cfg.AsyncUpgrade
			if cmd.Flags().Changed("async-upgrade") {
				concurrent = asyncUpgrade
			}

			python, err := pyenv.Resolve(pyenv.RealSystem{}, override)
			if err != nil {
				return err
			}
			log.Debug("resolved interpreter", zap.String("python", python))

			lock, err := envlock.Acquire(python)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			live := isTerminal()

			spinner := ui.NewSpinner(messages.CheckingForUpdates, live, out)
			spinner.Start()
			runner := execx.NewRunner(log)
			packages, err := pip.NewLister(runner, python, log).ListOutdated(cmd.Context())
			spinner.Stop()
			if err != nil {
				return err
			}

			if len(packages) == 0 {
				ui.PrintUpToDate(out)
				ui.PrintElapsed(out, time.Since(start))
				return nil
			}

			fmt.Fprint(out, ui.RenderTable(packages))

			if !yes {
				confirmed, err := newPrompter().ConfirmUpgrade()
				if err != nil {
					return err
				}
				if !confirmed {
					ui.PrintElapsed(out, time.Since(start))
					return nil
				}
			}

			mode := upgrade.Sequential
			if concurrent {
				mode = upgrade.Concurrent
			}

			reporter := ui.NewProgressReporter(len(packages), live, out)
			reporter.Start()
			upgrader := pip.NewUpgrader(runner, python, reporter, log)
			report, err := upgrade.NewOrchestrator(upgrader, mode, log).Run(cmd.Context(), packages)
			reporter.Stop()
			if err != nil {
				return err
			}

			ui.PrintSeparator(out)
			ui.PrintSummary(out, upgrade.Summarize(report))
			if diff := ui.RenderPinnedDiff(packages, report.Successes); diff != "" {
				fmt.Fprint(out, diff)
			}
			ui.PrintElapsed(out, time.Since(start))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asyncUpgrade, "async-upgrade", "a", false, messages.RootFlagAsync)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.RootFlagYes)
	cmd.Flags().StringVar(&pythonFlag, "python", "", messages.RootFlagPython)
	cmd.Flags().StringVar(&configPath, "config", "", messages.RootFlagConfig)
	cmd.Flags().BoolVar(&verbose, "verbose", false, messages.RootFlagVerbose)
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)

	return cmd
}

// newLogger returns a nop logger unless verbose diagnostics were requested.
// Verbose runs log to stderr so stdout stays parseable.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
