package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uvm/internal/core"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "UVM"

type RootConfig struct {
	ConfigFile          string
	LogLevel            string
	InstallRoot         string
	SearchRoots         []string
	ScanInclude         []string
	ScanWorkers         int
	InstallerBaseURL    string
	InstallerRetries    int
	InstallerTimeoutSec int
	MetricsTextfile     string
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := newRootCommand()
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "uvm",
		Short:         "Editor installation manager",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&cfg.InstallRoot, "install-root", "", "Directory new editor versions are installed into")
	flags.StringSliceVar(&cfg.SearchRoots, "search-root", nil, "Additional directories searched for installations")
	flags.StringSliceVar(&cfg.ScanInclude, "scan-include", nil, "Glob patterns installation directory names must match")
	flags.IntVar(&cfg.ScanWorkers, "scan-workers", 4, "Parallel installation probes")
	flags.StringVar(&cfg.InstallerBaseURL, "installer-base-url", "", "Base URL of the editor archive mirror")
	flags.IntVar(&cfg.InstallerRetries, "installer-retries", 3, "Download attempts per archive")
	flags.IntVar(&cfg.InstallerTimeoutSec, "installer-timeout", 600, "Download timeout in seconds")
	flags.StringVar(&cfg.MetricsTextfile, "metrics-textfile", "", "Write counters to this file in textfile collector format")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("install_root", flags.Lookup("install-root"))
	_ = viper.BindPFlag("search_roots", flags.Lookup("search-root"))
	_ = viper.BindPFlag("scan_include", flags.Lookup("scan-include"))
	_ = viper.BindPFlag("scan_workers", flags.Lookup("scan-workers"))
	_ = viper.BindPFlag("installer_base_url", flags.Lookup("installer-base-url"))
	_ = viper.BindPFlag("installer_retries", flags.Lookup("installer-retries"))
	_ = viper.BindPFlag("installer_timeout_sec", flags.Lookup("installer-timeout"))
	_ = viper.BindPFlag("metrics_textfile", flags.Lookup("metrics-textfile"))

	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newDetectCommand())
	cmd.AddCommand(newLocateCommand())
	cmd.AddCommand(newInstallCommand())
	cmd.AddCommand(newProjectsCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("uvm")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/uvm")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	var domainErr *core.Error
	if errors.As(err, &domainErr) {
		switch {
		case errors.Is(domainErr, core.ErrMalformedVersion):
			return 2
		case errors.Is(domainErr, core.ErrInstallationFailed):
			return 4
		default:
			return 5
		}
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeNotFound:
		return 3
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var domainErr *core.Error
	if errors.As(err, &domainErr) {
		return domainErr.Error()
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
