package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/saturnines/lakehouse-sdk/pkg/config"
	"github.com/saturnines/lakehouse-sdk/pkg/lakehouse"
	"github.com/saturnines/lakehouse-sdk/pkg/logging"
)

// app carries global flag values and lazily built collaborators.
type app struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string

	logger *slog.Logger
	svc    *lakehouse.Service
}

// service builds the client from --config, or from LAKEHOUSE_* variables.
func (a *app) service() (*lakehouse.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	var (
		cfg *config.Client
		err error
	)
	if a.configPath != "" {
		if a.envFile != "" {
			if err := godotenv.Load(a.envFile); err != nil {
				return nil, fmt.Errorf("load env file: %w", err)
			}
		}
		cfg, err = config.DefaultLoader().Load(a.configPath)
	} else if a.envFile != "" {
		cfg, err = config.LoadEnv(config.DefaultEnvPrefix, a.envFile)
	} else {
		cfg, err = config.LoadEnv(config.DefaultEnvPrefix)
	}
	if err != nil {
		return nil, err
	}

	svc, err := lakehouse.New(cfg, lakehouse.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "lakectl",
		Short:         "Browse lakehouse resources from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.logLevel, a.logFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML client config (default: LAKEHOUSE_* environment)")
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Load environment variables from this file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", logging.FormatText, "Log format: text or json")

	cmd.AddCommand(cmdList(a))
	cmd.AddCommand(cmdGet(a))
	cmd.AddCommand(cmdOperations())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		stop()
		os.Exit(1)
	}
}
