package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benoitkugler/okcanvas/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by the sub commands,
// set up before any of them runs
type app struct {
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd returns the okcanvas command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:          "okcanvas",
		Short:        "okcanvas draws lists of shapes and text, given as JSON, to png, pdf or svg files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "TOML configuration file (default: the okcanvas/config.toml user file, if any)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "overrides the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRenderCmd(a), newWatchCmd(a), newShapesCmd())
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.LoadFile(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := cfg.Logger()
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zap.ReplaceGlobals(logger)
	a.cfg, a.logger = cfg, logger
	return nil
}

// RootContext returns a context cancelled on interrupt.
func RootContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func Execute() {
	ctx, cancel := RootContext()
	defer cancel()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
