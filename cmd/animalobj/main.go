// animalobj exports blocky creature templates as Wavefront OBJ models.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/animalobj/internal/catalogue"
	"github.com/Faultbox/animalobj/internal/config"
	"github.com/Faultbox/animalobj/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds state shared by all subcommands.
type app struct {
	configPath string
	ov         config.Overrides

	cfg *config.Config
	cat *catalogue.Static
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "animalobj",
		Short: "Export creature templates as Wavefront OBJ models",
		Long: `animalobj turns blocky creature templates into Wavefront OBJ files
ready for import into Blender or any other modelling tool.

Configuration is read from --config, ./animalobj.yaml or the user config
directory, in that order. Flags override values from the file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to config file")
	pf.StringVar(&a.ov.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.ov.LogFile, "log-file", "", "Also write logs to this file (rotated)")
	pf.StringVar(&a.ov.Catalogue, "catalogue", "", "Template catalogue YAML (default: built-in templates)")

	root.AddCommand(
		newExportCmd(a),
		newListCmd(a),
		newInspectCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads the config and initializes logging before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, a.ov)
	if err != nil {
		return err
	}
	a.cfg = cfg

	err = logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		Console: cmd.ErrOrStderr(),
		File:    cfg.Logging.LogFile,
		Rotation: logger.Rotation{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		},
	})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("output_dir", cfg.Export.OutputDir),
		zap.String("catalogue", cfg.Catalogue.Path),
		zap.Int("workers", cfg.Export.Workers),
	)
	return nil
}

// catalogue loads the configured template catalogue once.
func (a *app) catalogue() (*catalogue.Static, error) {
	if a.cat != nil {
		return a.cat, nil
	}

	var (
		cat *catalogue.Static
		err error
	)
	if a.cfg.Catalogue.Path == "" {
		cat, err = catalogue.Default()
	} else {
		cat, err = catalogue.LoadFile(a.cfg.Catalogue.Path)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("catalogue loaded",
		zap.String("path", a.cfg.Catalogue.Path),
		zap.Int("templates", cat.Len()),
	)
	a.cat = cat
	return cat, nil
}
