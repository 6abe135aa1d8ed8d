package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"

	"github.com/mmynk/moneybalance/internal/config"
	"github.com/mmynk/moneybalance/internal/service"
	"github.com/mmynk/moneybalance/internal/storage/sqlite"
	"github.com/mmynk/moneybalance/internal/validation"
	"github.com/mmynk/moneybalance/pkg/logging"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "mbexport",
	Short:        "Inspect and export MoneyBalance calculations",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG"), "path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})
}

// app is the service stack shared by all subcommands.
type app struct {
	cfg config.Config
	svc *service.CalculationService
}

// withApp loads the config, opens the store and runs fn against the service.
func withApp(fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		logging.SetupWithLevel(slog.LevelDebug)
	} else {
		logging.Configure(cfg.LogLevel, cfg.LogFormat)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", cfg.DBPath, err)
	}
	defer store.Close()

	validator := validation.New(cfg.Thresholds(), cfg.Language())
	a := &app{
		cfg: cfg,
		svc: service.NewCalculationService(store, validator, cfg.Language()),
	}
	return fn(context.Background(), a)
}
