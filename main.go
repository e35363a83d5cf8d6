package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"greenbloom/catalog"
	"greenbloom/config"
	"greenbloom/logger"
	"greenbloom/notify"
	"greenbloom/store"
)

var configPath string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:          "greenbloom",
	Short:        "GreenBloom Nursery web shop and watering planner",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "greenbloom.yaml", "Config file (optional)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(remindCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// services is what every command needs once configuration is loaded.
type services struct {
	cfg    *config.Config
	store  *store.Store
	plants *catalog.Plants
	mailer *notify.Mailer
	close  func()
}

func boot(ctx context.Context) (*services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	syncLog, err := logger.Init(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		syncLog()
		return nil, fmt.Errorf("open store: %w", err)
	}
	zap.L().Info("store ready", zap.String("driver", cfg.Store.Driver))

	plants, err := catalog.LoadPlants(cfg.Catalog.PlantsFile)
	if err != nil {
		// pages show the load error message instead
		zap.L().Error("plants not loaded", zap.Error(err))
	}

	return &services{
		cfg:    cfg,
		store:  st,
		plants: plants,
		mailer: notify.NewMailer(cfg.Mail),
		close:  func() {
			if err := st.Close(); err != nil {
				zap.L().Warn("close store", zap.Error(err))
			}
			syncLog()
		},
	}, nil
}
