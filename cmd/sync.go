package cmd

import (
	"log"

	"holotable/core/client"
	"holotable/core/config"
	"holotable/core/logger"
	"holotable/core/store"
	"holotable/feature/gamedata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd performs a one-shot forced synchronization and exits.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize game data once and exit",
	Long: `Forces a full game-data and localization synchronization against the
upstream, persists the result to the document store and exits. Useful for
seeding a fresh data directory or cron-driven refreshes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		st, err := store.New(cfg.Store, logg)
		if err != nil {
			return err
		}

		svc := gamedata.NewService(client.NewClient(cfg.Client), st, cfg.Data, logg)
		if err := svc.ForceSync(cmd.Context()); err != nil {
			return err
		}

		state := svc.State()
		logg.Info("Synchronization complete",
			zap.String("game_data_version", state.GameDataVersion),
			zap.String("localization_version", state.LocalizationVersion),
			zap.Int("collections", len(state.KnownCollections)),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
