package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cohost-ai/rental-api/internal/core/domain"
	"github.com/cohost-ai/rental-api/internal/infrastructure/db/mongo"
	"github.com/cohost-ai/rental-api/internal/pkg/config"
	"github.com/cohost-ai/rental-api/pkg/logger"
)

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Creates Mongo indexes and seeds the catalog",
	Long: `Creates the ledger indexes in MONGO_DB and inserts the seed catalog when
the properties collection is empty. Safe to run repeatedly. Usage:

	rentald ensure-indexes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty(), Service: "rentald"})

		store, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = store.Close(ctx) }()

		if err := store.Bootstrap(ctx, domain.SeedProperties()); err != nil {
			return err
		}

		log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured and catalog seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ensureIndexesCmd)
}
