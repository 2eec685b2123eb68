package cli

import (
	"fmt"
	"log"

	"ccse-study-service/internal/catalog"
	"ccse-study-service/internal/config"
	pgstore "ccse-study-service/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewSeedCmd writes the built-in catalog into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog_tasks table with the built-in questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if err := runMigrationsWithConfig(ctx, cfg); err != nil {
				return err
			}

			db := pgstore.OpenBun(cfg.Postgres.URL)
			defer db.Close()

			n, err := pgstore.SeedCatalog(ctx, db, catalog.BuiltinTasks())
			if err != nil {
				return err
			}
			log.Printf("seeded %d tasks", n)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tasks\n", n)
			return nil
		},
	}
}
