package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/iliyamo/property-backoffice/internal/config"
	"github.com/iliyamo/property-backoffice/internal/database"
	"github.com/iliyamo/property-backoffice/internal/repository/mongostore"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema of the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if list, _ := cmd.Flags().GetBool("list"); list {
				return printTables(cmd.OutOrStdout())
			}
			if err := migrateStore(cmd.Context(), cfg, newLogger("migrate", cfg.App.Env)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s store\n", cfg.Store.Driver)
			return nil
		},
	}
	cmd.Flags().Bool("list", false, "Print the MySQL tables without connecting")
	return cmd
}

func printTables(w io.Writer) error {
	_, err := fmt.Fprintln(w, strings.Join(database.Tables(), "\n"))
	return err
}

// migrateStore applies the schema of the configured backend.  The memory
// store has none.
func migrateStore(ctx context.Context, cfg config.Config, l *log.Logger) error {
	switch cfg.Store.Driver {
	case config.DriverMySQL:
		db, err := database.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		l.Infof("mysql schema applied: %s", strings.Join(database.Tables(), ", "))
	case config.DriverMongo:
		db, err := database.OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		defer func() { _ = db.Client().Disconnect(context.Background()) }()
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		l.Infof("mongo indexes ensured on %s", cfg.Mongo.Database)
	default:
		l.Infof("store %s has no schema", cfg.Store.Driver)
	}
	return nil
}
