// Command crmctl runs one-off maintenance against the CRM database.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/onedayhr/crm-api/internal/config"
	"github.com/onedayhr/crm-api/internal/infra/database"
)

var databaseURL string

var rootCmd = &cobra.Command{
	Use:          "crmctl",
	Short:        "Maintenance commands for the recruiting CRM",
	SilenceUsage: true,
}

func init() {
	godotenv.Load()
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", config.Load().DatabaseURL, "Postgres connection string")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func openDB(cmd *cobra.Command) (*sql.DB, error) {
	db, err := database.NewDBConnection(cmd.Context(), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	log.Println("✅ connected to database")
	return db, nil
}
