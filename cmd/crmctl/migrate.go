package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/onedayhr/crm-api/internal/infra/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and seed the default stages",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.CreateSchema(cmd.Context(), db); err != nil {
		return err
	}
	log.Println("✅ schema is up to date")
	return nil
}
