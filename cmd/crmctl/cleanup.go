package main

import (
	"github.com/spf13/cobra"

	"github.com/onedayhr/crm-api/internal/infra/database"
	"github.com/onedayhr/crm-api/internal/infra/worker"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Deactivate expired invites and purge stale reset tokens once",
	Args:  cobra.NoArgs,
	RunE:  runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	w := worker.NewTokenCleanupWorker(database.NewInviteRepository(db), database.NewPasswordResetRepository(db), 0)
	w.RunOnce(cmd.Context())
	return nil
}
