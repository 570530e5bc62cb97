package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/onedayhr/crm-api/internal/infra/database"
	"github.com/onedayhr/crm-api/internal/infra/security"
	"github.com/onedayhr/crm-api/internal/usecase"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage privileged accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create or update an account allowed to generate invites",
	Args:  cobra.NoArgs,
	RunE:  runAdminCreate,
}

var (
	adminEmail    string
	adminPassword string
	adminName     string
)

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminCreateCmd)

	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "Account e-mail")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "Account password (or CRM_ADMIN_PASSWORD)")
	adminCreateCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	adminCreateCmd.MarkFlagRequired("email")
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	password := adminPassword
	if password == "" {
		password = os.Getenv("CRM_ADMIN_PASSWORD")
	}

	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := usecase.BootstrapAdmin(cmd.Context(), database.NewUserRepository(db), security.NewPasswordHasher(),
		usecase.BootstrapAdminInput{Email: adminEmail, Password: password, Name: adminName})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready (id %d)\n", user.Email, user.ID)
	return nil
}
