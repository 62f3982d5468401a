package commands

import (
	"context"
	"fmt"

	"shop/internal/repos"
	"shop/internal/services"

	"github.com/spf13/cobra"
)

var (
	// Createuser flags
	newUsername string
	newPassword string
	newStaff    bool
)

var createUserCmd = &cobra.Command{
	Use:   "createuser",
	Short: "Create a user account",
	Long: `Create a user account directly in the database. With --staff the account
may manage the catalog and sees every user's carts and orders.

Examples:
  shop createuser --username admin --password s3cret --staff`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateUser(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(createUserCmd)

	createUserCmd.Flags().StringVarP(&newUsername, "username", "u", "", "Username (required)")
	createUserCmd.Flags().StringVar(&newPassword, "password", "", "Password (required)")
	createUserCmd.Flags().BoolVar(&newStaff, "staff", false, "Grant staff privilege")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")
}

func runCreateUser(ctx context.Context) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	svc := services.NewUserService(repos.NewUserRepo(db))
	in := services.UserInput{Username: newUsername, Password: newPassword}
	create := svc.Register
	if newStaff {
		create = svc.CreateStaff
	}
	u, err := create(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	fmt.Printf("Created user %q (id %d, staff=%t)\n", u.Username, u.ID, u.IsStaff)
	return nil
}
