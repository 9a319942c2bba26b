package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitdiary/backend/config"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/services"
	"github.com/fitdiary/backend/utils"
)

// Accounts are provisioned here; the API has no sign-up endpoint.
func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var in services.RegisterInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user that can log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.NewValidator().Struct(in); err != nil {
				return fmt.Errorf("invalid user: %w", err)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := config.OpenDB(cfg, config.NewLogger(cfg))
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			repos := repositories.NewRepos(db.WithContext(cmd.Context()))
			user, err := services.NewAuthService(nil).Register(cmd.Context(), repos.Users, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s <%s>\n", user.ID, user.Email)
			return nil
		},
	}
	createCmd.Flags().StringVar(&in.Email, "email", "", "login email")
	createCmd.Flags().StringVar(&in.Name, "name", "", "display name")
	createCmd.Flags().StringVar(&in.Password, "password", "", "initial password")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createCmd)
	return userCmd
}
