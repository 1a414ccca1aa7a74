package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitediary/internal/domain"
	"sitediary/internal/repository/postgres"
	"sitediary/internal/service"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage app users",
	}

	var input service.CreateUserInput
	var role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an app user with a bcrypt-hashed password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			input.Role = domain.UserRole(role)
			user, err := service.NewUserService(postgres.NewUserRepo(db)).Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			log.Info("user: created", zap.String("username", user.Username), zap.String("role", string(user.Role)))
			fmt.Fprintln(cmd.OutOrStdout(), user.ID)
			return nil
		},
	}
	create.Flags().StringVar(&input.Username, "username", "", "login name")
	create.Flags().StringVar(&input.Password, "password", "", "password, at least 8 characters")
	create.Flags().StringVar(&input.Name, "name", "", "display name")
	create.Flags().StringVar(&role, "role", string(domain.RoleUser), "admin or user")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
