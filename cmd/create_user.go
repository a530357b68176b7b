package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/retailops/backoffice/internal/config"
	"github.com/retailops/backoffice/internal/models"
	"github.com/retailops/backoffice/internal/services"
	"github.com/retailops/backoffice/internal/store"
	"github.com/retailops/backoffice/internal/store/migrations"
)

type createUserOptions struct {
	name     string
	surname  string
	username string
	password string
	timezone string
	admin    bool
}

func NewCreateUserCommand(cfg *config.Configuration) *cobra.Command {
	opts := &createUserOptions{}

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Register a back-office account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return createUser(cmd, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", "", "first name")
	flags.StringVar(&opts.surname, "surname", "", "last name")
	flags.StringVar(&opts.username, "username", "", "login email address")
	flags.StringVar(&opts.password, "password", "", "plain-text password, stored hashed")
	flags.StringVar(&opts.timezone, "timezone", "UTC", "IANA timezone for the account")
	flags.BoolVar(&opts.admin, "admin", false, "grant the admin role")

	return cmd
}

func createUser(cmd *cobra.Command, cfg *config.Configuration, opts *createUserOptions) error {
	ctx := cmd.Context()

	db, err := store.NewDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	st := store.NewStore(db)
	auth := services.NewAuthService(st.Users(), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	user := &models.User{
		Name:     opts.name,
		Surname:  opts.surname,
		Username: opts.username,
		Timezone: opts.timezone,
	}
	if opts.admin {
		user.Roles = []string{models.RoleAdmin}
	}

	if err := auth.CreateUser(ctx, user, opts.password); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	zap.S().Named("create_user").Infow("user created", "username", user.Username, "role", user.PrimaryRole())
	return nil
}
