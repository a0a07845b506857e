package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// newRootCommand builds the taskboard command tree. Every subcommand reads
// the same configuration: the optional --config file, overridden by
// TASKBOARD_* environment variables.
func newRootCommand() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "Task tracking API with role-based access control",
		Long: `taskboard serves a JSON API for tasks and comments. Users authenticate
with bearer tokens; ADMIN users manage every task while USER accounts work
only on the tasks they wrote or were assigned.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (YAML); environment variables with the "+config.EnvPrefix+"_ prefix take precedence")

	root.AddCommand(
		newServeCommand(&cfgFile),
		newMigrateCommand(&cfgFile),
		newAdminCommand(&cfgFile),
	)
	return root
}

func newServeCommand(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApplication(cmd.Context(), *cfgFile)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}

func newMigrateCommand(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [" + strings.Join(postgres.MigrationCommands, "|") + "]",
		Short:     "Apply or inspect database schema migrations (default: up)",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log := logger.Setup(cfg.Server)

			if cfg.Database.Driver != driverPostgres {
				return fmt.Errorf("migrations require the %s driver, configured driver is %s",
					driverPostgres, cfg.Database.Driver)
			}

			db, err := postgres.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error("failed to close database", slog.String("error", err.Error()))
				}
			}()

			return postgres.Migrate(cmd.Context(), db, command, log)
		},
	}
}

func newAdminCommand(cfgFile *string) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Administrative user management",
	}

	var email string
	promote := &cobra.Command{
		Use:   "promote",
		Short: "Grant the ADMIN role to an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApplication(cmd.Context(), *cfgFile)
			if err != nil {
				return err
			}
			defer app.cleanup()

			if app.config.Database.Driver == driverMemory {
				return fmt.Errorf("admin promote needs a persistent database, configured driver is %s",
					driverMemory)
			}

			user, err := app.userService.PromoteToAdmin(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("failed to promote %s: %w", email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, user.Role)
			return nil
		},
	}
	promote.Flags().StringVar(&email, "email", "", "email of the user to promote")
	_ = promote.MarkFlagRequired("email")

	admin.AddCommand(promote)
	return admin
}
