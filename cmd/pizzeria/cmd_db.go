package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/database/seeders"
	"github.com/shashiranjanraj/pizzeria/pkg/database"
	"github.com/shashiranjanraj/pizzeria/pkg/migration"
)

// withDB loads config, opens the database and closes it after fn.
func withDB(ctx context.Context, fn func(db *gorm.DB) error) error {
	if err := config.Load(); err != nil {
		return err
	}
	db, err := database.Connect(ctx, config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	return fn(db)
}

// pizzeria migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations...")
			return migration.New(db, cmd.OutOrStdout()).Run(cmd.Context())
		})
	},
}

// pizzeria migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch...")
			return migration.New(db, cmd.OutOrStdout()).Rollback(cmd.Context())
		})
	},
}

// pizzeria migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			return migration.New(db, cmd.OutOrStdout()).Status(cmd.Context())
		})
	},
}

// pizzeria seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders...")
			return seeders.RunAll(cmd.Context(), db, cmd.OutOrStdout())
		})
	},
}
