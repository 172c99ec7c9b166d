// Command pizzeria runs the order-management API and its maintenance tasks.
//
//	pizzeria serve             # start the HTTP server
//	pizzeria migrate           # run pending migrations
//	pizzeria migrate:rollback  # undo the last batch
//	pizzeria migrate:status
//	pizzeria seed              # insert demo data
//	pizzeria route:list
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the schema migrations with pkg/migration.
	_ "github.com/shashiranjanraj/pizzeria/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pizzeria",
	Short:         "Restaurant order-management API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
