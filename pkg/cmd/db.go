package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/busvault/pkg/internal/storage/db"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
	}

	dbListCmd = &cobra.Command{
		Use:   "ls",
		Short: "list all registered database types",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")
			for _, dbType := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+dbType)
			}
		},
	}

	dbMigrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "create or update the buses tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := mustApp()

			client := a.Manager().GetDBClient()
			if err := client.Migrate(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migration completed")

			return nil
		},
	}

	dbDropCmd = &cobra.Command{
		Use:   "drop",
		Short: "drop the buses tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := mustApp()

			client := a.Manager().GetDBClient()
			if err := client.Drop(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "tables dropped")

			return nil
		},
	}
)

// registerDBCommands 注册数据库相关命令.
func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbDropCmd)
}
