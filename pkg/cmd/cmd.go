// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/busvault/pkg/app"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "busvault",
		Short: "A command line tool for ingesting used bus listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	registerConfigsCommands()
	registerDBCommands()
	registerScrapeCommands()
}

// mustApp 初始化运行环境，供需要数据库的子命令使用.
func mustApp() *app.App {
	return app.NewApp(configPath)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
