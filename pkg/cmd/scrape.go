package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yeisme/busvault/pkg/internal/jobs"
	"github.com/yeisme/busvault/pkg/internal/scraper"
	"github.com/yeisme/busvault/pkg/internal/service"
	nlog "github.com/yeisme/busvault/pkg/log"
	"github.com/yeisme/busvault/pkg/scheduler"
)

var (
	scrapeDump    bool
	scrapeSources []string

	scrapeCmd = &cobra.Command{
		Use:   "scrape",
		Short: "Scrape and ingest bus listings",
	}

	scrapeRunCmd = &cobra.Command{
		Use:   "run",
		Short: "run one full scrape and ingest pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := mustApp()

			// 命令行指定的来源覆盖配置
			if len(scrapeSources) > 0 {
				a.Config.Scraper.Sources = scrapeSources
			}

			svc := service.NewIngestService(a.Ctx)

			report, err := svc.Run(cmd.Context(), scrapeDump)
			if err != nil {
				return err
			}

			for _, sr := range report.Sources {
				fmt.Fprintf(cmd.OutOrStdout(), "%-40s attempted=%d saved=%d failed=%d\n",
					sr.Source, sr.Attempted, sr.Saved, sr.Failed)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "total: attempted=%d saved=%d failed=%d\n",
				report.Attempted, report.Saved, report.Failed)

			return nil
		},
	}

	scrapeListCmd = &cobra.Command{
		Use:   "ls",
		Short: "list all registered scrape sources",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered scrape sources:")
			for _, name := range scraper.GetRegisteredSources() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+name)
			}
		},
	}

	scrapeCronCmd = &cobra.Command{
		Use:   "cron",
		Short: "run the scheduled scrape loop until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := mustApp()

			sched, err := scheduler.NewScheduler()
			if err != nil {
				return err
			}

			if err := jobs.RegisterCronJobs(sched, a.Manager()); err != nil {
				return err
			}

			sched.Start()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			nlog.Logger().Info().Msg("shutting down scheduler")

			return sched.Stop()
		},
	}
)

// registerScrapeCommands 注册抓取相关命令.
func registerScrapeCommands() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.AddCommand(scrapeRunCmd)
	scrapeCmd.AddCommand(scrapeListCmd)
	scrapeCmd.AddCommand(scrapeCronCmd)

	scrapeRunCmd.Flags().BoolVar(&scrapeDump, "dump", false, "write raw scrape results to the dump directory")
	scrapeRunCmd.Flags().StringSliceVar(&scrapeSources, "source", nil, "sources to run (default: configured or all registered)")
}
