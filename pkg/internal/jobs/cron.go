// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"

	"github.com/yeisme/busvault/pkg/configs"
	ctxPkg "github.com/yeisme/busvault/pkg/context"
	"github.com/yeisme/busvault/pkg/internal/service"
	"github.com/yeisme/busvault/pkg/internal/storage"
	"github.com/yeisme/busvault/pkg/log"
	"github.com/yeisme/busvault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 按 scraper.cron 表达式（默认每天 02:00）执行一轮全来源抓取入库
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	cronExpr := configs.GetConfig().Scraper.Cron

	return sched.AddCron(JobScrapeIngest, cronExpr, runScrapeIngest, baseCtx)
}

// runScrapeIngest 执行一轮完整的 抓取 → 对账 → 入库，并把原始抓取结果落盘.
func runScrapeIngest(ctx context.Context) {
	l := log.Logger().With().Str("job", JobScrapeIngest).Logger()

	svc := service.NewIngestService(ctx)

	report, err := svc.Run(ctx, true)
	if err != nil {
		l.Error().Err(err).Msg("scheduled ingest aborted")

		return
	}

	l.Info().
		Str("run_id", report.RunID).
		Int("attempted", report.Attempted).
		Int("saved", report.Saved).
		Int("failed", report.Failed).
		Msg("scheduled ingest finished")
}
