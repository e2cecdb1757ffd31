package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yeisme/busvault/pkg/configs"
	"github.com/yeisme/busvault/pkg/internal/normalize"
	"github.com/yeisme/busvault/pkg/internal/reconcile"
	"github.com/yeisme/busvault/pkg/internal/scraper"
	"github.com/yeisme/busvault/pkg/internal/types"
	nlog "github.com/yeisme/busvault/pkg/log"
	"github.com/yeisme/busvault/pkg/metrics"
)

// IngestService 驱动 抓取 → 对账 → 入库 的完整管道.
// 来源之间彼此独立：一个来源抓取失败不影响其余来源，
// 来源内部逐条入库，坏记录跳过不中断批次.
type IngestService struct {
	engine *reconcile.Engine
	cfg    *configs.ScraperConfig
	deps   scraper.Deps
}

// NewIngestService 从 context 中的存储管理器构建入库服务.
func NewIngestService(c context.Context) *IngestService {
	cfg := &configs.GetConfig().Scraper

	return &IngestService{
		engine: reconcile.NewEngine(c),
		cfg:    cfg,
		deps: scraper.Deps{
			Fetcher: scraper.NewFetcher(cfg),
			DumpDir: cfg.DumpDir,
		},
	}
}

// Sources 返回本次运行实际启用的来源名称.
// 配置里 sources 为空表示启用全部注册来源.
func (s *IngestService) Sources() []string {
	if len(s.cfg.Sources) > 0 {
		return s.cfg.Sources
	}

	return scraper.GetRegisteredSources()
}

// Run 对全部启用来源依次执行一轮完整入库，返回汇总报告.
// dump 为 true 时把每个来源的原始抓取结果落盘到 dump 目录.
func (s *IngestService) Run(ctx context.Context, dump bool) (*types.IngestReport, error) {
	report := &types.IngestReport{RunID: uuid.NewString()}

	logger := nlog.Logger().With().
		Str("component", "ingest").
		Str("run_id", report.RunID).
		Logger()

	for _, name := range s.Sources() {
		src, ok, err := scraper.NewSource(name, s.deps)
		if !ok {
			logger.Warn().Str("source", name).Msg("unknown source in config, skipped")

			continue
		}

		if err != nil {
			logger.Error().Err(err).Str("source", name).Msg("source init failed, skipped")

			continue
		}

		report.Add(s.runSource(ctx, logger, src, dump))

		if ctx.Err() != nil {
			return report, ctx.Err()
		}
	}

	logger.Info().
		Int("attempted", report.Attempted).
		Int("saved", report.Saved).
		Int("failed", report.Failed).
		Msg("ingest run finished")

	return report, nil
}

// runSource 执行单个来源的 抓取 → 逐条对账，并更新指标.
func (s *IngestService) runSource(ctx context.Context, logger zerolog.Logger,
	src scraper.Source, dump bool,
) types.SourceReport {
	sr := types.SourceReport{Source: src.Name()}

	start := time.Now()

	raws, err := src.Scrape(ctx)

	metrics.ScrapeDuration.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Error().Err(err).Str("source", src.Name()).Msg("scrape failed")

		return sr
	}

	logger.Info().Str("source", src.Name()).Int("records", len(raws)).Msg("scrape finished")

	if dump && len(raws) > 0 {
		if path, err := scraper.WriteDump(s.deps.DumpDir, src.Name(), raws); err != nil {
			logger.Error().Err(err).Str("source", src.Name()).Msg("write dump failed")
		} else {
			logger.Info().Str("path", path).Msg("dump written")
		}
	}

	for _, raw := range raws {
		// 来源标识由服务层兜底，站点适配器可不填
		if raw.Source == nil {
			raw.Source = types.StrPtr(src.Name())
		}

		sr.Attempted++
		metrics.RecordsAttempted.WithLabelValues(src.Name()).Inc()

		bus, action, err := s.engine.Reconcile(ctx, raw)
		if err != nil {
			sr.Failed++

			reason := "persistence"
			if errors.Is(err, normalize.ErrValidation) {
				reason = "validation"
			}

			metrics.RecordsFailed.WithLabelValues(src.Name(), reason).Inc()

			continue
		}

		sr.Saved++
		metrics.RecordsSaved.WithLabelValues(src.Name(), string(action)).Inc()

		logger.Debug().
			Uint("id", bus.ID).
			Str("action", string(action)).
			Str("title", bus.Title).
			Msg("record persisted")
	}

	return sr
}
