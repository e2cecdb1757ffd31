// Package metrics 提供监控指标功能.
// 支持Prometheus标准，收集入库管道和系统指标.
//
// Example:
//
//	import "github.com/yeisme/busvault/pkg/metrics"
//
//	err := metrics.InitMetrics(config.Metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// 记录指标
//	metrics.RecordsAttempted.WithLabelValues("daimler").Inc()
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/busvault/pkg/configs"
)

// 全局指标变量.
var (
	// RecordsAttempted 进入 reconcile 的记录计数（按来源）.
	RecordsAttempted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busvault_records_attempted_total",
			Help: "Total number of raw records fed to the reconcile engine",
		},
		[]string{"source"},
	)

	// RecordsSaved 成功入库的记录计数（按来源与动作 insert/update）.
	RecordsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busvault_records_saved_total",
			Help: "Total number of records persisted",
		},
		[]string{"source", "action"},
	)

	// RecordsFailed 校验或写入失败被跳过的记录计数（按来源与原因）.
	RecordsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "busvault_records_failed_total",
			Help: "Total number of records skipped after validation or persistence failure",
		},
		[]string{"source", "reason"},
	)

	// ScrapeDuration 单来源一次抓取耗时.
	ScrapeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "busvault_scrape_duration_seconds",
			Help:    "Duration of one scrape pass per source",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// registry Prometheus注册表.
	registry = prometheus.NewRegistry()
)

// InitMetrics 初始化Metrics.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	// 注册标准收集器
	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	// 注册自定义指标
	registry.MustRegister(RecordsAttempted, RecordsSaved, RecordsFailed, ScrapeDuration)

	return nil
}

// StartMetricsServer 启动Metrics HTTP服务器（后台协程）.
func StartMetricsServer(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(config.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              config.Endpoint,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return nil
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}
