// Package configs 管理应用程序配置，包括抓取器的配置信息.
package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultScraperUserAgent 与原始数据源采集时使用的桌面 UA 保持一致.
	DefaultScraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultScraperTimeout       = 30   // 单次请求超时秒数
	DefaultScraperRetries       = 3    // 请求重试次数
	DefaultScraperDelayMS       = 1000 // 请求间最小间隔毫秒数
	DefaultScraperRatePerSecond = 1.0  // 每来源请求速率上限
	DefaultScraperDumpDir       = "dumps"
	// DefaultScraperCron 每天 02:00 执行一次定时抓取.
	DefaultScraperCron = "0 2 * * *"
)

type (
	// ScraperConfig 抓取器配置.
	ScraperConfig struct {
		UserAgent     string   `mapstructure:"user_agent"`
		Timeout       int      `mapstructure:"timeout"         rule:"min=1,max=300"`
		Retries       int      `mapstructure:"retries"         rule:"min=0,max=10"`
		DelayMS       int      `mapstructure:"delay_ms"        rule:"min=0"`
		RatePerSecond float64  `mapstructure:"rate_per_second" rule:"gt=0"`
		DumpDir       string   `mapstructure:"dump_dir"`
		Cron          string   `mapstructure:"cron"`
		Sources       []string `mapstructure:"sources"` // 为空表示启用全部注册来源
	}
)

// GetTimeoutDuration 返回请求超时时间.
func (s *ScraperConfig) GetTimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// GetDelayDuration 返回请求间隔.
func (s *ScraperConfig) GetDelayDuration() time.Duration {
	return time.Duration(s.DelayMS) * time.Millisecond
}

// setDefaults 设置抓取器配置的默认值.
func (s *ScraperConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("scraper.user_agent", DefaultScraperUserAgent)
	v.SetDefault("scraper.timeout", DefaultScraperTimeout)
	v.SetDefault("scraper.retries", DefaultScraperRetries)
	v.SetDefault("scraper.delay_ms", DefaultScraperDelayMS)
	v.SetDefault("scraper.rate_per_second", DefaultScraperRatePerSecond)
	v.SetDefault("scraper.dump_dir", DefaultScraperDumpDir)
	v.SetDefault("scraper.cron", DefaultScraperCron)
	v.SetDefault("scraper.sources", []string{})
}
