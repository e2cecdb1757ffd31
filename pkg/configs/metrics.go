// Package configs 管理应用程序配置，包括Metrics的配置信息.
// Metrics配置支持Prometheus监控系统.
package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig Metrics相关配置.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`         // 是否启用Metrics
	ServiceName    string `mapstructure:"service_name"`    // 服务名称
	Endpoint       string `mapstructure:"endpoint"`        // 指标 HTTP 监听地址
	Path           string `mapstructure:"path"`            // 指标暴露路径
	RuntimeMetrics bool   `mapstructure:"runtime_metrics"` // 是否收集运行时指标
}

// setDefaults 设置Metrics配置的默认值.
func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.service_name", "busvault")
	v.SetDefault("metrics.endpoint", ":9090")
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.runtime_metrics", true)
}
