// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/yeisme/busvault/pkg/configs"
	"github.com/yeisme/busvault/pkg/context"
	"github.com/yeisme/busvault/pkg/internal/storage"
	"github.com/yeisme/busvault/pkg/metrics"
)

// App 持有一次运行的根 context（已注入存储管理器）与配置.
type App struct {
	Ctx    contextPkg.Context
	Config *configs.AppConfig
}

// NewApp 按固定顺序完成初始化：配置 → 指标 → 存储.
// 任何一步失败都直接退出，CLI 子命令拿到的是可用的运行环境.
func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	ctx = context.WithStorageManager(ctx, manager)

	return &App{
		Ctx:    ctx,
		Config: config,
	}
}

// Manager 返回已初始化的存储管理器.
func (a *App) Manager() *storage.Manager {
	return context.GetManager(a.Ctx)
}
