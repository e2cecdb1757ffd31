// Package scraper 定义抓取来源契约与共享抓取设施.
//
// 站点专属的选择器与分页逻辑属于各 Source 实现，对管道只暴露统一的
// Scrape 接口；登记机制与 storage/db 的 dialector 工厂注册一致.
package scraper

import (
	"context"
	"sort"
	"sync"

	"github.com/yeisme/busvault/pkg/internal/types"
)

// Source 单个抓取来源.
type Source interface {
	// Name 来源标识，写入记录的 source 字段并用于日志与指标
	Name() string
	// Scrape 拉取该来源当前全部列表，返回原始记录
	Scrape(ctx context.Context) ([]*types.RawBus, error)
}

// SourceFactory 定义创建 Source 的函数类型.
type SourceFactory func(deps Deps) (Source, error)

// Deps 传给来源工厂的共享依赖.
type Deps struct {
	Fetcher *Fetcher
	DumpDir string
}

var (
	sourceFactories = map[string]SourceFactory{}
	factoriesMu     sync.RWMutex
)

// RegisterSourceFactory 注册来源工厂函数.
func RegisterSourceFactory(name string, factory SourceFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	sourceFactories[name] = factory
}

// GetRegisteredSources 返回已注册来源名称的有序列表.
func GetRegisteredSources() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	names := make([]string, 0, len(sourceFactories))
	for name := range sourceFactories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// NewSource 按名称构建来源实例.
func NewSource(name string, deps Deps) (Source, bool, error) {
	factoriesMu.RLock()
	factory, ok := sourceFactories[name]
	factoriesMu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	src, err := factory(deps)

	return src, true, err
}
