// Package storage 聚合管道使用的存储资源（当前仅数据库）.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//	    // 处理错误
//	}
//
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"sync"

	"github.com/yeisme/busvault/pkg/configs"
	dbc "github.com/yeisme/busvault/pkg/internal/storage/db"
	nlog "github.com/yeisme/busvault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB *dbc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		if dbi, e := dbc.New(ctx, &cfg.DB); e != nil {
			err = e

			return
		} else {
			m.DB = dbi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}
