package db

import (
	"fmt"

	"github.com/yeisme/busvault/pkg/internal/model"
)

// Migrate 创建/更新全部业务表.
func (c *Client) Migrate() error {
	if err := c.DB.AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	return nil
}

// Drop 删除全部业务表，仅供开发与测试环境使用.
func (c *Client) Drop() error {
	if err := c.DB.Migrator().DropTable(model.AllModels()...); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	return nil
}
