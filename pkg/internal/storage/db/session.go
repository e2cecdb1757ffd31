package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Session 一次 reconcile 单元的事务作用域.
// Close 保证在任何退出路径上释放事务：未 Commit 即回滚，重复调用无害.
type Session struct {
	tx   *gorm.DB
	done bool
}

// Begin 开启一个新事务会话.
func (c *Client) Begin(ctx context.Context) (*Session, error) {
	tx := c.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	return &Session{tx: tx}, nil
}

// Tx 返回事务内的 *gorm.DB，会话内的全部读写都经由它.
func (s *Session) Tx() *gorm.DB {
	return s.tx
}

// Commit 提交事务.
func (s *Session) Commit() error {
	if s.done {
		return nil
	}

	if err := s.tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.done = true

	return nil
}

// Rollback 回滚事务.
func (s *Session) Rollback() {
	if s.done {
		return
	}

	s.tx.Rollback()
	s.done = true
}

// Close 释放会话，未提交的事务回滚.配合 defer 使用.
func (s *Session) Close() {
	s.Rollback()
}
