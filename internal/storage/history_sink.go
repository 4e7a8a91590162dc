// Package storage 数据存储模块
// history_sink.go - 把整理事件落库的事件接收实现
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl
package storage

import "path/filepath"

// HistorySink 移动历史记录器
// 实现 events.Sink，把移动成功/失败事件写入数据库
// 其余事件忽略；落库失败不影响整理流程
type HistorySink struct {
	db      *Database // 数据库连接
	batchID string    // 当前整理批次 ID
	root    string    // 整理目录（用于还原源路径）
}

// NewHistorySink 创建移动历史记录器
func NewHistorySink(db *Database, batchID, root string) *HistorySink {
	return &HistorySink{db: db, batchID: batchID, root: root}
}

// FolderCreated 文件夹创建事件不落库
func (s *HistorySink) FolderCreated(category string) {}

// FileMoved 记录成功移动
func (s *HistorySink) FileMoved(name, category, dest string) {
	s.db.AddMoveLog(s.batchID, name, category, filepath.Join(s.root, name), dest, "success")
}

// WouldMove 预览事件不落库
func (s *HistorySink) WouldMove(name, category, dest string) {}

// FileSkipped 记录失败跳过
func (s *HistorySink) FileSkipped(name string, cause error) {
	s.db.AddMoveLog(s.batchID, name, "", "", "", "failed")
}

// RunSummary 汇总事件不落库
func (s *HistorySink) RunSummary(moved, skipped, planned int) {}
