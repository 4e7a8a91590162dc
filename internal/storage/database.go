// Package storage 数据存储模块
// 提供 SQLite 数据库的封装，用于记录每次整理的移动历史
// history 命令基于这些记录做批次回顾和分类分布统计
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl
package storage

import (
	"database/sql"

	// 使用纯 Go 实现的 SQLite 驱动，无需 CGO
	_ "modernc.org/sqlite"

	"sortdl/internal/config"
)

// Database 数据库管理器
// 封装 SQLite 数据库连接，提供移动历史的读写接口
// 采用 WAL 模式提升并发性能
type Database struct {
	db *sql.DB // SQLite 数据库连接实例
}

// MoveRecord 单条移动记录
type MoveRecord struct {
	ID         int64  // 记录唯一标识符
	BatchID    string // 整理批次 ID（时间戳格式）
	Filename   string // 文件名
	Category   string // 归属分类
	SourcePath string // 源路径
	DestPath   string // 目标路径
	Status     string // success（成功）/ failed（失败）
	CreatedAt  string // 记录创建时间
}

// BatchSummary 单个批次的汇总信息
type BatchSummary struct {
	BatchID    string // 批次 ID
	FileCount  int    // 批次内文件数
	Categories string // 涉及的分类（逗号分隔）
	CreatedAt  string // 批次时间
}

// NewDatabase 创建并初始化数据库连接
// 数据库文件位于 ~/.sortdl/history.db
func NewDatabase() (*Database, error) {
	return NewDatabaseAt(config.Get().DBPath)
}

// NewDatabaseAt 在指定路径创建并初始化数据库连接
// 执行以下操作：
// 1. 打开 SQLite 数据库连接
// 2. 启用 WAL 模式和 NORMAL 同步模式以提升性能
// 3. 初始化数据表和索引
func NewDatabaseAt(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// 启用 WAL（Write-Ahead Logging）模式
	// WAL 模式可以显著提升读写并发性能，减少锁竞争
	db.Exec("PRAGMA journal_mode=WAL")

	// 设置同步模式为 NORMAL
	// NORMAL 模式在性能和数据安全性之间取得平衡
	db.Exec("PRAGMA synchronous=NORMAL")

	d := &Database{db: db}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// init 初始化数据库表结构和索引
func (d *Database) init() error {
	schemas := []string{
		// ========== 移动历史表 ==========
		// 记录每次整理中每个文件的移动结果
		// status 字段区分成功移动和失败跳过
		`CREATE TABLE IF NOT EXISTS move_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL,
			filename TEXT NOT NULL,
			category TEXT DEFAULT '',
			source_path TEXT DEFAULT '',
			dest_path TEXT DEFAULT '',
			status TEXT DEFAULT 'success',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// 按批次查询的索引
		`CREATE INDEX IF NOT EXISTS idx_move_history_batch
			ON move_history(batch_id)`,
	}

	for _, schema := range schemas {
		if _, err := d.db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

// Close 关闭数据库连接
func (d *Database) Close() error {
	return d.db.Close()
}

// ==================== 写入接口 ====================

// AddMoveLog 记录一条移动日志
func (d *Database) AddMoveLog(batchID, filename, category, src, dst, status string) error {
	_, err := d.db.Exec(
		`INSERT INTO move_history (batch_id, filename, category, source_path, dest_path, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		batchID, filename, category, src, dst, status,
	)
	return err
}

// ==================== 查询接口 ====================

// GetRecentBatches 获取最近的整理批次
// 按时间倒序返回，最多 limit 条
func (d *Database) GetRecentBatches(limit int) ([]BatchSummary, error) {
	rows, err := d.db.Query(
		`SELECT batch_id,
		        COUNT(*) AS file_count,
		        GROUP_CONCAT(DISTINCT category) AS categories,
		        MIN(created_at) AS created_at
		 FROM move_history
		 WHERE status = 'success'
		 GROUP BY batch_id
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []BatchSummary
	for rows.Next() {
		var b BatchSummary
		var categories sql.NullString
		if err := rows.Scan(&b.BatchID, &b.FileCount, &categories, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Categories = categories.String
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// GetCategoryDistribution 获取历次整理的分类分布
// 返回分类名到成功移动文件数的映射
func (d *Database) GetCategoryDistribution() (map[string]int, error) {
	rows, err := d.db.Query(
		`SELECT category, COUNT(*)
		 FROM move_history
		 WHERE status = 'success' AND category != ''
		 GROUP BY category`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dist := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		dist[category] = count
	}
	return dist, rows.Err()
}

// GetBatchRecords 获取指定批次的全部移动记录
func (d *Database) GetBatchRecords(batchID string) ([]MoveRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, batch_id, filename, category, source_path, dest_path, status, created_at
		 FROM move_history
		 WHERE batch_id = ?
		 ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []MoveRecord
	for rows.Next() {
		var r MoveRecord
		if err := rows.Scan(&r.ID, &r.BatchID, &r.Filename, &r.Category,
			&r.SourcePath, &r.DestPath, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
