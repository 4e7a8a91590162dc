// Package scanner 目录扫描模块
// 枚举目录的直接子项（不递归）并提供文件统计功能
// 以点号开头的隐藏文件会被自动过滤
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl

package scanner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"sortdl/internal/ui"
)

// ==================== 类型定义 ====================

// FileEntry 目录子项信息
// 每次扫描时重新构建，不做持久化
type FileEntry struct {
	Path         string    // 完整路径
	Name         string    // 文件名
	Extension    string    // 扩展名（小写，带点号；无扩展名为空串）
	Parent       string    // 所在文件夹名（父目录的最后一段）
	Size         int64     // 文件大小（字节）
	ModifiedTime time.Time // 最后修改时间
	IsDir        bool      // 是否为目录
}

// ==================== 核心扫描函数 ====================

// ScanDir 扫描目录的直接子项
// 只枚举第一层，不进入子目录；隐藏文件（点号开头）被跳过
// 目录本身不存在或不可读时返回错误
func ScanDir(fs afero.Fs, dir string) ([]FileEntry, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(fs, absDir)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}

	parent := filepath.Base(absDir)

	var entries []FileEntry
	for _, info := range infos {
		name := info.Name()

		// 跳过隐藏文件（以点开头）
		if strings.HasPrefix(name, ".") {
			continue
		}

		entries = append(entries, FileEntry{
			Path:         filepath.Join(absDir, name),
			Name:         name,
			Extension:    strings.ToLower(filepath.Ext(name)), // 扩展名转小写
			Parent:       parent,
			Size:         info.Size(),
			ModifiedTime: info.ModTime(),
			IsDir:        info.IsDir(),
		})
	}

	return entries, nil
}

// ==================== 统计相关类型 ====================

// Statistics 文件统计信息
type Statistics struct {
	TotalFiles int                // 文件总数
	TotalDirs  int                // 目录总数
	TotalSize  int64              // 总大小（字节）
	ExtStats   map[string]ExtStat // 按扩展名统计
}

// ExtStat 单个扩展名的统计
type ExtStat struct {
	Count int   // 文件数量
	Size  int64 // 总大小
}

// ==================== 统计函数 ====================

// GetStatistics 获取子项列表的统计信息
// 统计文件数、目录数、总大小和按扩展名分布
func GetStatistics(entries []FileEntry) Statistics {
	stats := Statistics{
		ExtStats: make(map[string]ExtStat),
	}

	for _, e := range entries {
		if e.IsDir {
			stats.TotalDirs++
			continue
		}

		stats.TotalFiles++
		stats.TotalSize += e.Size

		// 按扩展名统计
		ext := e.Extension
		if ext == "" {
			ext = "(无扩展名)"
		}

		es := stats.ExtStats[ext]
		es.Count++
		es.Size += e.Size
		stats.ExtStats[ext] = es
	}

	return stats
}

// PrintStatistics 打印统计信息
// 以美观的格式显示文件统计
func PrintStatistics(entries []FileEntry) {
	stats := GetStatistics(entries)

	ui.Title("📊", "文件统计")
	ui.Divider()

	// 基本统计
	ui.Info("📁 文件夹: %d 个", stats.TotalDirs)
	ui.Info("📄 文件:   %d 个", stats.TotalFiles)
	ui.Info("💾 总大小: %s", ui.FormatSize(stats.TotalSize))

	// 按扩展名统计（如果有数据）
	if len(stats.ExtStats) > 0 {
		ui.Info("")
		ui.Info("按类型统计:")

		// 按数量排序
		type kv struct {
			Ext  string
			Stat ExtStat
		}
		var sorted []kv
		for k, v := range stats.ExtStats {
			sorted = append(sorted, kv{k, v})
		}
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Stat.Count > sorted[j].Stat.Count // 按数量降序
		})

		// 显示前12种类型
		for i, kv := range sorted {
			if i >= 12 {
				ui.Dim("  ... 还有 %d 种类型", len(sorted)-12)
				break
			}
			ui.Info("  %-12s %4d 个  %10s", kv.Ext, kv.Stat.Count, ui.FormatSize(kv.Stat.Size))
		}
	}
}
