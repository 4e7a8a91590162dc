// Package cmd 命令行入口模块
// history.go - 整理历史命令，显示最近批次和分类分布
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sortdl/internal/storage"
	"sortdl/internal/ui"
)

// historyCmd 整理历史命令定义
var historyCmd = &cobra.Command{
	Use:   "history [批次ID]",
	Short: "整理历史",
	Long: `显示最近的整理批次和历次整理的分类分布。

指定批次ID时显示该批次的逐文件明细。

示例:
  sortdl history                    # 最近批次和分类分布
  sortdl history 20260831_120000    # 指定批次的明细`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

// history 命令行参数
var (
	historyLimit int // 显示的批次数量
)

func init() {
	// 注册 history 子命令
	rootCmd.AddCommand(historyCmd)

	// 注册命令行标志
	historyCmd.Flags().IntVarP(&historyLimit, "num", "n", 10, "显示的批次数量")
}

// runHistory 执行整理历史命令
func runHistory(cmd *cobra.Command, args []string) {
	ui.Banner()

	// 初始化数据库
	db, err := storage.NewDatabase()
	if err != nil {
		ui.Error("无法连接数据库: %v", err)
		return
	}
	defer db.Close()

	// 指定批次时显示明细
	if len(args) > 0 {
		printBatchRecords(db, args[0])
		return
	}

	printRecentBatches(db)
	printDistribution(db)
}

// printRecentBatches 显示最近的整理批次
func printRecentBatches(db *storage.Database) {
	ui.Title("📋", "最近整理")

	batches, err := db.GetRecentBatches(historyLimit)
	if err != nil || len(batches) == 0 {
		ui.Warning("还没有整理记录")
		return
	}

	fmt.Println()
	for i, batch := range batches {
		fmt.Printf("  %s %s\n", ui.Green(fmt.Sprintf("[%d]", i+1)), ui.Bold(batch.BatchID))
		fmt.Printf("      📄 %d 个文件  📅 %s\n", batch.FileCount, batch.CreatedAt)
		fmt.Printf("      📁 %s\n", ui.Gray(truncateString(batch.Categories, 50)))
		fmt.Println()
	}

	ui.Dim("使用 'sortdl history <批次ID>' 查看批次明细")
}

// printDistribution 显示历次整理的分类分布
func printDistribution(db *storage.Database) {
	dist, err := db.GetCategoryDistribution()
	if err != nil || len(dist) == 0 {
		return
	}

	ui.Title("📊", "分类分布")
	for cat, cnt := range dist {
		ui.Info("  %-14s %d", cat, cnt)
	}
}

// printBatchRecords 显示指定批次的逐文件明细
func printBatchRecords(db *storage.Database, batchID string) {
	ui.Title("📋", fmt.Sprintf("批次明细: %s", batchID))

	records, err := db.GetBatchRecords(batchID)
	if err != nil || len(records) == 0 {
		ui.Error("找不到批次 %s 的整理记录", batchID)
		return
	}

	fmt.Println()
	for _, r := range records {
		if r.Status == "success" {
			ui.Success("%s → %s/", r.Filename, r.Category)
		} else {
			ui.Error("%s (移动失败)", r.Filename)
		}
	}
}

// truncateString 截断过长的字符串
func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
