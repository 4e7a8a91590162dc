// Package cmd 命令行入口模块
// 提供 sortdl 的所有命令行功能，包括整理、列表、扫描和历史
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl

package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sortdl/internal/classifier"
	"sortdl/internal/config"
	"sortdl/internal/events"
	"sortdl/internal/organizer"
	"sortdl/internal/storage"
	"sortdl/internal/ui"
)

// 命令行参数变量
var (
	rootPath  string // 整理目录，默认 ~/Downloads
	dryRun    bool   // 预览模式，不实际移动文件
	listAfter bool   // 整理后显示分类列表
	verbose   bool   // 详细输出模式
	jsonOut   bool   // JSON 事件输出（脚本化调用）
	noHistory bool   // 不记录整理历史
)

// rootCmd 根命令定义
// 按扩展名整理指定目录中的文件
var rootCmd = &cobra.Command{
	Use:   "sortdl [目录]",
	Short: "sortdl - 下载文件夹一键归类",
	Long: ui.Cyan(`
  ███████╗ ██████╗ ██████╗ ████████╗
  ██╔════╝██╔═══██╗██╔══██╗╚══██╔══╝
  ███████╗██║   ██║██████╔╝   ██║
  ╚════██║██║   ██║██╔══██╗   ██║
  ███████║╚██████╔╝██║  ██║   ██║
  ╚══════╝ ╚═════╝ ╚═╝  ╚═╝   ╚═╝ `) + `

  下载文件夹一键归类  v` + config.Version + `

  🗂  按扩展名把文件归入分类文件夹
  🔒 重名文件自动追加数字后缀，绝不覆盖
  👀 预览模式先看后动

示例:
  sortdl                        # 整理 ~/Downloads
  sortdl -p ~/Desktop           # 整理指定目录
  sortdl -d                     # 预览模式，只看不动
  sortdl -l                     # 整理后显示分类列表
  sortdl --json                 # JSON 事件输出（脚本用）
  sortdl history                # 查看整理历史
`,
	Args: cobra.MaximumNArgs(1), // 最多接受一个参数（目录路径）
	Run:  runOrganize,           // 执行整理操作
}

// init 初始化命令行参数
func init() {
	// 注册命令行标志
	rootCmd.Flags().StringVarP(&rootPath, "path", "p", "", "整理目录（默认 ~/Downloads）")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "预览模式")
	rootCmd.Flags().BoolVarP(&listAfter, "list", "l", false, "整理后显示分类列表")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "详细输出")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "JSON 事件输出")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "不记录整理历史")
}

// Execute 执行根命令
// 这是程序的主入口，由 main.go 调用
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// resolveRoot 确定整理目录
// 优先级：位置参数 > -p 参数 > 默认下载目录
func resolveRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if rootPath != "" {
		return rootPath
	}
	return config.Get().DownloadsDir
}

// runOrganize 执行文件整理的核心逻辑
// 整体流程：构建分类器 -> 组装事件输出 -> 执行整理 -> 显示汇总
func runOrganize(cmd *cobra.Command, args []string) {
	root := resolveRoot(args)

	if !jsonOut {
		ui.Banner()
	}

	// 构建分类器和整理器
	org := organizer.New(root, classifier.NewDefault())

	// 组装事件输出：终端或 JSON，另加历史落库
	var sinks []events.Sink
	if jsonOut {
		sinks = append(sinks, events.NewLogSink(os.Stdout))
	} else {
		sinks = append(sinks, events.NewConsoleSink(verbose))
	}

	// 记录整理历史（预览模式不落库）
	batchID := time.Now().Format("20060102_150405")
	if !dryRun && !noHistory {
		db, err := storage.NewDatabase()
		if err != nil {
			if !jsonOut {
				ui.Warning("无法记录整理历史: %v", err)
			}
			// 继续执行，只是没有历史记录
		} else {
			defer db.Close()
			sinks = append(sinks, storage.NewHistorySink(db, batchID, root))
		}
	}

	org.Sink = events.Multi(sinks...)
	org.Progress = !jsonOut && !verbose && !dryRun

	if !jsonOut {
		if dryRun {
			ui.Warning("预览模式 - 不会移动任何文件")
		}
		ui.Title("🗂", "整理: "+root)
	}

	// 执行整理
	summary, err := org.Organize(dryRun)
	if err != nil {
		if errors.Is(err, organizer.ErrRootNotFound) {
			ui.Error("目录不存在: %s", root)
		} else {
			ui.Error("整理失败: %v", err)
		}
		return
	}

	// 显示汇总
	if !jsonOut {
		if dryRun {
			ui.Box("📋 预览结果", []string{
				fmt.Sprintf("将移动: %d 个文件", summary.Planned),
			})
			ui.Dim("去掉 -d 参数执行实际整理")
		} else {
			ui.Box("✅ 整理完成", []string{
				fmt.Sprintf("移动: %d 个文件", summary.Moved),
				fmt.Sprintf("跳过: %d 个文件", summary.Skipped),
				fmt.Sprintf("批次: %s", batchID),
			})
		}
	}

	// 整理后显示分类列表
	if listAfter {
		printListing(org)
	}
}

// printListing 打印分类列表
// 按分类表顺序显示各分类文件夹下的文件和总数
func printListing(org *organizer.Organizer) {
	listings, total, err := org.ListByCategory()
	if err != nil {
		ui.Error("读取分类列表失败: %v", err)
		return
	}

	ui.Title("📁", "分类列表")
	ui.Divider()

	for _, l := range listings {
		ui.Info("%s %s", ui.Bold(l.Category), ui.Gray(fmt.Sprintf("(%d个)", len(l.Files))))
		for _, f := range l.Files {
			ui.Info("  📄 %s", f)
		}
	}

	ui.Divider()
	ui.Info("总计: %d 个文件", total)
}
