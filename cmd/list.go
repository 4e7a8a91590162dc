// Package cmd 命令行入口模块
// list.go - 分类列表命令，显示各分类文件夹下的文件
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl

package cmd

import (
	"github.com/spf13/cobra"

	"sortdl/internal/classifier"
	"sortdl/internal/organizer"
	"sortdl/internal/ui"
)

// listCmd 分类列表命令定义
var listCmd = &cobra.Command{
	Use:   "list [目录]",
	Short: "分类列表",
	Long:  "按分类显示目录中已归类的文件和总数，不做任何改动",
	Args:  cobra.MaximumNArgs(1),
	Run:   runList,
}

// init 注册 list 子命令
func init() {
	rootCmd.AddCommand(listCmd)
}

// runList 执行分类列表命令
func runList(cmd *cobra.Command, args []string) {
	ui.Banner()

	root := resolveRoot(args)
	org := organizer.New(root, classifier.NewDefault())
	printListing(org)
}
