// SortDL - 下载文件夹一键归类
// 按扩展名整理下载目录的命令行工具
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl
// License: MIT

package main

import "sortdl/cmd"

// main 程序入口函数
// 调用 cmd.Execute() 启动命令行应用
func main() {
	cmd.Execute()
}
