// Package config 配置模块
// 提供版本信息常量和数据目录路径
// 整理规则在运行时构建，不读写配置文件
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl

package config

import (
	"os"
	"path/filepath"
	"sync"
)

// 版本和作者信息常量
const (
	Version   = "1.0.0"                              // 程序版本号
	BuildDate = "2026"                               // 构建日期
	Author    = "lynx-lee"                           // 作者
	Homepage  = "https://github.com/lynx-lee/sortdl" // 项目主页
	License   = "MIT"                                // 开源许可
)

// Config 运行路径配置
// 只包含由用户主目录推导出的路径，没有可持久化的选项
type Config struct {
	DataDir      string // 数据目录路径 (~/.sortdl)
	DBPath       string // 整理历史数据库路径 (~/.sortdl/history.db)
	DownloadsDir string // 默认整理目录 (~/Downloads)
}

// 单例模式相关变量
var (
	instance *Config   // 全局配置实例
	once     sync.Once // 确保只初始化一次
)

// Get 获取全局配置实例（单例模式）
// 首次调用时初始化各路径并创建数据目录
func Get() *Config {
	once.Do(func() {
		homeDir, _ := os.UserHomeDir()
		instance = &Config{
			DataDir:      filepath.Join(homeDir, ".sortdl"),
			DownloadsDir: filepath.Join(homeDir, "Downloads"),
		}
		instance.DBPath = filepath.Join(instance.DataDir, "history.db")
		os.MkdirAll(instance.DataDir, 0755) // 创建数据目录
	})
	return instance
}
