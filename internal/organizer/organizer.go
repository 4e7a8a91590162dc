// Package organizer 文件整理模块
// 负责创建分类文件夹、解决重名冲突并执行（或预览）文件移动
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl

package organizer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"

	"sortdl/internal/classifier"
	"sortdl/internal/events"
	"sortdl/internal/scanner"
)

// ==================== 错误定义 ====================

// ErrRootNotFound 整理目录不存在
// 属于致命错误：不创建文件夹、不移动任何文件
var ErrRootNotFound = errors.New("目录不存在")

// ==================== 类型定义 ====================

// Summary 整理结果统计
type Summary struct {
	Moved   int // 成功移动的文件数
	Skipped int // 移动失败被跳过的文件数
	Planned int // 预览模式下计划移动的文件数
}

// MoveDecision 单个文件的整理决策
// 每次运行中临时构建，不做持久化
type MoveDecision struct {
	Source   string // 源文件路径
	Name     string // 文件名
	Category string // 归属分类
}

// CategoryListing 单个分类下的文件列表
type CategoryListing struct {
	Category string   // 分类名
	Files    []string // 该分类文件夹下的文件名
}

// Organizer 文件整理器
// Fs 与 Sink 可注入替换：测试使用内存文件系统和事件捕获，
// 正式运行使用操作系统文件系统和终端/JSON 输出
type Organizer struct {
	Root     string      // 整理目录
	Fs       afero.Fs    // 文件系统
	Sink     events.Sink // 事件输出
	Progress bool        // 是否显示进度条

	clf *classifier.Classifier // 扩展名分类器
}

// ==================== 构造函数 ====================

// New 创建文件整理器
// 默认使用操作系统文件系统，不输出事件
func New(root string, clf *classifier.Classifier) *Organizer {
	return &Organizer{
		Root: root,
		Fs:   afero.NewOsFs(),
		Sink: events.NopSink{},
		clf:  clf,
	}
}

// ==================== 核心整理方法 ====================

// Organize 整理目录的直接子项
// 流程：检查目录 -> 创建分类文件夹 -> 逐文件分类并移动
// simulate 为 true 时为预览模式：上报将要执行的移动，
// 磁盘上不发生任何改动
//
// 目录不存在或分类文件夹创建失败属于致命错误，直接返回；
// 单个文件移动失败只计入 Skipped，不中断整理
func (o *Organizer) Organize(simulate bool) (Summary, error) {
	summary := Summary{}

	// 检查整理目录
	info, err := o.Fs.Stat(o.Root)
	if err != nil || !info.IsDir() {
		return summary, fmt.Errorf("%w: %s", ErrRootNotFound, o.Root)
	}

	// 预览模式下把写操作引到内存层，读仍穿透到真实目录
	// 磁盘保证零改动
	fs := o.Fs
	if simulate {
		fs = afero.NewCopyOnWriteFs(o.Fs, afero.NewMemMapFs())
	}

	// 先创建所有分类文件夹，保证移动目标始终存在
	if err := o.ensureCategoryFolders(fs); err != nil {
		return summary, err
	}

	// 枚举直接子项（扫描器已过滤隐藏文件）
	entries, err := scanner.ScanDir(fs, o.Root)
	if err != nil {
		return summary, fmt.Errorf("扫描目录失败: %w", err)
	}

	// 生成整理决策：跳过目录和已在正确分类文件夹中的文件
	// 这两类不计入任何统计
	var decisions []MoveDecision
	for _, e := range entries {
		if e.IsDir {
			continue
		}

		category := o.clf.Classify(e.Extension)

		// 文件已经在同名分类文件夹里，重复运行时保持原状
		if e.Parent == category {
			continue
		}

		decisions = append(decisions, MoveDecision{
			Source:   e.Path,
			Name:     e.Name,
			Category: category,
		})
	}

	// 创建进度条（仅在实际执行时显示）
	var bar *progressbar.ProgressBar
	if o.Progress && !simulate && len(decisions) > 0 {
		bar = progressbar.NewOptions(len(decisions),
			progressbar.OptionSetDescription("  整理中"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionShowCount(),
		)
	}

	// 逐文件执行
	for _, d := range decisions {
		dest, err := o.resolveDest(fs, d.Category, d.Name)
		if err != nil {
			// 目标路径探测失败，按单文件失败处理
			summary.Skipped++
			o.Sink.FileSkipped(d.Name, err)
			continue
		}

		if simulate {
			summary.Planned++
			o.Sink.WouldMove(d.Name, d.Category, dest)
		} else if err := moveFile(fs, d.Source, dest); err != nil {
			summary.Skipped++
			o.Sink.FileSkipped(d.Name, err)
		} else {
			summary.Moved++
			o.Sink.FileMoved(d.Name, d.Category, dest)
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	if bar != nil {
		fmt.Println() // 进度条结束后换行
	}

	o.Sink.RunSummary(summary.Moved, summary.Skipped, summary.Planned)
	return summary, nil
}

// ==================== 文件夹创建 ====================

// ensureCategoryFolders 确保所有分类文件夹存在
// 按分类表顺序逐个创建；文件夹已存在时不做任何操作
// 创建失败视为致命错误返回
func (o *Organizer) ensureCategoryFolders(fs afero.Fs) error {
	for _, category := range o.clf.Categories() {
		path := filepath.Join(o.Root, category)

		exists, err := afero.DirExists(fs, path)
		if err != nil {
			return fmt.Errorf("检查分类文件夹失败: %w", err)
		}
		if exists {
			continue
		}

		if err := fs.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("创建分类文件夹 %s 失败: %w", category, err)
		}
		o.Sink.FolderCreated(category)
	}
	return nil
}

// ==================== 冲突解决 ====================

// resolveDest 计算冲突解决后的目标路径
// 目标已存在时在文件名主干和扩展名之间插入递增数字后缀
// 例如: file.txt -> file_1.txt -> file_2.txt，直到找到空位
func (o *Organizer) resolveDest(fs afero.Fs, category, name string) (string, error) {
	dir := filepath.Join(o.Root, category)
	dest := filepath.Join(dir, name)

	exists, err := afero.Exists(fs, dest)
	if err != nil {
		return "", fmt.Errorf("检查目标路径失败: %w", err)
	}
	if !exists {
		return dest, nil
	}

	// 分解文件名主干和扩展名
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	// 尝试递增数字后缀，次数不设上限
	for i := 1; ; i++ {
		alt := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		exists, err := afero.Exists(fs, alt)
		if err != nil {
			return "", fmt.Errorf("检查目标路径失败: %w", err)
		}
		if !exists {
			return alt, nil
		}
	}
}

// ==================== 移动函数 ====================

// moveFile 将文件从源路径移动到目标路径
// 优先使用 rename；失败时（跨卷移动等）退回复制后删除
func moveFile(fs afero.Fs, src, dst string) error {
	if err := fs.Rename(src, dst); err == nil {
		return nil
	}

	// 打开源文件
	sourceFile, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer sourceFile.Close()

	// 创建目标文件
	destFile, err := fs.Create(dst)
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}
	defer destFile.Close()

	// 复制文件内容
	if _, err = io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("复制文件内容失败: %w", err)
	}

	// 删除原文件
	if err := fs.Remove(src); err != nil {
		return fmt.Errorf("删除原文件失败: %w", err)
	}
	return nil
}

// ==================== 分类列表 ====================

// ListByCategory 列出各分类文件夹下的文件
// 只读操作，不影响整理统计；返回按分类表顺序
// 排列的列表和文件总数
func (o *Organizer) ListByCategory() ([]CategoryListing, int, error) {
	info, err := o.Fs.Stat(o.Root)
	if err != nil || !info.IsDir() {
		return nil, 0, fmt.Errorf("%w: %s", ErrRootNotFound, o.Root)
	}

	var listings []CategoryListing
	total := 0

	for _, category := range o.clf.Categories() {
		path := filepath.Join(o.Root, category)

		exists, err := afero.DirExists(o.Fs, path)
		if err != nil || !exists {
			continue
		}

		infos, err := afero.ReadDir(o.Fs, path)
		if err != nil {
			continue
		}

		var files []string
		for _, fi := range infos {
			if !fi.IsDir() {
				files = append(files, fi.Name())
			}
		}
		if len(files) == 0 {
			continue
		}

		listings = append(listings, CategoryListing{Category: category, Files: files})
		total += len(files)
	}

	return listings, total, nil
}
