// Package classifier 扩展名分类模块
// 维护「分类 → 扩展名集合」的分类表，并由此构建
// 「扩展名 → 分类」的反查索引，提供按扩展名归类的能力
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl

package classifier

import "strings"

// ==================== 常量定义 ====================

// Fallback 兜底分类
// 扩展名不在分类表中的文件统一归入该分类
const Fallback = "Others"

// ==================== 类型定义 ====================

// Category 分类条目
// Name 为分类名（即目标子文件夹名），Extensions 为该分类识别的扩展名
// 扩展名统一使用小写并带点号前缀（如 ".pdf"）
type Category struct {
	Name       string   // 分类名
	Extensions []string // 识别的扩展名列表
}

// Classifier 扩展名分类器
// 构建完成后只读，可被任意并发调用
type Classifier struct {
	table []Category        // 分类表（保持注册顺序）
	index map[string]string // 反查索引：扩展名 -> 分类名
}

// ==================== 分类表定义 ====================

// DefaultTable 返回内置分类表
// 顺序即文件夹创建顺序；同一扩展名出现在多个分类时，
// 排在后面的分类生效（见 New 的说明）
func DefaultTable() []Category {
	return []Category{
		{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".xls", ".xlsx", ".ppt", ".pptx"}},
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".tiff", ".ico"}},
		{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2"}},
		{Name: "Audio", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a"}},
		{Name: "Video", Extensions: []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm"}},
		{Name: "Executables", Extensions: []string{".exe", ".msi", ".dmg", ".pkg", ".deb", ".rpm"}},
		{Name: "Code", Extensions: []string{".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".php", ".rb", ".json", ".xml"}},
		{Name: "Spreadsheets", Extensions: []string{".csv", ".xls", ".xlsx", ".ods"}},
		{Name: "Presentations", Extensions: []string{".ppt", ".pptx", ".odp"}},
		{Name: "Fonts", Extensions: []string{".ttf", ".otf", ".woff", ".woff2"}},
		{Name: "Torrents", Extensions: []string{".torrent"}},
		{Name: "Others", Extensions: nil}, // 兜底分类，不注册扩展名
	}
}

// ==================== 构造函数 ====================

// New 根据分类表创建分类器
// 按表顺序逐条插入反查索引；同一扩展名被多个分类注册时，
// 后注册的分类覆盖先注册的（.xls/.xlsx 归 Spreadsheets，
// .ppt/.pptx 归 Presentations）
func New(table []Category) *Classifier {
	index := make(map[string]string)
	for _, cat := range table {
		for _, ext := range cat.Extensions {
			index[strings.ToLower(ext)] = cat.Name
		}
	}
	return &Classifier{
		table: table,
		index: index,
	}
}

// NewDefault 使用内置分类表创建分类器
func NewDefault() *Classifier {
	return New(DefaultTable())
}

// ==================== 分类方法 ====================

// Classify 根据扩展名返回分类名
// 扩展名大小写不敏感；未注册的扩展名（含空扩展名）返回兜底分类
// 该方法对任意输入都有结果，不会失败
func (c *Classifier) Classify(ext string) string {
	if cat, ok := c.index[strings.ToLower(ext)]; ok {
		return cat
	}
	return Fallback
}

// Categories 按注册顺序返回所有分类名
// 该顺序决定文件夹的创建顺序
func (c *Classifier) Categories() []string {
	names := make([]string, 0, len(c.table))
	for _, cat := range c.table {
		names = append(names, cat.Name)
	}
	return names
}

// Table 返回分类表（按注册顺序）
func (c *Classifier) Table() []Category {
	return c.table
}
