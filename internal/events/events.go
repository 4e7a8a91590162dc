// Package events 事件输出模块
// 定义整理过程的事件接收接口，核心逻辑通过该接口上报
// 进展，不直接打印文本；不同实现分别面向终端展示、
// 脚本化 JSON 输出和测试断言
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl

package events

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"sortdl/internal/ui"
)

// ==================== 接口定义 ====================

// Sink 整理事件接收接口
// 一次整理运行中按发生顺序收到事件；实现不需要并发安全
type Sink interface {
	FolderCreated(category string)          // 创建了分类文件夹
	FileMoved(name, category, dest string)  // 文件已移动
	WouldMove(name, category, dest string)  // 预览模式下将要移动
	FileSkipped(name string, cause error)   // 文件移动失败被跳过
	RunSummary(moved, skipped, planned int) // 运行结束汇总
}

// ==================== 终端实现 ====================

// ConsoleSink 终端事件输出
// 使用 ui 包的彩色输出，风格与其他命令一致
// Verbose 为 false 时不打印逐文件的移动信息
type ConsoleSink struct {
	Verbose bool // 是否打印逐文件信息
}

// NewConsoleSink 创建终端事件输出
func NewConsoleSink(verbose bool) *ConsoleSink {
	return &ConsoleSink{Verbose: verbose}
}

func (s *ConsoleSink) FolderCreated(category string) {
	if s.Verbose {
		ui.Dim("创建文件夹: %s/", category)
	}
}

func (s *ConsoleSink) FileMoved(name, category, dest string) {
	if s.Verbose {
		ui.Info("移动: %s → %s/", name, category)
	}
}

func (s *ConsoleSink) WouldMove(name, category, dest string) {
	// 预览信息始终打印，这是预览模式的输出主体
	ui.Info("将移动: %s → %s/", name, category)
}

func (s *ConsoleSink) FileSkipped(name string, cause error) {
	ui.Error("移动失败: %s (%v)", name, cause)
}

func (s *ConsoleSink) RunSummary(moved, skipped, planned int) {
	// 汇总由命令层以 Box 形式展示，这里不重复输出
}

// ==================== JSON 实现 ====================

// LogSink 结构化事件输出
// 每个事件一行 JSON，便于脚本化调用时解析
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink 创建 JSON 事件输出
func NewLogSink(w io.Writer) *LogSink {
	logger := zerolog.New(w).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339
	return &LogSink{logger: logger}
}

func (s *LogSink) FolderCreated(category string) {
	s.logger.Info().
		Str("event", "folder_created").
		Str("category", category).
		Msg("创建文件夹")
}

func (s *LogSink) FileMoved(name, category, dest string) {
	s.logger.Info().
		Str("event", "file_moved").
		Str("file", name).
		Str("category", category).
		Str("dest", dest).
		Msg("文件已移动")
}

func (s *LogSink) WouldMove(name, category, dest string) {
	s.logger.Info().
		Str("event", "would_move").
		Str("file", name).
		Str("category", category).
		Str("dest", dest).
		Msg("预览移动")
}

func (s *LogSink) FileSkipped(name string, cause error) {
	s.logger.Error().
		Str("event", "file_skipped").
		Str("file", name).
		Err(cause).
		Msg("移动失败")
}

func (s *LogSink) RunSummary(moved, skipped, planned int) {
	s.logger.Info().
		Str("event", "run_summary").
		Int("moved", moved).
		Int("skipped", skipped).
		Int("planned", planned).
		Msg("整理完成")
}

// ==================== 测试实现 ====================

// Event 捕获的单个事件
type Event struct {
	Type     string // folder_created / file_moved / would_move / file_skipped / run_summary
	Name     string // 文件名（文件相关事件）
	Category string // 分类名
	Dest     string // 目标路径
	Cause    error  // 失败原因（file_skipped）
	Moved    int    // 汇总：移动数
	Skipped  int    // 汇总：跳过数
	Planned  int    // 汇总：预览数
}

// CaptureSink 事件捕获
// 按顺序记录收到的全部事件，测试直接断言事件内容，
// 无需解析文本输出
type CaptureSink struct {
	Events []Event
}

func (s *CaptureSink) FolderCreated(category string) {
	s.Events = append(s.Events, Event{Type: "folder_created", Category: category})
}

func (s *CaptureSink) FileMoved(name, category, dest string) {
	s.Events = append(s.Events, Event{Type: "file_moved", Name: name, Category: category, Dest: dest})
}

func (s *CaptureSink) WouldMove(name, category, dest string) {
	s.Events = append(s.Events, Event{Type: "would_move", Name: name, Category: category, Dest: dest})
}

func (s *CaptureSink) FileSkipped(name string, cause error) {
	s.Events = append(s.Events, Event{Type: "file_skipped", Name: name, Cause: cause})
}

func (s *CaptureSink) RunSummary(moved, skipped, planned int) {
	s.Events = append(s.Events, Event{Type: "run_summary", Moved: moved, Skipped: skipped, Planned: planned})
}

// ByType 返回指定类型的事件
func (s *CaptureSink) ByType(eventType string) []Event {
	var out []Event
	for _, e := range s.Events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// ==================== 组合实现 ====================

// multiSink 将事件广播给多个接收者
type multiSink struct {
	sinks []Sink
}

// Multi 组合多个事件接收者
// 事件按参数顺序依次转发
func Multi(sinks ...Sink) Sink {
	return &multiSink{sinks: sinks}
}

func (m *multiSink) FolderCreated(category string) {
	for _, s := range m.sinks {
		s.FolderCreated(category)
	}
}

func (m *multiSink) FileMoved(name, category, dest string) {
	for _, s := range m.sinks {
		s.FileMoved(name, category, dest)
	}
}

func (m *multiSink) WouldMove(name, category, dest string) {
	for _, s := range m.sinks {
		s.WouldMove(name, category, dest)
	}
}

func (m *multiSink) FileSkipped(name string, cause error) {
	for _, s := range m.sinks {
		s.FileSkipped(name, cause)
	}
}

func (m *multiSink) RunSummary(moved, skipped, planned int) {
	for _, s := range m.sinks {
		s.RunSummary(moved, skipped, planned)
	}
}

// ==================== 空实现 ====================

// NopSink 丢弃所有事件
type NopSink struct{}

func (NopSink) FolderCreated(string)             {}
func (NopSink) FileMoved(string, string, string) {}
func (NopSink) WouldMove(string, string, string) {}
func (NopSink) FileSkipped(string, error)        {}
func (NopSink) RunSummary(int, int, int)         {}
