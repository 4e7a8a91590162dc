// Package organizer 文件整理模块测试
// 覆盖端到端整理、重复运行、重名冲突、隐藏文件和预览模式
//
// Copyright (c) 2024-2026 lynx-lee
// https://github.com/lynx-lee/sortdl

package organizer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"sortdl/internal/classifier"
	"sortdl/internal/events"
)

// newTestOrganizer 在临时目录中创建整理器和事件捕获
func newTestOrganizer(t *testing.T, files map[string]string) (*Organizer, string, *events.CaptureSink) {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatalf("创建测试文件失败: %v", err)
		}
	}

	sink := &events.CaptureSink{}
	org := New(root, classifier.NewDefault())
	org.Sink = sink
	return org, root, sink
}

// TestOrganize_EndToEnd 端到端整理场景
// 五个不同类型的文件分别进入对应分类文件夹
func TestOrganize_EndToEnd(t *testing.T) {
	org, root, _ := newTestOrganizer(t, map[string]string{
		"report.pdf":  "pdf",
		"photo.jpg":   "jpg",
		"archive.zip": "zip",
		"script.py":   "py",
		"unknown.xyz": "xyz",
	})

	summary, err := org.Organize(false)
	if err != nil {
		t.Fatalf("Organize() error = %v", err)
	}

	if summary.Moved != 5 {
		t.Errorf("Moved = %d, 期望 5", summary.Moved)
	}
	if summary.Skipped != 0 {
		t.Errorf("Skipped = %d, 期望 0", summary.Skipped)
	}

	wantPaths := []string{
		"Documents/report.pdf",
		"Images/photo.jpg",
		"Archives/archive.zip",
		"Code/script.py",
		"Others/unknown.xyz",
	}
	for _, p := range wantPaths {
		if _, err := os.Stat(filepath.Join(root, p)); err != nil {
			t.Errorf("期望文件存在: %s (%v)", p, err)
		}
	}

	// 根目录下除分类文件夹外应为空
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("读取根目录失败: %v", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			t.Errorf("根目录不应残留文件: %s", e.Name())
		}
	}
}

// TestOrganize_Idempotent 重复运行不再移动任何文件
func TestOrganize_Idempotent(t *testing.T) {
	org, _, _ := newTestOrganizer(t, map[string]string{
		"report.pdf": "pdf",
		"photo.jpg":  "jpg",
	})

	if _, err := org.Organize(false); err != nil {
		t.Fatalf("第一次 Organize() error = %v", err)
	}

	summary, err := org.Organize(false)
	if err != nil {
		t.Fatalf("第二次 Organize() error = %v", err)
	}
	if summary.Moved != 0 {
		t.Errorf("第二次运行 Moved = %d, 期望 0", summary.Moved)
	}
	if summary.Skipped != 0 {
		t.Errorf("第二次运行 Skipped = %d, 期望 0", summary.Skipped)
	}
}

// TestOrganize_Collision 目标已存在时追加数字后缀
// 原文件内容不被覆盖
func TestOrganize_Collision(t *testing.T) {
	org, root, _ := newTestOrganizer(t, map[string]string{
		"report.pdf": "new content",
	})

	// 预置一个同名文件
	docDir := filepath.Join(root, "Documents")
	if err := os.MkdirAll(docDir, 0755); err != nil {
		t.Fatalf("创建 Documents 失败: %v", err)
	}
	if err := os.WriteFile(filepath.Join(docDir, "report.pdf"), []byte("original content"), 0644); err != nil {
		t.Fatalf("预置文件失败: %v", err)
	}

	summary, err := org.Organize(false)
	if err != nil {
		t.Fatalf("Organize() error = %v", err)
	}
	if summary.Moved != 1 {
		t.Errorf("Moved = %d, 期望 1", summary.Moved)
	}

	original, err := os.ReadFile(filepath.Join(docDir, "report.pdf"))
	if err != nil {
		t.Fatalf("读取原文件失败: %v", err)
	}
	if string(original) != "original content" {
		t.Error("原文件内容被覆盖")
	}

	renamed, err := os.ReadFile(filepath.Join(docDir, "report_1.pdf"))
	if err != nil {
		t.Fatalf("读取重命名文件失败: %v", err)
	}
	if string(renamed) != "new content" {
		t.Error("重命名文件内容不正确")
	}
}

// TestOrganize_CollisionChain 连续冲突时后缀继续递增
func TestOrganize_CollisionChain(t *testing.T) {
	org, root, _ := newTestOrganizer(t, map[string]string{
		"report.pdf": "third",
	})

	docDir := filepath.Join(root, "Documents")
	if err := os.MkdirAll(docDir, 0755); err != nil {
		t.Fatalf("创建 Documents 失败: %v", err)
	}
	for _, name := range []string{"report.pdf", "report_1.pdf"} {
		if err := os.WriteFile(filepath.Join(docDir, name), []byte("occupied"), 0644); err != nil {
			t.Fatalf("预置文件失败: %v", err)
		}
	}

	if _, err := org.Organize(false); err != nil {
		t.Fatalf("Organize() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(docDir, "report_2.pdf")); err != nil {
		t.Errorf("期望生成 report_2.pdf: %v", err)
	}
}

// TestOrganize_HiddenFile 隐藏文件不被移动也不计入统计
func TestOrganize_HiddenFile(t *testing.T) {
	org, root, _ := newTestOrganizer(t, map[string]string{
		".env":       "SECRET=1",
		"report.pdf": "pdf",
	})

	summary, err := org.Organize(false)
	if err != nil {
		t.Fatalf("Organize() error = %v", err)
	}

	if summary.Moved != 1 {
		t.Errorf("Moved = %d, 期望 1", summary.Moved)
	}
	if summary.Skipped != 0 {
		t.Errorf("Skipped = %d, 期望 0", summary.Skipped)
	}
	if _, err := os.Stat(filepath.Join(root, ".env")); err != nil {
		t.Errorf(".env 应留在原位: %v", err)
	}
}

// TestOrganize_Simulate 预览模式不改动磁盘
// 预览上报的移动与随后实际执行的移动一致
func TestOrganize_Simulate(t *testing.T) {
	org, root, sink := newTestOrganizer(t, map[string]string{
		"report.pdf": "pdf",
		"photo.jpg":  "jpg",
	})

	summary, err := org.Organize(true)
	if err != nil {
		t.Fatalf("Organize(simulate) error = %v", err)
	}

	if summary.Planned != 2 {
		t.Errorf("Planned = %d, 期望 2", summary.Planned)
	}
	if summary.Moved != 0 || summary.Skipped != 0 {
		t.Errorf("预览模式 Moved/Skipped = %d/%d, 期望 0/0", summary.Moved, summary.Skipped)
	}

	// 磁盘零改动：没有分类文件夹被创建，文件留在原位
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("读取根目录失败: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("根目录子项数 = %d, 期望 2（零改动）", len(entries))
	}
	for _, e := range entries {
		if e.IsDir() {
			t.Errorf("预览模式不应在磁盘上创建文件夹: %s", e.Name())
		}
	}

	// 记录预览上报的文件
	predicted := make(map[string]string)
	for _, e := range sink.ByType("would_move") {
		predicted[e.Name] = e.Category
	}

	// 实际执行应与预览一致
	execSink := &events.CaptureSink{}
	org.Sink = execSink
	if _, err := org.Organize(false); err != nil {
		t.Fatalf("Organize() error = %v", err)
	}

	moves := execSink.ByType("file_moved")
	if len(moves) != len(predicted) {
		t.Fatalf("实际移动数 = %d, 预览数 = %d", len(moves), len(predicted))
	}
	for _, m := range moves {
		if predicted[m.Name] != m.Category {
			t.Errorf("文件 %s 实际分类 %s 与预览 %s 不一致", m.Name, m.Category, predicted[m.Name])
		}
	}
}

// TestOrganize_MissingRoot 目录不存在时返回错误且无任何副作用
func TestOrganize_MissingRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := &events.CaptureSink{}

	org := New("/no/such/dir", classifier.NewDefault())
	org.Fs = fs
	org.Sink = sink

	_, err := org.Organize(false)
	if !errors.Is(err, ErrRootNotFound) {
		t.Fatalf("err = %v, 期望 ErrRootNotFound", err)
	}

	if len(sink.Events) != 0 {
		t.Errorf("不应产生任何事件，实际 %d 个", len(sink.Events))
	}
	if exists, _ := afero.DirExists(fs, "/no/such/dir"); exists {
		t.Error("不应创建任何目录")
	}
}

// TestOrganize_Events 事件按类型正确上报
func TestOrganize_Events(t *testing.T) {
	org, _, sink := newTestOrganizer(t, map[string]string{
		"report.pdf": "pdf",
	})

	if _, err := org.Organize(false); err != nil {
		t.Fatalf("Organize() error = %v", err)
	}

	// 内置分类表共 12 个分类，首次运行全部创建
	if got := len(sink.ByType("folder_created")); got != 12 {
		t.Errorf("folder_created 事件数 = %d, 期望 12", got)
	}

	moves := sink.ByType("file_moved")
	if len(moves) != 1 || moves[0].Name != "report.pdf" || moves[0].Category != "Documents" {
		t.Errorf("file_moved 事件不正确: %+v", moves)
	}

	summaries := sink.ByType("run_summary")
	if len(summaries) != 1 || summaries[0].Moved != 1 || summaries[0].Skipped != 0 {
		t.Errorf("run_summary 事件不正确: %+v", summaries)
	}
}

// TestOrganize_RootNamedAsCategory 根目录本身就是分类文件夹名时
// 归属该分类的文件保持原状
func TestOrganize_RootNamedAsCategory(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "Documents")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "report.pdf"), []byte("pdf"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	org := New(root, classifier.NewDefault())
	org.Sink = &events.CaptureSink{}

	summary, err := org.Organize(false)
	if err != nil {
		t.Fatalf("Organize() error = %v", err)
	}

	if summary.Moved != 0 {
		t.Errorf("Moved = %d, 期望 0", summary.Moved)
	}
	if _, err := os.Stat(filepath.Join(root, "report.pdf")); err != nil {
		t.Errorf("report.pdf 应留在原位: %v", err)
	}
}

// TestListByCategory 整理后按分类列出文件
func TestListByCategory(t *testing.T) {
	org, _, _ := newTestOrganizer(t, map[string]string{
		"report.pdf": "pdf",
		"notes.txt":  "txt",
		"photo.jpg":  "jpg",
	})

	if _, err := org.Organize(false); err != nil {
		t.Fatalf("Organize() error = %v", err)
	}

	listings, total, err := org.ListByCategory()
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}

	if total != 3 {
		t.Errorf("total = %d, 期望 3", total)
	}

	byCategory := make(map[string][]string)
	for _, l := range listings {
		byCategory[l.Category] = l.Files
	}
	if got := len(byCategory["Documents"]); got != 2 {
		t.Errorf("Documents 文件数 = %d, 期望 2", got)
	}
	if got := len(byCategory["Images"]); got != 1 {
		t.Errorf("Images 文件数 = %d, 期望 1", got)
	}
}

// TestListByCategory_MissingRoot 目录不存在时返回错误
func TestListByCategory_MissingRoot(t *testing.T) {
	org := New("/no/such/dir", classifier.NewDefault())
	org.Fs = afero.NewMemMapFs()

	if _, _, err := org.ListByCategory(); !errors.Is(err, ErrRootNotFound) {
		t.Errorf("err = %v, 期望 ErrRootNotFound", err)
	}
}
