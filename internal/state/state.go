// Package state 跨进程共享的唯一持久状态：上次成功运行的时间戳
//
// 时间戳以 ISO-8601 文本写入单个状态文件，供外部补偿调度读取。
// 写入采用 临时文件+重命名，崩溃不会留下解析为错误时间戳的残缺值。
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Store 上次成功时间戳存储
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore 创建状态存储
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// ReadLastSuccess 读取上次成功时间
// 文件不存在、为空或无法解析时返回 ok=false（视为从未成功）。
func (s *Store) ReadLastSuccess() (time.Time, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return time.Time{}, false
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, text)
	if err != nil {
		s.logger.Warn("Ignoring unparsable last-success timestamp",
			zap.String("file", s.path),
			zap.String("value", text),
		)
		return time.Time{}, false
	}
	return t, true
}

// WriteLastSuccess 原子写入上次成功时间
func (s *Store) WriteLastSuccess(t time.Time) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".last_success_*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(t.Format(time.RFC3339)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename state file: %w", err)
	}

	s.logger.Info("Last-success timestamp recorded",
		zap.String("file", s.path),
		zap.Time("timestamp", t),
	)
	return nil
}

// NeedCatchup 判断是否需要补跑
// 规则：从未成功，或上次成功的日期早于昨天。
func NeedCatchup(last time.Time, ok bool, now time.Time) bool {
	if !ok {
		return true
	}
	yesterday := now.AddDate(0, 0, -1)
	ly, lm, ld := last.Date()
	yy, ym, yd := yesterday.Date()
	lastDay := time.Date(ly, lm, ld, 0, 0, 0, 0, time.UTC)
	yesterdayDay := time.Date(yy, ym, yd, 0, 0, 0, 0, time.UTC)
	return lastDay.Before(yesterdayDay)
}
