// Package engine 核心业务逻辑
//
// 负责证件状态计算、提醒规则匹配、汇总统计和报告行生成。
// 各阶段在一个批次上严格顺序执行，对同一输入重复执行结果相同。
package engine

import (
	"time"

	"licence-reminder/internal/dates"
	"licence-reminder/internal/models"

	"go.uber.org/zap"
)

// Engine 提醒业务逻辑引擎
type Engine struct {
	logger *zap.Logger
}

// NewEngine 创建业务逻辑引擎
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// ComputeStatus 计算所有证件的状态信息（剩余天数、状态）
// today 在一个批次内只取一次，保证批内一致；threshold 为即将过期的天数阈值。
// 就地更新传入的记录并返回同一切片。
func (e *Engine) ComputeStatus(docs []*models.DocumentRecord, threshold int, today time.Time) []*models.DocumentRecord {
	e.logger.Info("Computing document status",
		zap.Int("count", len(docs)),
		zap.Int("expiring_threshold", threshold),
	)

	for _, doc := range docs {
		if doc.HasExpiryDate() {
			left := dates.DaysLeft(*doc.ExpiryDate, today)
			doc.DaysLeft = &left
			doc.Status = statusFor(left, threshold)
		} else {
			doc.DaysLeft = nil
			doc.Status = models.StatusUnknown
		}
	}

	e.logger.Info("Status distribution computed",
		zap.Any("distribution", countStatus(docs)),
	)
	return docs
}

// statusFor 根据剩余天数和阈值判定状态
func statusFor(daysLeft, threshold int) models.Status {
	switch {
	case daysLeft < 0:
		return models.StatusExpired
	case daysLeft <= threshold:
		return models.StatusExpiringSoon
	default:
		return models.StatusValid
	}
}

// countStatus 统计状态分布
func countStatus(docs []*models.DocumentRecord) map[string]int {
	counts := make(map[string]int)
	for _, doc := range docs {
		status := doc.Status
		if status == "" {
			status = models.StatusUnknown
		}
		counts[string(status)]++
	}
	return counts
}
