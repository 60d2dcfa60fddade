package engine

import (
	"fmt"

	"licence-reminder/internal/models"

	"go.uber.org/zap"
)

// Grouping 保持插入顺序的分组结果
type Grouping struct {
	Keys   []string
	Groups map[string][]*models.DocumentRecord
}

// add 向分组追加一条记录，首次出现的键记入 Keys
func (g *Grouping) add(key string, doc *models.DocumentRecord) {
	if g.Groups == nil {
		g.Groups = make(map[string][]*models.DocumentRecord)
	}
	if _, ok := g.Groups[key]; !ok {
		g.Keys = append(g.Keys, key)
	}
	g.Groups[key] = append(g.Groups[key], doc)
}

// Summary 提醒汇总信息
type Summary struct {
	TotalCount     int
	ExpiredCount   int
	ExpiringCount  int
	ByDaysLeft     Grouping // 键形如 "7天" 或 "已过期3天"
	ByPerson       Grouping
	ByDocumentType Grouping
}

// BuildSummary 对提醒候选集生成汇总信息
// 候选集中不含未知状态的记录，因此 ExpiredCount + ExpiringCount == TotalCount。
func (e *Engine) BuildSummary(candidates []*models.DocumentRecord) *Summary {
	summary := &Summary{TotalCount: len(candidates)}
	if len(candidates) == 0 {
		return summary
	}

	for _, doc := range candidates {
		if doc.DaysLeft == nil {
			continue
		}
		left := *doc.DaysLeft
		if left < 0 {
			summary.ExpiredCount++
		} else {
			summary.ExpiringCount++
		}
		summary.ByDaysLeft.add(daysLeftBucket(left), doc)
	}

	for _, doc := range candidates {
		summary.ByPerson.add(doc.PersonName, doc)
	}
	for _, doc := range candidates {
		summary.ByDocumentType.add(doc.DocumentType, doc)
	}

	e.logger.Info("Reminder summary built",
		zap.Int("total", summary.TotalCount),
		zap.Int("expired", summary.ExpiredCount),
		zap.Int("expiring", summary.ExpiringCount),
	)
	return summary
}

// daysLeftBucket 剩余天数的显示分桶标签
func daysLeftBucket(daysLeft int) string {
	if daysLeft >= 0 {
		return fmt.Sprintf("%d天", daysLeft)
	}
	return fmt.Sprintf("已过期%d天", -daysLeft)
}
