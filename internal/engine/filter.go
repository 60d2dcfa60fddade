package engine

import (
	"sort"
	"strings"

	"licence-reminder/internal/models"

	"go.uber.org/zap"
)

// missingDaysLeftSentinel 缺少剩余天数的记录在排序中使用的哨兵值
// 沿用既有行为：这类记录排在所有真正过期的记录之前。
const missingDaysLeftSentinel = -999

// FilterReminders 筛选需要提醒的证件
// 规则（按优先级）：
//  1. 无到期日期（状态为未知）的记录一律不提醒
//  2. 备注去除首尾空白后等于"已办理"的记录无条件不提醒
//  3. 已过期的记录需要提醒
//  4. 提醒天数列表为空时不提醒
//  5. 剩余天数 <= 提醒天数列表最大值时需要提醒
//
// 返回需要提醒的子集，按剩余天数升序排列。
func (e *Engine) FilterReminders(docs []*models.DocumentRecord, reminderDays []int) []*models.DocumentRecord {
	e.logger.Info("Filtering reminder candidates",
		zap.Ints("reminder_days", reminderDays),
	)

	var candidates []*models.DocumentRecord
	for _, doc := range docs {
		if doc.DaysLeft == nil {
			doc.NeedsReminder = false
			continue
		}
		if strings.TrimSpace(doc.Remarks) == models.HandledRemark {
			doc.NeedsReminder = false
			e.logger.Debug("Remark marked handled, skipping reminder",
				zap.String("person", doc.PersonName),
				zap.String("document_type", doc.DocumentType),
			)
			continue
		}
		doc.NeedsReminder = needsReminder(*doc.DaysLeft, reminderDays)
		if doc.NeedsReminder {
			candidates = append(candidates, doc)
		}
	}

	e.logger.Info("Reminder candidates selected",
		zap.Int("count", len(candidates)),
	)

	// 按剩余天数升序（已过期的在前面，天数越少越靠前）
	sort.SliceStable(candidates, func(i, j int) bool {
		return sortDaysLeft(candidates[i]) < sortDaysLeft(candidates[j])
	})
	return candidates
}

// needsReminder 判断是否需要发送提醒
func needsReminder(daysLeft int, reminderDays []int) bool {
	// 已过期的证件需要提醒
	if daysLeft < 0 {
		return true
	}
	// 没有设置提醒天数时不提醒
	if len(reminderDays) == 0 {
		return false
	}
	// 剩余天数不超过最大提醒天数时需要提醒
	return daysLeft <= maxInt(reminderDays)
}

// sortDaysLeft 排序键：缺少剩余天数时取哨兵值
func sortDaysLeft(doc *models.DocumentRecord) int {
	if doc.DaysLeft == nil {
		return missingDaysLeftSentinel
	}
	return *doc.DaysLeft
}

func maxInt(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
