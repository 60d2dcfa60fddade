package engine

import (
	"sort"

	"licence-reminder/internal/dates"
	"licence-reminder/internal/models"
)

// reportMissingDaysLeft 报告排序中缺少剩余天数的记录使用的排序值（排在最后）
const reportMissingDaysLeft = 999

// ReportRow 状态报告中的一行
type ReportRow struct {
	PersonName   string
	DocumentType string
	StartDate    string // 格式化日期，无则为空
	ExpiryDate   string // 格式化日期，无则为空
	DaysLeft     *int
	Status       models.Status
	Remarks      string
}

// BuildReportRows 生成状态报告数据
// 排序规则：已过期 < 即将过期 < 其他状态；同状态内按剩余天数升序，
// 缺少剩余天数的记录排在最后。
func (e *Engine) BuildReportRows(docs []*models.DocumentRecord) []ReportRow {
	rows := make([]ReportRow, 0, len(docs))
	for _, doc := range docs {
		row := ReportRow{
			PersonName:   doc.PersonName,
			DocumentType: doc.DocumentType,
			DaysLeft:     doc.DaysLeft,
			Status:       doc.Status,
			Remarks:      doc.Remarks,
		}
		if doc.StartDate != nil {
			row.StartDate = dates.Format(*doc.StartDate)
		}
		if doc.ExpiryDate != nil {
			row.ExpiryDate = dates.Format(*doc.ExpiryDate)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		pi, pj := statusPriority(rows[i].Status), statusPriority(rows[j].Status)
		if pi != pj {
			return pi < pj
		}
		return reportDaysLeft(rows[i]) < reportDaysLeft(rows[j])
	})
	return rows
}

// SortForReport 按报告排序规则返回记录的排序副本
// 规则与 BuildReportRows 一致：状态优先级在前，同状态内剩余天数升序。
func SortForReport(docs []*models.DocumentRecord) []*models.DocumentRecord {
	sorted := make([]*models.DocumentRecord, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := statusPriority(sorted[i].Status), statusPriority(sorted[j].Status)
		if pi != pj {
			return pi < pj
		}
		return docDaysLeft(sorted[i]) < docDaysLeft(sorted[j])
	})
	return sorted
}

func docDaysLeft(doc *models.DocumentRecord) int {
	if doc.DaysLeft == nil {
		return reportMissingDaysLeft
	}
	return *doc.DaysLeft
}

// statusPriority 状态排序优先级
func statusPriority(status models.Status) int {
	switch status {
	case models.StatusExpired:
		return 0
	case models.StatusExpiringSoon:
		return 1
	default:
		return 2
	}
}

func reportDaysLeft(row ReportRow) int {
	if row.DaysLeft == nil {
		return reportMissingDaysLeft
	}
	return *row.DaysLeft
}
