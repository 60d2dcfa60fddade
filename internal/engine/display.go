package engine

// PriorityLevel 证件优先级等级（数字越小优先级越高，用于排序和显示）
func PriorityLevel(daysLeft *int) int {
	if daysLeft == nil {
		return 999
	}
	switch left := *daysLeft; {
	case left < 0:
		return 0 // 已过期
	case left <= 1:
		return 1 // 1天内到期
	case left <= 7:
		return 2 // 7天内到期
	case left <= 30:
		return 3 // 30天内到期
	default:
		return 4
	}
}

// DisplayColor 根据剩余天数返回 HTML 邮件中使用的 CSS 颜色值
func DisplayColor(daysLeft *int) string {
	if daysLeft == nil {
		return "#666666" // 灰色 - 未知
	}
	switch left := *daysLeft; {
	case left < 0:
		return "#dc3545" // 红色 - 已过期
	case left <= 1:
		return "#dc3545" // 红色 - 紧急
	case left <= 7:
		return "#fd7e14" // 橙色 - 警告
	case left <= 30:
		return "#ffc107" // 黄色 - 注意
	default:
		return "#28a745" // 绿色 - 正常
	}
}
