// Package dates 日期处理工具
//
// 提供多格式日期解析、剩余天数计算和格式化。
// 所有计算都基于日历日（date-only），与一天内的具体时刻无关。
package dates

import (
	"strings"
	"time"
)

// supportedFormats 支持的日期格式列表（按尝试顺序）
var supportedFormats = []string{
	"20060102",        // 20240101
	"2006-01-02",      // 2024-01-01
	"2006/01/02",      // 2024/01/01
	"02/01/2006",      // 01/01/2024
	"02-01-2006",      // 01-01-2024
	"2006年01月02日", // 2024年01月01日
}

// DefaultFormat 默认输出格式
const DefaultFormat = "2006-01-02"

// Parse 解析日期字符串
// 依次尝试所有支持的格式；解析失败返回 ok=false。
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range supportedFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return normalize(t), true
		}
	}
	return time.Time{}, false
}

// Format 格式化日期为字符串（默认 2006-01-02）
func Format(t time.Time) string {
	return t.Format(DefaultFormat)
}

// FormatCompact 格式化为紧凑形式（20060102，用于文件名）
func FormatCompact(t time.Time) string {
	return t.Format("20060102")
}

// Today 返回今天的日期（UTC 午夜，仅日期部分有意义）
// 同一批次内只读取一次，保证批内一致。
func Today() time.Time {
	return normalize(time.Now())
}

// DaysBetween 计算 from 到 to 的日历天数差（带符号）
// to 在 from 之前时为负数。
func DaysBetween(from, to time.Time) int {
	f := normalize(from)
	t := normalize(to)
	return int(t.Sub(f).Hours() / 24)
}

// DaysLeft 计算证件剩余有效天数（负数表示已过期）
func DaysLeft(expiry, today time.Time) int {
	return DaysBetween(today, expiry)
}

// normalize 截断到 UTC 午夜，消除时刻与时区对天数差的影响
func normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
