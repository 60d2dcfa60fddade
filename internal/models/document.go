package models

import (
	"time"
)

// Status 证件状态分类
type Status string

const (
	StatusExpired      Status = "已过期"   // days_left < 0
	StatusExpiringSoon Status = "即将过期" // 0 <= days_left <= 阈值
	StatusValid        Status = "有效"    // days_left > 阈值
	StatusUnknown      Status = "未知"    // 无到期日期
)

// HandledRemark 备注哨兵值：备注去除首尾空白后等于该值时，无条件跳过提醒
const HandledRemark = "已办理"

// DocumentRecord 人员证件记录
type DocumentRecord struct {
	PersonName   string     // 姓名
	DocumentType string     // 证件类型
	StartDate    *time.Time // 有效期起始日期（可选）
	ExpiryDate   *time.Time // 有效期截止日期（可选）
	Remarks      string     // 备注信息

	// 计算字段（由 engine 在单次运行中填充一次）
	DaysLeft      *int   // 剩余天数，无到期日期时为 nil
	Status        Status // 状态
	NeedsReminder bool   // 是否需要提醒
}

// HasExpiryDate 是否有到期日期
func (d *DocumentRecord) HasExpiryDate() bool {
	return d.ExpiryDate != nil
}
