package dispatch

import (
	"context"
	"errors"
	"io"
	"net"

	"licence-reminder/internal/models"

	"github.com/wneessen/go-mail"
)

// Classify 将一次投递失败归入固定的失败分类
// go-mail 的 SendError 携带类型化的失败原因，优先按其映射；
// 其余错误按网络层特征归类，无法识别的归入 Unknown。
func Classify(err error) models.FailureClass {
	if err == nil {
		return ""
	}

	var sendErr *mail.SendError
	if errors.As(err, &sendErr) {
		switch sendErr.Reason {
		case mail.ErrSMTPAuth:
			return models.FailureAuth
		case mail.ErrSMTPRcptTo:
			return models.FailureRecipientRejected
		case mail.ErrConnect:
			return models.FailureConnect
		case mail.ErrSMTPDataClose, mail.ErrSMTPReset, mail.ErrClientNoop:
			return models.FailureConnectionDropped
		case mail.ErrSMTPMailFrom, mail.ErrSMTPData, mail.ErrGetSender, mail.ErrGetTo:
			return models.FailureProtocol
		default:
			return models.FailureUnknown
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.FailureNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return models.FailureNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return models.FailureNetwork
	}
	if errors.Is(err, io.EOF) {
		return models.FailureConnectionDropped
	}
	return models.FailureUnknown
}
