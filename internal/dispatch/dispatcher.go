// Package dispatch 多中继邮件投递
//
// 按固定优先顺序（主中继在前，备用按配置顺序）逐个尝试投递：
// 任一中继成功即停止；失败则分类记录后立即转移到下一个中继，
// 同一中继不重试，中继之间无退避延迟。整个过程严格串行。
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"licence-reminder/internal/models"

	"go.uber.org/zap"
)

// Dispatcher 多中继投递调度器
type Dispatcher struct {
	relays    []models.RelayConfig
	transport Transport
	logger    *zap.Logger
}

// NewDispatcher 创建投递调度器（默认使用 go-mail SMTP 传输）
func NewDispatcher(relays []models.RelayConfig, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		relays:    relays,
		transport: newMailTransport(),
		logger:    logger,
	}
}

// WithTransport 替换底层传输（测试注入用）
func (d *Dispatcher) WithTransport(t Transport) *Dispatcher {
	d.transport = t
	return d
}

// Dispatch 投递一封邮件
// 返回整体是否成功，以及有序的尝试日志：每个实际尝试过的中继
// 恰好一条记录，首个成功之后的中继不再尝试。
func (d *Dispatcher) Dispatch(ctx context.Context, msg *Message) (bool, []models.DeliveryAttempt) {
	attempts := make([]models.DeliveryAttempt, 0, len(d.relays))

	for _, relay := range d.relays {
		// 发件人头将被改写为中继登录地址，配置的显示名称不生效；
		// 在日志中显式暴露该差异，便于维护者决断。
		if relay.SenderName != "" {
			d.logger.Warn("Configured sender display name is not applied, From uses relay login",
				zap.String("relay", relay.Name),
				zap.String("sender_name", relay.SenderName),
				zap.String("from", relay.User),
			)
		}

		d.logger.Info("Attempting delivery via relay",
			zap.String("relay", relay.Name),
			zap.String("host", relay.Host),
			zap.Int("port", relay.Port),
			zap.String("tls_mode", string(relay.TLSMode)),
			zap.Int("recipients", len(msg.Recipients)),
		)

		err := d.transport.Send(ctx, relay, msg)
		if err == nil {
			attempts = append(attempts, models.DeliveryAttempt{
				Relay:   relay.Name,
				Success: true,
			})
			d.logger.Info("Delivery succeeded",
				zap.String("relay", relay.Name),
				zap.Int("attempts", len(attempts)),
			)
			return true, attempts
		}

		class := Classify(err)
		hint := RemediationHint(relay.Host)
		attempts = append(attempts, models.DeliveryAttempt{
			Relay:          relay.Name,
			Success:        false,
			Classification: class,
			Hint:           hint,
			Err:            err.Error(),
		})
		d.logger.Error("Relay attempt failed, failing over",
			zap.String("relay", relay.Name),
			zap.String("classification", string(class)),
			zap.String("hint", hint),
			zap.Error(err),
		)
	}

	d.logger.Error("All relays failed",
		zap.Int("attempts", len(attempts)),
		zap.String("report", FailureReport(attempts)),
	)
	return false, attempts
}

// FailureReport 全部中继失败时的汇总报告：每个中继一条修复建议
func FailureReport(attempts []models.DeliveryAttempt) string {
	lines := make([]string, 0, len(attempts))
	for _, a := range attempts {
		if a.Success {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s - %s", a.Relay, a.Classification, a.Hint))
	}
	return strings.Join(lines, "; ")
}
