package dispatch

import (
	"context"
	"fmt"
	"time"

	"licence-reminder/internal/models"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// connectTimeout 单次中继尝试的固定连接超时
const connectTimeout = 30 * time.Second

// Message 待投递的一封邮件
type Message struct {
	Subject    string
	HTMLBody   string
	Recipients []string // 按配置顺序，不去重
}

// Transport 对单个中继的一次 连接+认证+发送
// 实现必须在每条退出路径上释放连接（成功、分类失败或意外错误）。
type Transport interface {
	Send(ctx context.Context, relay models.RelayConfig, msg *Message) error
}

// mailTransport 基于 go-mail 的 SMTP 传输
type mailTransport struct {
	timeout time.Duration
}

func newMailTransport() *mailTransport {
	return &mailTransport{timeout: connectTimeout}
}

// Send 通过指定中继发送邮件
// 发件人头在发送前被改写为中继自身的登录地址：部分服务商会拒绝
// From 与认证账号不一致的邮件。go-mail 的 DialAndSend 在所有路径上
// 关闭连接。
func (t *mailTransport) Send(ctx context.Context, relay models.RelayConfig, msg *Message) error {
	opts := []mail.Option{
		mail.WithPort(relay.Port),
		mail.WithTimeout(t.timeout),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(relay.User),
		mail.WithPassword(relay.Password),
	}
	switch relay.TLSMode {
	case models.TLSModeSSL:
		opts = append(opts, mail.WithSSL())
	case models.TLSModeStartTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	case models.TLSModePlain:
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(relay.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client for %s: %w", relay.Host, err)
	}

	m := mail.NewMsg()
	// 改写发件人为中继登录地址（每次尝试重新设置，不在尝试间恢复）
	if err := m.From(relay.User); err != nil {
		return fmt.Errorf("set from %s: %w", relay.User, err)
	}
	if err := m.To(msg.Recipients...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	m.SetMessageIDWithValue(uuid.NewString() + "@" + relay.Host)

	return client.DialAndSendWithContext(ctx, m)
}
