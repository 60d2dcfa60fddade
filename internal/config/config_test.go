package config

import (
	"testing"

	"licence-reminder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyYAML = `
email:
  smtp_server: smtp.qq.com
  smtp_port: 587
  smtp_user: sender@qq.com
  smtp_password: auth-code
  sender_name: 证件管理系统
  receiver_email: "a@example.com, b@example.com"
  use_ssl: false
  use_tls: true
`

const multiRelayYAML = `
email:
  relays:
    - name: primary
      host: smtp.qq.com
      port: 465
      user: sender@qq.com
      password: auth-code
      sender_name: 证件管理系统
      tls_mode: ssl
    - host: smtp.gmail.com
      port: 587
      user: backup@gmail.com
      password: app-password
      tls_mode: starttls
  receiver_email: a@example.com
`

func TestParse_LegacyShapeNormalized(t *testing.T) {
	cfg, err := Parse([]byte(legacyYAML))
	require.NoError(t, err)

	relays := cfg.Relays()
	require.Len(t, relays, 1)
	assert.Equal(t, "smtp.qq.com", relays[0].Name)
	assert.Equal(t, "smtp.qq.com", relays[0].Host)
	assert.Equal(t, 587, relays[0].Port)
	assert.Equal(t, "sender@qq.com", relays[0].User)
	assert.Equal(t, models.TLSModeStartTLS, relays[0].TLSMode)
}

func TestParse_LegacyDefaultsToSSL(t *testing.T) {
	cfg, err := Parse([]byte(`
email:
  smtp_server: smtp.qq.com
  smtp_port: 465
  smtp_user: sender@qq.com
  smtp_password: auth-code
  receiver_email: a@example.com
`))
	require.NoError(t, err)

	relays := cfg.Relays()
	require.Len(t, relays, 1)
	assert.Equal(t, models.TLSModeSSL, relays[0].TLSMode)
}

func TestParse_MultiRelayShape(t *testing.T) {
	cfg, err := Parse([]byte(multiRelayYAML))
	require.NoError(t, err)

	relays := cfg.Relays()
	require.Len(t, relays, 2)

	// 主中继在前，备用按配置顺序
	assert.Equal(t, "primary", relays[0].Name)
	assert.Equal(t, models.TLSModeSSL, relays[0].TLSMode)
	// 未命名中继退化为 host
	assert.Equal(t, "smtp.gmail.com", relays[1].Name)
	assert.Equal(t, models.TLSModeStartTLS, relays[1].TLSMode)
}

func TestRecipients_SplitAndTrimNoDedup(t *testing.T) {
	cfg, err := Parse([]byte(`
email:
  receiver_email: " a@example.com ,b@example.com,, a@example.com "
`))
	require.NoError(t, err)

	// 逗号拆分、去除空白、不去重
	assert.Equal(t, []string{"a@example.com", "b@example.com", "a@example.com"}, cfg.Recipients())
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(legacyYAML))
	require.NoError(t, err)

	assert.Equal(t, []int{60, 30, 7, 1}, cfg.Reminder.DaysBeforeExpiry)
	assert.Equal(t, 30, cfg.Report.DaysUntilExpiringThreshold)
	assert.Equal(t, "证件到期提醒 - {count}个证件需要关注 ({today_date})", cfg.MailTemplate.Subject)
	assert.Equal(t, "logs/last_success_iso.txt", cfg.StateFile)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate_Passes(t *testing.T) {
	cfg, err := Parse([]byte(multiRelayYAML))
	require.NoError(t, err)
	assert.Empty(t, cfg.Validate())
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg, err := Parse([]byte(`
email:
  relays:
    - name: broken
      host: ""
      port: 99999
      user: ""
      password: ""
  receiver_email: "not-an-address"
reminder:
  days_before_expiry: [-1]
`))
	require.NoError(t, err)

	errs := cfg.Validate()
	assert.Contains(t, errs, "中继 broken: SMTP服务器地址不能为空")
	assert.Contains(t, errs, "中继 broken: SMTP端口必须在1-65535之间")
	assert.Contains(t, errs, "中继 broken: SMTP用户名不能为空")
	assert.Contains(t, errs, "中继 broken: SMTP密码不能为空")
	assert.Contains(t, errs, "邮箱格式无效: not-an-address")
	assert.Contains(t, errs, "提醒天数不能为负数")
}

func TestValidate_EmptyRecipients(t *testing.T) {
	cfg, err := Parse([]byte(`
email:
  smtp_server: smtp.qq.com
  smtp_port: 465
  smtp_user: sender@qq.com
  smtp_password: auth-code
`))
	require.NoError(t, err)
	assert.Contains(t, cfg.Validate(), "收件人邮箱不能为空")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}
