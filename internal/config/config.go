// Package config 配置管理
//
// 负责 YAML 配置文件的加载、验证和中继列表归一化。
// 兼容两种邮件配置形态：
//   - 旧版：email 节点直接携带单个 SMTP 服务器字段
//   - 新版：email.relays 携带有序中继列表（第一个为主中继）
//
// 归一化只在此处发生一次，系统其余部分只见到规范的中继列表。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"licence-reminder/internal/models"

	"gopkg.in/yaml.v3"
)

// ErrConfig 配置错误（缺失/越界的配置项）
var ErrConfig = errors.New("config error")

// RelayEntry 新版多中继配置项
type RelayEntry struct {
	Name       string `yaml:"name"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	TLSMode    string `yaml:"tls_mode"` // ssl | starttls | plain
}

// EmailConfig 邮件配置（同时承载新旧两种形态）
type EmailConfig struct {
	// 旧版单中继字段
	SMTPServer   string `yaml:"smtp_server"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	SenderName   string `yaml:"sender_name"`
	UseSSL       *bool  `yaml:"use_ssl"`
	UseTLS       bool   `yaml:"use_tls"`

	// 新版多中继字段（非空时优先于旧版字段）
	Relays []RelayEntry `yaml:"relays"`

	// 收件人，逗号分隔
	ReceiverEmail string `yaml:"receiver_email"`
}

// ReminderConfig 提醒规则配置
type ReminderConfig struct {
	DaysBeforeExpiry []int `yaml:"days_before_expiry"`
}

// ReportConfig 报告配置
type ReportConfig struct {
	OutputFilename             string `yaml:"output_filename"`
	DaysUntilExpiringThreshold int    `yaml:"days_until_expiring_threshold"`
}

// MailTemplateConfig 邮件模板配置
type MailTemplateConfig struct {
	Subject      string `yaml:"subject"`
	BodyHTML     string `yaml:"body_html"`
	TableRowHTML string `yaml:"table_row_html"`
}

// Config 应用主配置
type Config struct {
	Email        EmailConfig        `yaml:"email"`
	Reminder     ReminderConfig     `yaml:"reminder"`
	Report       ReportConfig       `yaml:"report"`
	MailTemplate MailTemplateConfig `yaml:"mail_template"`

	DataFile  string `yaml:"data_file"`
	StateFile string `yaml:"state_file"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load 从 YAML 文件加载配置
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrConfig, path, err)
	}
	return Parse(data)
}

// Parse 解析配置内容并填充默认值
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %v", ErrConfig, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults 填充默认值
func (c *Config) applyDefaults() {
	if len(c.Reminder.DaysBeforeExpiry) == 0 {
		c.Reminder.DaysBeforeExpiry = []int{60, 30, 7, 1}
	}
	if c.Report.OutputFilename == "" {
		c.Report.OutputFilename = "证件状态报告_{date}.csv"
	}
	if c.Report.DaysUntilExpiringThreshold == 0 {
		c.Report.DaysUntilExpiringThreshold = 30
	}
	if c.MailTemplate.Subject == "" {
		c.MailTemplate.Subject = "证件到期提醒 - {count}个证件需要关注 ({today_date})"
	}
	if c.DataFile == "" {
		c.DataFile = "sample_data/人员证件信息.csv"
	}
	if c.StateFile == "" {
		c.StateFile = "logs/last_success_iso.txt"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Relays 归一化后的规范中继列表（主中继在前，备用按配置顺序）
// 新版 relays 列表非空时使用新版；否则由旧版单中继字段构造单元素列表。
func (c *Config) Relays() []models.RelayConfig {
	if len(c.Email.Relays) > 0 {
		relays := make([]models.RelayConfig, 0, len(c.Email.Relays))
		for i, e := range c.Email.Relays {
			relays = append(relays, models.RelayConfig{
				Name:       relayName(e.Name, e.Host, i),
				Host:       e.Host,
				Port:       e.Port,
				User:       e.User,
				Password:   e.Password,
				SenderName: e.SenderName,
				TLSMode:    parseTLSMode(e.TLSMode),
			})
		}
		return relays
	}

	// 旧版形态：use_ssl 缺省为 true，use_tls 表示 STARTTLS
	mode := models.TLSModeSSL
	if c.Email.UseSSL != nil && !*c.Email.UseSSL {
		if c.Email.UseTLS {
			mode = models.TLSModeStartTLS
		} else {
			mode = models.TLSModePlain
		}
	}
	return []models.RelayConfig{{
		Name:       relayName("", c.Email.SMTPServer, 0),
		Host:       c.Email.SMTPServer,
		Port:       c.Email.SMTPPort,
		User:       c.Email.SMTPUser,
		Password:   c.Email.SMTPPassword,
		SenderName: c.Email.SenderName,
		TLSMode:    mode,
	}}
}

// Recipients 收件人列表：按逗号拆分并去除首尾空白，不去重
func (c *Config) Recipients() []string {
	var out []string
	for _, part := range strings.Split(c.Email.ReceiverEmail, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Validate 验证配置有效性，返回全部错误列表（空列表表示通过）
func (c *Config) Validate() []string {
	var errs []string

	relays := c.Relays()
	for _, r := range relays {
		if r.Host == "" {
			errs = append(errs, fmt.Sprintf("中继 %s: SMTP服务器地址不能为空", r.Name))
		}
		if r.Port < 1 || r.Port > 65535 {
			errs = append(errs, fmt.Sprintf("中继 %s: SMTP端口必须在1-65535之间", r.Name))
		}
		if r.User == "" {
			errs = append(errs, fmt.Sprintf("中继 %s: SMTP用户名不能为空", r.Name))
		}
		if r.Password == "" {
			errs = append(errs, fmt.Sprintf("中继 %s: SMTP密码不能为空", r.Name))
		}
	}

	recipients := c.Recipients()
	if len(recipients) == 0 {
		errs = append(errs, "收件人邮箱不能为空")
	}
	for _, addr := range recipients {
		if !strings.Contains(addr, "@") || !strings.Contains(addr, ".") {
			errs = append(errs, fmt.Sprintf("邮箱格式无效: %s", addr))
		}
	}

	for _, day := range c.Reminder.DaysBeforeExpiry {
		if day < 0 {
			errs = append(errs, "提醒天数不能为负数")
			break
		}
	}
	if c.Report.DaysUntilExpiringThreshold < 0 {
		errs = append(errs, "即将过期阈值不能为负数")
	}

	return errs
}

// relayName 中继显示名称：未配置时退化为 host，再退化为序号
func relayName(name, host string, idx int) string {
	if name != "" {
		return name
	}
	if host != "" {
		return host
	}
	return fmt.Sprintf("relay-%d", idx+1)
}

// parseTLSMode 解析 TLS 方式，未知值按 ssl 处理
func parseTLSMode(s string) models.TLSMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "starttls":
		return models.TLSModeStartTLS
	case "plain":
		return models.TLSModePlain
	default:
		return models.TLSModeSSL
	}
}
