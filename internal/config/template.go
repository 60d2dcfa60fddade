package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigTemplate 默认配置文件模板
// 同时给出新旧两种邮件配置形态的写法，旧版字段注释保留以便迁移。
const defaultConfigTemplate = `# 人员证件有效期管控系统配置文件
# 复制本模板为 config.yaml 并修改其中的配置项。

email:
  # 新版多中继配置：第一个为主中继，其余为备用中继，按顺序故障转移。
  relays:
    - name: primary
      host: smtp.qq.com
      port: 465
      user: your_email@qq.com
      password: your_auth_code
      sender_name: 证件管理系统
      tls_mode: ssl        # ssl | starttls | plain
    - name: backup
      host: smtp.gmail.com
      port: 587
      user: your_email@gmail.com
      password: your_app_password
      sender_name: 证件管理系统
      tls_mode: starttls

  # 旧版单中继配置（relays 为空时生效）：
  # smtp_server: smtp.qq.com
  # smtp_port: 587
  # smtp_user: your_email@qq.com
  # smtp_password: your_auth_code
  # sender_name: 证件管理系统
  # use_ssl: false
  # use_tls: true

  # 收件人，多个收件人用逗号分隔
  receiver_email: recipient@example.com

reminder:
  days_before_expiry: [60, 30, 7, 1]

report:
  output_filename: "证件状态报告_{date}.csv"
  days_until_expiring_threshold: 30

mail_template:
  subject: "证件到期提醒 - {count}个证件需要关注 ({today_date})"
  body_html: |
    <!DOCTYPE html>
    <html>
    <head>
        <meta charset="UTF-8">
        <title>证件到期提醒</title>
    </head>
    <body>
        <h2>证件到期提醒</h2>
        <p>以下证件即将到期或已过期，请及时处理：</p>
        <table border="1" style="border-collapse: collapse; width: 100%;">
            <tr style="background-color: #f2f2f2;">
                <th>姓名</th>
                <th>证件类型</th>
                <th>到期日期</th>
                <th>剩余天数</th>
                <th>备注</th>
            </tr>
            {table_rows}
        </table>
        <br>
        <p>此邮件由系统自动发送，请勿回复。</p>
    </body>
    </html>
  table_row_html: |
    <tr>
        <td>{person_name}</td>
        <td>{document_type}</td>
        <td>{expiry_date}</td>
        <td style="color: {color};">{days_left}</td>
        <td>{remarks}</td>
    </tr>

data_file: "sample_data/人员证件信息.csv"
state_file: "logs/last_success_iso.txt"

log:
  level: info
  format: json
`

// WriteDefault 生成默认配置文件模板
func WriteDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, []byte(defaultConfigTemplate), 0o644)
}
