package dispatch

import "strings"

// provider 邮件服务商修复建议表项
// 新增服务商只需追加表项，不触及投递控制流。
type provider struct {
	ID          string // 服务商标识
	HostKeyword string // host 中可识别的子串
	Hint        string // 修复建议
}

// providers 已知服务商的修复建议
var providers = []provider{
	{
		ID:          "qq",
		HostKeyword: "qq.com",
		Hint:        "QQ邮箱需使用授权码而非登录密码，请在邮箱设置-账户中开启SMTP服务并生成授权码",
	},
	{
		ID:          "gmail",
		HostKeyword: "gmail.com",
		Hint:        "Gmail需启用两步验证并使用应用专用密码，不接受账号密码直接登录SMTP",
	},
	{
		ID:          "netease-163",
		HostKeyword: "163.com",
		Hint:        "网易163邮箱需使用客户端授权码，请在邮箱设置中开启SMTP服务",
	},
	{
		ID:          "netease-126",
		HostKeyword: "126.com",
		Hint:        "网易126邮箱需使用客户端授权码，请在邮箱设置中开启SMTP服务",
	},
	{
		ID:          "outlook",
		HostKeyword: "office365.com",
		Hint:        "Outlook/Office365建议使用587端口STARTTLS，并确认账号允许SMTP AUTH",
	},
	{
		ID:          "outlook",
		HostKeyword: "outlook.com",
		Hint:        "Outlook/Office365建议使用587端口STARTTLS，并确认账号允许SMTP AUTH",
	},
	{
		ID:          "yahoo",
		HostKeyword: "yahoo.com",
		Hint:        "Yahoo邮箱需在账号安全设置中生成应用密码后用于SMTP登录",
	},
}

// genericHint 未识别服务商的通用建议
const genericHint = "请检查SMTP服务器地址、端口、TLS方式与账号密码是否正确，必要时联系邮件服务商确认SMTP已开通"

// RemediationHint 按中继 host 查找服务商修复建议
func RemediationHint(host string) string {
	h := strings.ToLower(host)
	for _, p := range providers {
		if strings.Contains(h, p.HostKeyword) {
			return p.Hint
		}
	}
	return genericHint
}
