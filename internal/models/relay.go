package models

// TLSMode 中继连接的 TLS 方式
type TLSMode string

const (
	TLSModeSSL      TLSMode = "ssl"      // 隐式 TLS（连接即加密）
	TLSModeStartTLS TLSMode = "starttls" // 明文连接后升级
	TLSModePlain    TLSMode = "plain"    // 明文
)

// RelayConfig 单个出站邮件中继配置
// 列表顺序即尝试顺序：第一个为主中继，其余为备用中继。
// 在一次投递过程中不可变。
type RelayConfig struct {
	Name       string  // 中继名称（日志与尝试记录中使用）
	Host       string  // SMTP 服务器地址
	Port       int     // SMTP 端口
	User       string  // 登录账号（同时作为实际发件地址）
	Password   string  // 登录密码/授权码
	SenderName string  // 发件人显示名称（见 dispatch 中关于 From 重写的说明）
	TLSMode    TLSMode // TLS 方式
}

// FailureClass 投递失败分类
type FailureClass string

const (
	FailureAuth              FailureClass = "AuthFailure"       // 认证失败
	FailureRecipientRejected FailureClass = "RecipientRejected" // 收件人被拒绝
	FailureConnectionDropped FailureClass = "ConnectionDropped" // 连接中断
	FailureConnect           FailureClass = "ConnectFailure"    // 无法建立连接
	FailureProtocol          FailureClass = "ProtocolError"     // SMTP 协议错误
	FailureNetwork           FailureClass = "NetworkError"      // 网络错误/超时
	FailureUnknown           FailureClass = "Unknown"           // 未知错误
)

// DeliveryAttempt 一次中继尝试的记录
// 一次投递产生的有序 DeliveryAttempt 序列即审计日志：
// 每个实际尝试过的中继恰好一条，首个成功之后的中继不会出现。
type DeliveryAttempt struct {
	Relay          string       // 中继名称
	Success        bool         // 本次尝试是否成功
	Classification FailureClass // 失败分类（失败时）
	Hint           string       // 修复建议（失败时）
	Err            string       // 原始错误文本（失败时）
}
