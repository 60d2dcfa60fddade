// Package compose 邮件内容渲染
//
// 负责主题、表格行和正文三个模板的占位符校验与渲染。
// 模板采用 {name} 形式的命名占位符；缺少必需占位符的模板在加载时
// 立即报错，而不是在渲染时产出残缺的邮件。
package compose

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"licence-reminder/internal/dates"
	"licence-reminder/internal/engine"
	"licence-reminder/internal/models"

	"go.uber.org/zap"
)

// TemplateError 模板缺少必需占位符
type TemplateError struct {
	Template    string // 模板名称：subject / body_html / table_row_html
	Placeholder string // 缺失的占位符
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s is missing required placeholder {%s}", e.Template, e.Placeholder)
}

// TemplateSet 三个邮件模板
type TemplateSet struct {
	Subject      string
	BodyHTML     string
	TableRowHTML string
}

// requiredPlaceholders 各模板的必需占位符
var requiredPlaceholders = map[string][]string{
	"subject":        {"count", "today_date"},
	"body_html":      {"table_rows"},
	"table_row_html": {"person_name", "document_type", "expiry_date", "days_left", "remarks", "color"},
}

// Composer 邮件内容渲染器
type Composer struct {
	templates TemplateSet
	logger    *zap.Logger
}

// NewComposer 创建渲染器并校验全部模板
// 任一模板缺少必需占位符时返回 *TemplateError。
func NewComposer(templates TemplateSet, logger *zap.Logger) (*Composer, error) {
	texts := map[string]string{
		"subject":        templates.Subject,
		"body_html":      templates.BodyHTML,
		"table_row_html": templates.TableRowHTML,
	}
	for _, name := range []string{"subject", "body_html", "table_row_html"} {
		for _, placeholder := range requiredPlaceholders[name] {
			if !strings.Contains(texts[name], "{"+placeholder+"}") {
				return nil, &TemplateError{Template: name, Placeholder: placeholder}
			}
		}
	}
	return &Composer{templates: templates, logger: logger}, nil
}

// Subject 渲染邮件主题
func (c *Composer) Subject(count int, today time.Time) string {
	return substitute(c.templates.Subject, map[string]string{
		"count":      strconv.Itoa(count),
		"today_date": dates.Format(today),
	})
}

// Body 渲染 HTML 邮件正文
// 按传入顺序（已排序的提醒列表）逐条渲染表格行后拼入正文模板。
func (c *Composer) Body(candidates []*models.DocumentRecord) string {
	rows := make([]string, 0, len(candidates))
	for _, doc := range candidates {
		rows = append(rows, c.renderRow(doc))
	}
	return substitute(c.templates.BodyHTML, map[string]string{
		"table_rows": strings.Join(rows, "\n"),
	})
}

// renderRow 渲染单条证件的表格行
func (c *Composer) renderRow(doc *models.DocumentRecord) string {
	expiryDisplay := "未知"
	if doc.ExpiryDate != nil {
		expiryDisplay = dates.Format(*doc.ExpiryDate)
	}
	return substitute(c.templates.TableRowHTML, map[string]string{
		"person_name":   doc.PersonName,
		"document_type": doc.DocumentType,
		"expiry_date":   expiryDisplay,
		"days_left":     DaysLeftDisplay(doc.DaysLeft),
		"remarks":       doc.Remarks,
		"color":         engine.DisplayColor(doc.DaysLeft),
	})
}

// DaysLeftDisplay 剩余天数的显示文本
func DaysLeftDisplay(daysLeft *int) string {
	if daysLeft == nil {
		return "未知"
	}
	switch left := *daysLeft; {
	case left < 0:
		return fmt.Sprintf("已过期 %d 天", -left)
	case left == 0:
		return "今天到期"
	case left == 1:
		return "明天到期"
	default:
		return fmt.Sprintf("%d 天后到期", left)
	}
}

// substitute 将模板中的 {name} 占位符替换为对应值
func substitute(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
