// Package service 运行流程编排（整合各层）
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"licence-reminder/internal/compose"
	"licence-reminder/internal/config"
	"licence-reminder/internal/dates"
	"licence-reminder/internal/dispatch"
	"licence-reminder/internal/engine"
	"licence-reminder/internal/ingest"
	"licence-reminder/internal/report"
	"licence-reminder/internal/state"

	"go.uber.org/zap"
)

// App 证件提醒应用（整合各层组件，生命周期为一次运行）
type App struct {
	config *config.Config
	logger *zap.Logger

	// 各层组件
	csvProcessor *ingest.CSVProcessor
	engine       *engine.Engine
	composer     *compose.Composer
	dispatcher   *dispatch.Dispatcher
	stateStore   *state.Store
}

// NewApp 创建应用并完成组件装配
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	// 1. 验证配置
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", config.ErrConfig, strings.Join(errs, "; "))
	}

	// 2. 校验邮件模板（缺少必需占位符立即失败）
	composer, err := compose.NewComposer(compose.TemplateSet{
		Subject:      cfg.MailTemplate.Subject,
		BodyHTML:     cfg.MailTemplate.BodyHTML,
		TableRowHTML: cfg.MailTemplate.TableRowHTML,
	}, logger)
	if err != nil {
		return nil, err
	}

	// 3. 创建各层组件
	app := &App{
		config:       cfg,
		logger:       logger,
		csvProcessor: ingest.NewCSVProcessor(logger),
		engine:       engine.NewEngine(logger),
		composer:     composer,
		dispatcher:   dispatch.NewDispatcher(cfg.Relays(), logger),
		stateStore:   state.NewStore(cfg.StateFile, logger),
	}
	return app, nil
}

// RunReminder 执行邮件提醒流程
// 读取数据 → 计算状态 → 筛选提醒 → 汇总 → 渲染 → 多中继投递。
// 没有需要提醒的证件时视为成功，不发送邮件。
func (a *App) RunReminder(ctx context.Context) error {
	a.logger.Info("Reminder run started",
		zap.String("data_file", a.config.DataFile),
	)

	docs, err := a.csvProcessor.ReadFile(a.config.DataFile)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		a.logger.Warn("No document records found")
		return nil
	}

	today := dates.Today()
	a.engine.ComputeStatus(docs, a.config.Report.DaysUntilExpiringThreshold, today)
	candidates := a.engine.FilterReminders(docs, a.config.Reminder.DaysBeforeExpiry)
	if len(candidates) == 0 {
		a.logger.Info("No documents need reminding, skipping mail")
		return nil
	}

	summary := a.engine.BuildSummary(candidates)
	a.logger.Info("Reminder summary",
		zap.Int("total", summary.TotalCount),
		zap.Int("expired", summary.ExpiredCount),
		zap.Int("expiring", summary.ExpiringCount),
	)

	msg := &dispatch.Message{
		Subject:    a.composer.Subject(len(candidates), today),
		HTMLBody:   a.composer.Body(candidates),
		Recipients: a.config.Recipients(),
	}

	ok, attempts := a.dispatcher.Dispatch(ctx, msg)
	if !ok {
		return fmt.Errorf("delivery failed on all %d relays: %s",
			len(attempts), dispatch.FailureReport(attempts))
	}

	a.logger.Info("Reminder run completed",
		zap.Int("documents", summary.TotalCount),
		zap.Int("relay_attempts", len(attempts)),
	)
	return nil
}

// RunReport 生成证件状态报告
// outputPath 为空时使用配置中的文件名模板（{date} 替换为当天日期）。
// 文件名以 .xlsx 结尾时生成 Excel，否则生成 CSV。
func (a *App) RunReport(outputPath string) error {
	docs, err := a.csvProcessor.ReadFile(a.config.DataFile)
	if err != nil {
		return err
	}

	today := dates.Today()
	a.engine.ComputeStatus(docs, a.config.Report.DaysUntilExpiringThreshold, today)

	if outputPath == "" {
		outputPath = strings.ReplaceAll(
			a.config.Report.OutputFilename, "{date}", dates.FormatCompact(today))
	}

	if strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		rows := a.engine.BuildReportRows(docs)
		if err := report.WriteExcelFile(rows, outputPath); err != nil {
			return fmt.Errorf("write excel report: %w", err)
		}
	} else {
		sorted := engine.SortForReport(docs)
		if err := a.csvProcessor.WriteReportCSV(sorted, outputPath, true); err != nil {
			return err
		}
	}

	a.logger.Info("Status report generated",
		zap.String("file", outputPath),
		zap.Int("documents", len(docs)),
	)
	return nil
}

// RunTestEmail 发送测试邮件以验证邮件配置
func (a *App) RunTestEmail(ctx context.Context) error {
	now := time.Now()
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>测试邮件</title>
</head>
<body>
    <h2>证件管理系统测试邮件</h2>
    <p>这是一封测试邮件，用于验证邮件配置是否正确。</p>
    <p>如果您收到此邮件，说明邮件系统配置成功！</p>
    <br>
    <p><strong>发送时间：</strong>%s</p>
    <p><strong>系统信息：</strong>人员证件有效期管控系统</p>
    <br>
    <p>此邮件由系统自动发送，请勿回复。</p>
</body>
</html>`, now.Format("2006-01-02 15:04:05"))

	msg := &dispatch.Message{
		Subject:    "证件管理系统 - 测试邮件",
		HTMLBody:   body,
		Recipients: a.config.Recipients(),
	}
	ok, attempts := a.dispatcher.Dispatch(ctx, msg)
	if !ok {
		return fmt.Errorf("test mail failed on all %d relays: %s",
			len(attempts), dispatch.FailureReport(attempts))
	}
	return nil
}

// RunCatchup 补偿运行：上次成功早于昨天时补跑一次提醒流程
func (a *App) RunCatchup(ctx context.Context, now time.Time) error {
	last, ok := a.stateStore.ReadLastSuccess()
	if !state.NeedCatchup(last, ok, now) {
		a.logger.Info("Catchup not needed",
			zap.Time("last_success", last),
		)
		return nil
	}

	a.logger.Info("Catchup run triggered",
		zap.Bool("has_last_success", ok),
		zap.Time("last_success", last),
	)
	if err := a.RunReminder(ctx); err != nil {
		return err
	}
	return a.stateStore.WriteLastSuccess(now)
}

// RecordSuccess 记录一次成功运行的时间戳
func (a *App) RecordSuccess(now time.Time) error {
	return a.stateStore.WriteLastSuccess(now)
}

// CreateSample 创建示例数据文件
func (a *App) CreateSample() error {
	return a.csvProcessor.CreateSample(a.config.DataFile)
}
