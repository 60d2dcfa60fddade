package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"licence-reminder/internal/config"
	"licence-reminder/internal/service"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath   = flag.String("config", "config.yaml", "配置文件路径")
		reportMode   = flag.Bool("report", false, "生成证件状态报告")
		outputPath   = flag.String("output", "", "状态报告输出文件路径（.xlsx 生成Excel，否则生成CSV）")
		testEmail    = flag.Bool("test-email", false, "发送测试邮件")
		createSample = flag.Bool("create-sample", false, "创建示例数据文件")
		initConfig   = flag.Bool("init-config", false, "创建默认配置文件模板")
		catchup      = flag.Bool("catchup", false, "补偿运行：上次成功早于昨天时补跑提醒流程")
	)
	flag.Parse()

	// 生成配置模板不依赖已有配置
	if *initConfig {
		path := "config_templates/config_template.yaml"
		if err := config.WriteDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "创建配置模板失败: %v\n", err)
			return 1
		}
		fmt.Printf("默认配置文件模板已创建: %s\n", path)
		return 0
	}

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		return 1
	}

	// 2. 初始化日志
	logger, err := initLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("Licence reminder starting",
		zap.String("config", *configPath),
		zap.String("data_file", cfg.DataFile),
	)

	// 3. 创建应用
	app, err := service.NewApp(cfg, logger)
	if err != nil {
		logger.Error("Failed to create app", zap.Error(err))
		return 1
	}

	// 4. 按模式执行
	ctx := context.Background()
	now := time.Now()

	var runErr error
	switch {
	case *createSample:
		runErr = app.CreateSample()
	case *testEmail:
		runErr = app.RunTestEmail(ctx)
	case *reportMode:
		runErr = app.RunReport(*outputPath)
	case *catchup:
		runErr = app.RunCatchup(ctx, now)
	default:
		// 默认运行邮件提醒，成功后记录时间戳供补偿调度读取
		if runErr = app.RunReminder(ctx); runErr == nil {
			runErr = app.RecordSuccess(now)
		}
	}

	if runErr != nil {
		logger.Error("Run failed", zap.Error(runErr))
		return 1
	}
	logger.Info("Run completed")
	return 0
}

// initLogger 初始化日志
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Log.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if level, err := zap.ParseAtomicLevel(cfg.Log.Level); err == nil {
		zapCfg.Level = level
	}
	return zapCfg.Build()
}
