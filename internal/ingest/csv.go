// Package ingest 人员证件数据的读取与写出
//
// 负责读取 CSV 格式的人员证件清单、写出状态报告 CSV 和生成示例数据。
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"licence-reminder/internal/dates"
	"licence-reminder/internal/models"

	"go.uber.org/zap"
)

// ErrValidation 数据验证错误（缺失必需列、无法解析的日期等），立即中止运行
var ErrValidation = errors.New("validation error")

// requiredColumns CSV 必需列（可选列为 start_date、remarks）
var requiredColumns = []string{"person_name", "document_type", "expiry_date"}

// CSVProcessor CSV 数据处理器
type CSVProcessor struct {
	logger *zap.Logger
}

// NewCSVProcessor 创建 CSV 处理器
func NewCSVProcessor(logger *zap.Logger) *CSVProcessor {
	return &CSVProcessor{logger: logger}
}

// ReadFile 读取 CSV 文件并转换为证件记录列表
// 缺少必需列或到期日期无法解析时返回 ErrValidation；
// 姓名或证件类型为空的行跳过并告警。
func (p *CSVProcessor) ReadFile(path string) ([]*models.DocumentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	p.logger.Info("Reading document roster", zap.String("file", path))

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv %s: %v", ErrValidation, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: csv file is empty: %s", ErrValidation, path)
	}

	colIndex, err := p.headerIndex(records[0], path)
	if err != nil {
		return nil, err
	}

	var docs []*models.DocumentRecord
	for i, row := range records[1:] {
		line := i + 2 // 1-based，含表头
		doc, ok, err := p.parseRow(row, colIndex, line)
		if err != nil {
			return nil, err
		}
		if ok {
			docs = append(docs, doc)
		}
	}

	p.logger.Info("Document roster loaded",
		zap.String("file", path),
		zap.Int("count", len(docs)),
	)
	return docs, nil
}

// headerIndex 解析表头行，校验必需列
func (p *CSVProcessor) headerIndex(header []string, path string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: csv %s missing required columns: %s",
			ErrValidation, path, strings.Join(missing, ","))
	}
	return idx, nil
}

// parseRow 解析单行数据；ok=false 表示该行被跳过
func (p *CSVProcessor) parseRow(row []string, colIndex map[string]int, line int) (*models.DocumentRecord, bool, error) {
	field := func(name string) string {
		i, ok := colIndex[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	doc := &models.DocumentRecord{
		PersonName:   field("person_name"),
		DocumentType: field("document_type"),
		Remarks:      field("remarks"),
	}
	if doc.PersonName == "" || doc.DocumentType == "" {
		p.logger.Warn("Skipping row with empty person_name or document_type",
			zap.Int("line", line),
		)
		return nil, false, nil
	}

	if raw := field("expiry_date"); raw != "" {
		t, ok := dates.Parse(raw)
		if !ok {
			return nil, false, fmt.Errorf("%w: line %d: invalid expiry_date %q", ErrValidation, line, raw)
		}
		doc.ExpiryDate = &t
	}
	if raw := field("start_date"); raw != "" {
		// 起始日期仅用于展示，解析失败时置空并告警，不中止
		if t, ok := dates.Parse(raw); ok {
			doc.StartDate = &t
		} else {
			p.logger.Warn("Ignoring unparsable start_date",
				zap.Int("line", line),
				zap.String("value", raw),
			)
		}
	}
	return doc, true, nil
}

// WriteReportCSV 写出状态报告 CSV
// includeComputed 为 true 时附加计算字段列（剩余天数、状态）。
func (p *CSVProcessor) WriteReportCSV(docs []*models.DocumentRecord, path string, includeComputed bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"person_name", "document_type", "start_date", "expiry_date", "remarks"}
	if includeComputed {
		header = append(header, "days_left", "status")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, doc := range docs {
		row := []string{
			doc.PersonName,
			doc.DocumentType,
			formatDate(doc.StartDate),
			formatDate(doc.ExpiryDate),
			doc.Remarks,
		}
		if includeComputed {
			daysLeft := ""
			if doc.DaysLeft != nil {
				daysLeft = strconv.Itoa(*doc.DaysLeft)
			}
			row = append(row, daysLeft, string(doc.Status))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush report %s: %w", path, err)
	}

	p.logger.Info("Report csv written",
		zap.String("file", path),
		zap.Int("rows", len(docs)),
	)
	return nil
}

// CreateSample 创建示例数据文件
func (p *CSVProcessor) CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create sample dir: %w", err)
		}
	}
	today := dates.Today()
	sample := [][]string{
		{"person_name", "document_type", "start_date", "expiry_date", "remarks"},
		{"张三", "护照", dates.Format(today.AddDate(-5, 0, 0)), dates.Format(today.AddDate(0, 0, 45)), ""},
		{"李四", "身份证", dates.Format(today.AddDate(-10, 0, 0)), dates.Format(today.AddDate(0, 0, 5)), ""},
		{"王五", "驾驶证", dates.Format(today.AddDate(-6, 0, 0)), dates.Format(today.AddDate(0, 0, -3)), ""},
		{"赵六", "港澳通行证", dates.Format(today.AddDate(-2, 0, 0)), dates.Format(today.AddDate(0, 0, 20)), models.HandledRemark},
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sample %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(sample); err != nil {
		return fmt.Errorf("write sample %s: %w", path, err)
	}
	p.logger.Info("Sample data created", zap.String("file", path))
	return nil
}

// formatDate 可选日期列的显示值，空值输出空串
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dates.Format(*t)
}
