package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"shiftpay/internal/config"
	"shiftpay/internal/model"
	"shiftpay/internal/service/excel"
	"shiftpay/internal/service/payroll"
)

// Coordinator 集計の取りまとめ役。
// 勤怠ブックを開き、指定された月を指定された順に読み込んで計算し、1つの集計に連結する。
type Coordinator struct {
	cfg  *config.AppConfig
	calc *payroll.Calculator

	// Logf 進捗の出力先。nil なら無出力。
	Logf func(format string, args ...interface{})
}

// NewCoordinator 設定から取りまとめ役を作る
func NewCoordinator(cfg *config.AppConfig) *Coordinator {
	return &Coordinator{
		cfg:  cfg,
		calc: payroll.NewCalculator(model.WageTable(cfg.Wages)),
	}
}

// Run 全対象月を処理して集計結果と実行統計を返す。
// 要求された月のシートが1枚でも欠けていれば、何も出力せずにエラーで打ち切る。
func (c *Coordinator) Run() (*model.ConsolidatedReport, *model.RunReport, error) {
	start := time.Now()

	path, err := excel.FindInputBook(config.ResolveDir(c.cfg.Input.Dir), c.cfg.Payroll.Year)
	if err != nil {
		return nil, nil, err
	}

	wb, err := excel.OpenWorkbook(path)
	if err != nil {
		return nil, nil, err
	}
	c.logf("勤怠ブック: %s (シート %d 枚)", path, len(wb.SheetNames()))

	months := c.cfg.Payroll.Months

	// 先に全シートの存在を確認する。処理途中で欠落に気付くより前に打ち切るため。
	for _, m := range months {
		name := excel.MonthSheetName(m)
		if !wb.HasSheet(name) {
			return nil, nil, fmt.Errorf("%d月のシート %q がありません: %w", m, name, excel.ErrSheetNotFound)
		}
	}

	report := &model.ConsolidatedReport{
		Year:   c.cfg.Payroll.Year,
		Months: months,
	}
	run := &model.RunReport{
		RunID:      uuid.New().String(),
		SourcePath: path,
	}

	for _, m := range months {
		batch, summary, err := c.loadMonth(wb, m)
		if err != nil {
			return nil, nil, err
		}
		report.Records = append(report.Records, batch.Records...)
		run.Add(summary)
	}

	run.Duration = time.Since(start)
	return report, run, nil
}

// loadMonth 1か月分のシートを読み込み、派生項目を計算して月番号を付ける
func (c *Coordinator) loadMonth(wb *excel.Workbook, month int) (*model.MonthlyBatch, model.MonthSummary, error) {
	name := excel.MonthSheetName(month)

	rows, err := wb.Rows(name)
	if err != nil {
		return nil, model.MonthSummary{}, err
	}

	records, err := excel.ParseAttendance(rows)
	if err != nil {
		return nil, model.MonthSummary{}, fmt.Errorf("シート %q の読み取りに失敗: %w", name, err)
	}

	stats := c.calc.Process(records)
	for _, r := range records {
		r.Month = month
	}

	summary := model.MonthSummary{
		Month:         month,
		SheetName:     name,
		Rows:          len(records),
		ParseFailures: stats.ParseFailures,
		MissingWages:  stats.MissingWages,
	}
	c.logf("%s: %d行 (解析失敗 %d, 時給未登録 %d)", name, summary.Rows, summary.ParseFailures, summary.MissingWages)

	return &model.MonthlyBatch{
		Month:     month,
		SheetName: name,
		Records:   records,
	}, summary, nil
}

func (c *Coordinator) logf(format string, args ...interface{}) {
	if c.Logf == nil {
		return
	}
	c.Logf(format, args...)
}
