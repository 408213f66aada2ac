package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"shiftpay/internal/model"
)

// reportHeaders 出力ブックの固定列。この並びのまま書き出す。
var reportHeaders = []string{"日付", "名前", "出勤", "退勤", "勤務時間", "時給", "給与", "対象月"}

// Exporter 集計結果のブック書き出し
type Exporter struct{}

// NewExporter 書き出し器を作る
func NewExporter() *Exporter {
	return &Exporter{}
}

// OutputPath 出力ブックのパスを組み立てる。ファイル名に年と最初・最後の対象月を埋め込む。
func OutputPath(dir string, year int, months []int) string {
	first := months[0]
	last := months[len(months)-1]
	return filepath.Join(dir, fmt.Sprintf("勤怠管理_勤務時間付き_%d_%d-%d月.xlsx", year, first, last))
}

// Build 集計結果を1シートのブックに組み立てる
func (e *Exporter) Build(report *model.ConsolidatedReport) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("ヘッダーの書き込みに失敗: %w", err)
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(sheet, 1, 1, headerStyle)

	for i, r := range report.Records {
		row := i + 2

		// 日付は解釈できた行だけ整形し、それ以外は生値のまま残す
		if r.Date != nil {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Date.Format("2006-01-02"))
		} else if r.DateText != "" {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.DateText)
		}
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.ClockIn)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.ClockOut)

		// 派生項目は nil なら空セルのままにする
		if r.WorkedHours != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *r.WorkedHours)
		}
		if r.HourlyWage != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), *r.HourlyWage)
		}
		if r.Pay != nil {
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), *r.Pay)
		}
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Month)
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "G", 10)
	f.SetColWidth(sheet, "H", "H", 8)

	return f, nil
}

// Write ブックを書き出す。一時ファイルに保存してから rename で置き換えるので、
// 途中で失敗しても出力先に中途半端なファイルは残らない。既存ファイルは黙って上書きする。
func (e *Exporter) Write(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()[:8]))

	if err := f.SaveAs(tmpPath); err != nil {
		return fmt.Errorf("出力ブックの保存に失敗: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("出力ブックの配置に失敗: %w", err)
	}
	return nil
}
