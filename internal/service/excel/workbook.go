package excel

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound 要求された月のシートがブックに存在しない
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook 勤怠ブックの読み取り口。
// .xlsx と旧形式の .xls を同じ形（シート名 → 行列）に吸収する。
type Workbook struct {
	path   string
	sheets []string            // ブック内の並び順
	rows   map[string][][]string
}

// MonthSheetName 月番号から期待するシート名を組み立てる
func MonthSheetName(month int) string {
	return fmt.Sprintf("%d月", month)
}

// InputBookName 対象年の勤怠ブックのファイル名
func InputBookName(year int) string {
	return inputBookBase(year) + ".xlsx"
}

func inputBookBase(year int) string {
	return fmt.Sprintf("勤怠管理シート%d", year)
}

// FindInputBook ディレクトリから対象年の勤怠ブックを探す。
// .xlsx を優先し、無ければ旧形式の .xls も受ける。
func FindInputBook(dir string, year int) (string, error) {
	base := inputBookBase(year)
	for _, ext := range []string{".xlsx", ".xls"} {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("勤怠ブック %s.xlsx が %s にありません", base, dir)
}

// OpenWorkbook 勤怠ブックを開いて全シートを読み込む
func OpenWorkbook(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("勤怠ブックを開けません: %w", err)
	}
	return openWorkbook(bytes.NewReader(data), path)
}

// openWorkbook 拡張子でフォーマットを切り替える
func openWorkbook(r io.Reader, filename string) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xls":
		return openLegacyWorkbook(data, filename)
	default:
		return openModernWorkbook(data, filename)
	}
}

func openModernWorkbook(data []byte, filename string) (*Workbook, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("勤怠ブックの読み込みに失敗: %w", err)
	}
	defer func() { _ = file.Close() }()

	wb := &Workbook{
		path: filename,
		rows: make(map[string][][]string),
	}
	for _, name := range file.GetSheetList() {
		rows, err := file.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("シート %q の読み込みに失敗: %w", name, err)
		}
		wb.sheets = append(wb.sheets, name)
		wb.rows[name] = rows
	}
	return wb, nil
}

func openLegacyWorkbook(data []byte, filename string) (*Workbook, error) {
	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("勤怠ブック(.xls)の読み込みに失敗: %w", err)
	}

	wb := &Workbook{
		path: filename,
		rows: make(map[string][][]string),
	}
	for i := 0; i < book.NumSheets(); i++ {
		sheet := book.GetSheet(i)
		if sheet == nil {
			continue
		}
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for rowNo := 0; rowNo <= int(sheet.MaxRow); rowNo++ {
			row := sheet.Row(rowNo)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, 0, row.LastCol()+1)
			for col := 0; col <= row.LastCol(); col++ {
				cells = append(cells, row.Col(col))
			}
			rows = append(rows, cells)
		}
		wb.sheets = append(wb.sheets, sheet.Name)
		wb.rows[sheet.Name] = rows
	}
	return wb, nil
}

// Path 読み込んだファイルのパス
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames ブック内のシート名（元の並び順）
func (w *Workbook) SheetNames() []string {
	return w.sheets
}

// HasSheet 指定名のシートが存在するか
func (w *Workbook) HasSheet(name string) bool {
	_, ok := w.rows[name]
	return ok
}

// Rows 指定シートの全行を返す。存在しなければ ErrSheetNotFound。
func (w *Workbook) Rows(name string) ([][]string, error) {
	rows, ok := w.rows[name]
	if !ok {
		return nil, fmt.Errorf("シート %q がありません: %w", name, ErrSheetNotFound)
	}
	return rows, nil
}
