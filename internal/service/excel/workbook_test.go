package excel_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"shiftpay/internal/service/excel"
)

func TestMonthSheetName(t *testing.T) {
	t.Parallel()

	if got, want := excel.MonthSheetName(1), "1月"; got != want {
		t.Fatalf("MonthSheetName(1)=%q, want %q", got, want)
	}
	if got, want := excel.MonthSheetName(12), "12月"; got != want {
		t.Fatalf("MonthSheetName(12)=%q, want %q", got, want)
	}
}

func TestFindInputBook_PrefersModernFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"勤怠管理シート2026.xlsx", "勤怠管理シート2026.xls"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	path, err := excel.FindInputBook(dir, 2026)
	if err != nil {
		t.Fatalf("FindInputBook failed: %v", err)
	}
	if want := filepath.Join(dir, "勤怠管理シート2026.xlsx"); path != want {
		t.Fatalf("path=%q, want %q", path, want)
	}
}

func TestFindInputBook_FallsBackToLegacy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "勤怠管理シート2026.xls"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	path, err := excel.FindInputBook(dir, 2026)
	if err != nil {
		t.Fatalf("FindInputBook failed: %v", err)
	}
	if want := filepath.Join(dir, "勤怠管理シート2026.xls"); path != want {
		t.Fatalf("path=%q, want %q", path, want)
	}
}

func TestFindInputBook_Missing(t *testing.T) {
	t.Parallel()

	if _, err := excel.FindInputBook(t.TempDir(), 2026); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}

func TestOpenWorkbook_ReadsSheets(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, t.TempDir(), "勤怠管理シート2026.xlsx", map[string][][]interface{}{
		"1月": {
			{"日付", "名前", "出勤", "退勤"},
			{"2026-01-05", "田中", "9:00", "17:30"},
			{"2026-01-06", "鈴木", "22:00", "06:00"},
		},
	})

	wb, err := excel.OpenWorkbook(path)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}

	if !wb.HasSheet("1月") {
		t.Fatalf("HasSheet(1月)=false, sheets=%v", wb.SheetNames())
	}

	rows, err := wb.Rows("1月")
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d, want 3", len(rows))
	}
	if got, want := rows[1][1], "田中"; got != want {
		t.Fatalf("rows[1][1]=%q, want %q", got, want)
	}
	if got, want := rows[2][3], "06:00"; got != want {
		t.Fatalf("rows[2][3]=%q, want %q", got, want)
	}
}

func TestOpenWorkbook_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := excel.OpenWorkbook(filepath.Join(t.TempDir(), "勤怠管理シート2026.xlsx"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestOpenWorkbook_LegacyExtensionInvalidData(t *testing.T) {
	t.Parallel()

	// .xls は旧形式リーダーに回る。中身が壊れていればそのままエラー。
	path := filepath.Join(t.TempDir(), "勤怠管理シート2026.xls")
	if err := os.WriteFile(path, []byte("これはxlsではない"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := excel.OpenWorkbook(path); err == nil {
		t.Fatalf("expected error for broken xls")
	}
}

func TestRows_MissingSheet(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, t.TempDir(), "勤怠管理シート2026.xlsx", map[string][][]interface{}{
		"1月": {{"日付", "名前", "出勤", "退勤"}},
	})

	wb, err := excel.OpenWorkbook(path)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}

	_, err = wb.Rows("9月")
	if !errors.Is(err, excel.ErrSheetNotFound) {
		t.Fatalf("err=%v, want ErrSheetNotFound", err)
	}
}

func TestParseAttendance_HeaderOrderIndependent(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"名前", "退勤", "日付", "出勤"},
		{"田中", "17:30", "2026-01-05", "9:00"},
	}

	records, err := excel.ParseAttendance(rows)
	if err != nil {
		t.Fatalf("ParseAttendance failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records=%d, want 1", len(records))
	}
	r := records[0]
	if r.DateText != "2026-01-05" || r.Name != "田中" || r.ClockIn != "9:00" || r.ClockOut != "17:30" {
		t.Fatalf("unexpected record: %+v", r)
	}
}

func TestParseAttendance_MissingColumn(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"日付", "名前", "出勤"},
		{"2026-01-05", "田中", "9:00"},
	}

	if _, err := excel.ParseAttendance(rows); err == nil {
		t.Fatalf("expected error for missing 退勤 column")
	}
}

func TestParseAttendance_SkipsBlankRows(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"日付", "名前", "出勤", "退勤"},
		{"2026-01-05", "田中", "9:00", "17:30"},
		{"", "", "", ""},
		nil,
		{"2026-01-06", "鈴木", "10:00", "18:00"},
	}

	records, err := excel.ParseAttendance(rows)
	if err != nil {
		t.Fatalf("ParseAttendance failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records=%d, want 2", len(records))
	}
	if records[1].Name != "鈴木" {
		t.Fatalf("records[1].Name=%q, want 鈴木", records[1].Name)
	}
}

func TestParseAttendance_KeepsShortRows(t *testing.T) {
	t.Parallel()

	// 末尾セルが欠けた行は空文字で埋めて残す（退勤未入力の行など）
	rows := [][]string{
		{"日付", "名前", "出勤", "退勤"},
		{"2026-01-05", "田中", "9:00"},
	}

	records, err := excel.ParseAttendance(rows)
	if err != nil {
		t.Fatalf("ParseAttendance failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records=%d, want 1", len(records))
	}
	if records[0].ClockOut != "" {
		t.Fatalf("ClockOut=%q, want empty", records[0].ClockOut)
	}
}

func writeWorkbook(t *testing.T, dir, name string, sheets map[string][][]interface{}) string {
	t.Helper()

	wb := excelize.NewFile()
	defaultSheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	for sheetName, rows := range sheets {
		if _, err := wb.NewSheet(sheetName); err != nil {
			t.Fatalf("NewSheet %s failed: %v", sheetName, err)
		}
		for i := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := wb.SetSheetRow(sheetName, cell, &rows[i]); err != nil {
				t.Fatalf("SetSheetRow %s failed: %v", sheetName, err)
			}
		}
	}
	if defaultSheet != "" {
		_ = wb.DeleteSheet(defaultSheet)
	}

	path := filepath.Join(dir, name)
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}
