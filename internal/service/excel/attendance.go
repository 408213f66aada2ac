package excel

import (
	"errors"
	"fmt"
	"strings"

	"shiftpay/internal/model"
)

// 勤怠シートの必須列。見出しは完全一致（前後の空白のみ無視）、列順は問わない。
const (
	colDate     = "日付"
	colName     = "名前"
	colClockIn  = "出勤"
	colClockOut = "退勤"
)

// ParseAttendance シートの行列を勤怠行に読み替える。
// 1行目を見出しとして必須4列を探し、2行目以降を生値のまま取り込む。
// 完全な空白行は書式だけ残った行とみなして読み飛ばす。
func ParseAttendance(rows [][]string) ([]*model.AttendanceRecord, error) {
	if len(rows) == 0 {
		return nil, errors.New("ヘッダー行がありません")
	}

	header := rows[0]
	idxDate := findExactCol(header, colDate)
	idxName := findExactCol(header, colName)
	idxIn := findExactCol(header, colClockIn)
	idxOut := findExactCol(header, colClockOut)

	for _, req := range []struct {
		name string
		idx  int
	}{
		{colDate, idxDate},
		{colName, idxName},
		{colClockIn, idxIn},
		{colClockOut, idxOut},
	} {
		if req.idx < 0 {
			return nil, fmt.Errorf("必須列 %q が見つかりません", req.name)
		}
	}

	records := make([]*model.AttendanceRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := &model.AttendanceRecord{
			DateText: getCell(row, idxDate),
			Name:     getCell(row, idxName),
			ClockIn:  getCell(row, idxIn),
			ClockOut: getCell(row, idxOut),
		}
		if rec.DateText == "" && rec.Name == "" && rec.ClockIn == "" && rec.ClockOut == "" {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func findExactCol(headers []string, want string) int {
	for i, h := range headers {
		if strings.TrimSpace(h) == want {
			return i
		}
	}
	return -1
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
