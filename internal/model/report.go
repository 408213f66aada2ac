package model

import "time"

// MonthlyBatch 1か月分のシートから読み出した勤怠行。行順はシート内の並びを保持する。
type MonthlyBatch struct {
	Month     int
	SheetName string
	Records   []*AttendanceRecord
}

// ConsolidatedReport 全対象月を指定順に連結した集計結果
type ConsolidatedReport struct {
	Year    int
	Months  []int // 指定された順序のまま
	Records []*AttendanceRecord
}

// MonthSummary 月別の処理結果
type MonthSummary struct {
	Month         int
	SheetName     string
	Rows          int
	ParseFailures int // 時刻が解釈できず勤務時間を出せなかった行数
	MissingWages  int // 時給マスタに名前が無かった行数
}

// RunReport 1回の実行の処理統計
type RunReport struct {
	RunID         string
	SourcePath    string
	Months        []MonthSummary
	TotalRows     int
	ParseFailures int
	MissingWages  int
	Duration      time.Duration
}

// Add 月別結果を積み上げる
func (r *RunReport) Add(s MonthSummary) {
	r.Months = append(r.Months, s)
	r.TotalRows += s.Rows
	r.ParseFailures += s.ParseFailures
	r.MissingWages += s.MissingWages
}
