package payroll

import (
	"math"
	"time"

	"shiftpay/internal/model"
	"shiftpay/internal/parser"
)

// Calculator 勤務時間・時給・給与の計算器。
// 処理は行単位で完結し、セルが解釈できない行は派生項目を nil のままにして先へ進む。
type Calculator struct {
	wages model.WageTable
}

// NewCalculator 時給マスタ付きの計算器を作る
func NewCalculator(wages model.WageTable) *Calculator {
	return &Calculator{wages: wages}
}

// Stats 1回の Process の結果統計
type Stats struct {
	ParseFailures int
	MissingWages  int
}

// Process 勤怠行の並びに派生項目を書き込む
func (c *Calculator) Process(records []*model.AttendanceRecord) Stats {
	var st Stats
	for _, r := range records {
		c.process(r)
		if r.WorkedHours == nil {
			st.ParseFailures++
		} else if r.HourlyWage == nil {
			st.MissingWages++
		}
	}
	return st
}

func (c *Calculator) process(r *model.AttendanceRecord) {
	if d, ok := parser.ParseDate(r.DateText); ok {
		r.Date = &d
	}

	in := resolveClock(r.Date, r.ClockIn)
	out := resolveClock(r.Date, r.ClockOut)

	// 日跨ぎは一度だけ補正する。24時間を超える勤務は一行に収まらない前提で対象外。
	if in != nil && out != nil && out.Before(*in) {
		shifted := out.Add(24 * time.Hour)
		out = &shifted
	}
	r.ClockInAt = in
	r.ClockOutAt = out

	r.WorkedHours = workedHours(in, out)
	if r.WorkedHours == nil {
		// 時刻が出せない行は時給・給与も未定義のまま流す
		return
	}

	r.HourlyWage = c.wages.Lookup(r.Name)
	if r.HourlyWage == nil {
		return
	}

	// 給与は追加の丸めをしない（勤務時間側の2桁丸めのみ）
	pay := *r.WorkedHours * *r.HourlyWage
	r.Pay = &pay
}

// resolveClock 日付と時刻セルを合成する。どちらかが解釈できなければ nil。
func resolveClock(date *time.Time, text string) *time.Time {
	if date == nil {
		return nil
	}
	clock, ok := parser.ParseClock(text)
	if !ok {
		return nil
	}
	at := parser.CombineDateClock(*date, clock)
	return &at
}

// workedHours (退勤 - 出勤) を時間単位にして2桁に丸める
func workedHours(in, out *time.Time) *float64 {
	if in == nil || out == nil {
		return nil
	}
	h := round2(out.Sub(*in).Seconds() / 3600)
	return &h
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
