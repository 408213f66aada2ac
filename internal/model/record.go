package model

import "time"

// AttendanceRecord 勤怠1行分のデータモデル。
// 入力セルの生値と、計算で埋まる派生項目を併せて持つ。
// 派生項目はポインタで表し、nil は「計算不能（セル不正・時給未登録）」を意味する。
type AttendanceRecord struct {
	// 入力セルの生値（出力ブックにはこのまま転記する）
	DateText string // 日付
	Name     string // 名前
	ClockIn  string // 出勤
	ClockOut string // 退勤

	// 正規化済みの時刻
	Date       *time.Time // 解析済みの日付（解析失敗時 nil）
	ClockInAt  *time.Time // 出勤時刻（日付と合成済み）
	ClockOutAt *time.Time // 退勤時刻（日跨ぎ補正後）

	// 派生項目
	WorkedHours *float64 // 勤務時間（時間単位、小数2桁）
	HourlyWage  *float64 // 時給
	Pay         *float64 // 給与 = 勤務時間 × 時給

	// 対象月 (1-12)。どのシート由来かを出力に残す。
	Month int
}

// WageTable 名前→時給の静的マスタ
type WageTable map[string]float64

// Lookup 名前から時給を引く。未登録なら nil（エラーにはしない）。
func (t WageTable) Lookup(name string) *float64 {
	if rate, ok := t[name]; ok {
		return &rate
	}
	return nil
}
