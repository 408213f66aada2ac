package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// 勤怠セルの値は取り込み元によって揺れる。文字列の時刻・日付のほか、
// Excel のセル書式が外れてシリアル値（日数・日内小数）の文字列で届くことがある。
// ここの関数はすべて寛容で、解釈できない値は (ゼロ値, false) を返すだけにする。

// dateLayouts 日付セルで実際に見かける表記。上から順に試す。
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006年1月2日",
	"2006-1-2 15:04:05",
	"1/2/2006",
	"1/2/06",
	"01-02-06", // Excel 既定の短い日付書式 (m-d-yy)
}

// clockLayouts 出勤・退勤セルで実際に見かける表記
var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

// ParseDate 日付セルを解釈する。文字列日付と Excel 日付シリアルの両方を受ける。
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// 日付シリアル。素の年数などをシリアル扱いしないよう現実的な範囲に限る。
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial >= 20000 && serial <= 80000 {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return midnight(t), true
			}
		}
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

// ParseClock 時刻セルを 0時からの経過時間として解釈する。
// "9:00" のような文字列と、"0.375" のような日内小数の両方を受ける。
func ParseClock(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// 日内小数 (0.375 = 09:00)。秒に丸めて浮動小数の誤差を吸収する。
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < 0 || v >= 1 {
			return 0, false
		}
		seconds := math.Round(v * 86400)
		return time.Duration(seconds) * time.Second, true
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

// CombineDateClock 日付の0時に時刻を足した絶対時刻を返す
func CombineDateClock(date time.Time, clock time.Duration) time.Time {
	return midnight(date).Add(clock)
}

// midnight 時刻成分を落として日付だけにする。タイムゾーンは UTC に固定し、
// 勤務時間の差分計算が環境のローカル時間に依存しないようにする。
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
