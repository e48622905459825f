package registration

import (
	"fmt"
	"time"
)

// startDateLayouts は開始日として受け付ける日付フォーマット。
var startDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseStartDate は開始日文字列を日付として解釈する。
// "2006-01-02" 形式とRFC3339形式を受け付ける。
func ParseStartDate(s string) (time.Time, error) {
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("開始日を日付として解釈できません: %q", s)
}

// EndOfDay はその日の終端（23:59:59.999）を返す。
// 請求期間が開始日全体をカバーするよう、月計算の前に正規化する。
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// AddMonths はカレンダー月単位の加算を行う。
// 加算先の月に同じ日が存在しない場合は月末日に丸める
// （例: 1月31日 + 1ヶ月 = 2月28日または29日）。
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	targetYear, targetMonth := normalizeMonth(year, int(month)+months)

	last := daysInMonth(targetYear, targetMonth)
	if day > last {
		day = last
	}

	return time.Date(targetYear, targetMonth, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// normalizeMonth は月のオーバーフロー/アンダーフローを年に繰り上げ/繰り下げる。
func normalizeMonth(year, month int) (int, time.Month) {
	year += (month - 1) / 12
	month = (month-1)%12 + 1
	if month <= 0 {
		month += 12
		year--
	}
	return year, time.Month(month)
}

// daysInMonth は指定年月の日数を返す。
func daysInMonth(year int, month time.Month) int {
	// 翌月0日 = 当月末日
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
