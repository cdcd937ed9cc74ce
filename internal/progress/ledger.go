// Package progress は生徒のストリークと出題履歴を扱う純粋関数群。
// I/O は行わない。永続化は呼び出し側 (service) の責務。
package progress

import (
	"fmt"
	"maps"
	"time"

	"cloud.google.com/go/civil"
)

// Progress は1人の生徒の進捗スナップショット
type Progress struct {
	Streak int
	// ゼロ値は未設定
	LastStreakUpdate civil.Date
	WeeklyCalendar   map[civil.Date]bool
	ShownQuestionIDs []string
}

// Week は日曜 (0) から土曜 (6) までの表示用カレンダー
type Week [7]bool

func (p Progress) clone() Progress {
	out := p
	out.WeeklyCalendar = maps.Clone(p.WeeklyCalendar)
	if out.WeeklyCalendar == nil {
		out.WeeklyCalendar = map[civil.Date]bool{}
	}
	out.ShownQuestionIDs = append([]string(nil), p.ShownQuestionIDs...)
	return out
}

// ObserveLogin は日付の変わり目を検出したらストリークを 0 に戻す。
// カレンダーは消さない。同じ日に何度呼んでも結果は変わらない。
func ObserveLogin(p Progress, today civil.Date) Progress {
	out := p.clone()
	if !p.LastStreakUpdate.IsZero() && p.LastStreakUpdate != today {
		out.Streak = 0
		out.LastStreakUpdate = today
	}
	return out
}

// RecordAnswer は回答結果をストリークとカレンダーに反映する。
// 不正解で当日の true は消えない。週の開始より前のエントリは捨てる。
func RecordAnswer(p Progress, today civil.Date, correct bool) Progress {
	out := p.clone()
	if correct {
		out.Streak++
	} else {
		out.Streak = 0
	}
	out.LastStreakUpdate = today
	out.WeeklyCalendar[today] = out.WeeklyCalendar[today] || correct
	out.WeeklyCalendar = PruneCalendar(out.WeeklyCalendar, today)
	return out
}

// RefreshWeek は [StartOfWeek(today), today] のエントリだけを使って Week を組み立てる
func RefreshWeek(p Progress, today civil.Date) Week {
	var w Week
	start := StartOfWeek(today)
	for d, marked := range p.WeeklyCalendar {
		if !marked || d.Before(start) || d.After(today) {
			continue
		}
		w[weekday(d)] = true
	}
	return w
}

// StartOfWeek は today 以前で直近の日曜日
func StartOfWeek(today civil.Date) civil.Date {
	return today.AddDays(-int(weekday(today)))
}

// PruneCalendar は週の開始より前の日付を取り除いたコピーを返す
func PruneCalendar(cal map[civil.Date]bool, today civil.Date) map[civil.Date]bool {
	start := StartOfWeek(today)
	out := make(map[civil.Date]bool, len(cal))
	for d, v := range cal {
		if d.Before(start) {
			continue
		}
		out[d] = v
	}
	return out
}

// Today は loc における現在の日付
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(now.In(loc))
}

// Message はダッシュボードに表示する励ましの一言
func Message(streak int) string {
	switch {
	case streak <= 0:
		return "Start your streak by answering correctly!"
	case streak == 1:
		return "Great start! Keep going!"
	default:
		return fmt.Sprintf("You're on fire! %d days and counting!", streak)
	}
}

var quotes = []string{
	"Education is not preparation for life; education is life itself.",
	"The more that you read, the more things you will know.",
	"Learning is a treasure that will follow its owner everywhere.",
	"Knowledge is power. Information is liberating.",
	"The beautiful thing about learning is that no one can take it away from you.",
}

// Quote はダッシュボードの一言。日付ごとに順番に切り替わる
func Quote(today civil.Date) string {
	n := today.DaysSince(civil.Date{Year: 1970, Month: time.January, Day: 1}) % len(quotes)
	if n < 0 {
		n += len(quotes)
	}
	return quotes[n]
}

func weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}
