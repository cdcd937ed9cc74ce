package progress

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestObserveLogin(t *testing.T) {
	today := date(t, "2024-01-03")

	tests := []struct {
		name       string
		in         Progress
		wantStreak int
		wantLast   civil.Date
	}{
		{
			name:       "正常系: 日付が変わったらリセット",
			in:         Progress{Streak: 5, LastStreakUpdate: date(t, "2024-01-01")},
			wantStreak: 0,
			wantLast:   today,
		},
		{
			name:       "正常系: 同じ日なら変化なし",
			in:         Progress{Streak: 2, LastStreakUpdate: today},
			wantStreak: 2,
			wantLast:   today,
		},
		{
			name:       "正常系: 未設定なら変化なし",
			in:         Progress{},
			wantStreak: 0,
			wantLast:   civil.Date{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ObserveLogin(tt.in, today)
			assert.Equal(t, tt.wantStreak, got.Streak)
			assert.Equal(t, tt.wantLast, got.LastStreakUpdate)

			again := ObserveLogin(got, today)
			assert.Equal(t, got.Streak, again.Streak)
			assert.Equal(t, got.LastStreakUpdate, again.LastStreakUpdate)
			assert.Equal(t, got.WeeklyCalendar, again.WeeklyCalendar)
		})
	}
}

func TestObserveLogin_KeepsCalendar(t *testing.T) {
	mon := date(t, "2024-01-01")
	tue := date(t, "2024-01-02")
	in := Progress{Streak: 1, LastStreakUpdate: mon, WeeklyCalendar: map[civil.Date]bool{mon: true}}

	got := ObserveLogin(in, tue)

	assert.Equal(t, 0, got.Streak)
	assert.True(t, got.WeeklyCalendar[mon])
}

func TestRecordAnswer(t *testing.T) {
	t.Run("正常系: 正解でストリーク+1、当日が true", func(t *testing.T) {
		in := Progress{Streak: 3, LastStreakUpdate: date(t, "2024-01-01")}
		today := date(t, "2024-01-02")

		got := RecordAnswer(in, today, true)

		assert.Equal(t, 4, got.Streak)
		assert.Equal(t, today, got.LastStreakUpdate)
		assert.True(t, got.WeeklyCalendar[today])
	})

	t.Run("正常系: 不正解でストリーク0", func(t *testing.T) {
		for _, streak := range []int{0, 1, 7, 42} {
			got := RecordAnswer(Progress{Streak: streak}, date(t, "2024-01-02"), false)
			assert.Equal(t, 0, got.Streak)
		}
	})

	t.Run("正常系: 不正解でも当日の true は消えない", func(t *testing.T) {
		today := date(t, "2024-01-02")
		got := RecordAnswer(Progress{}, today, true)
		got = RecordAnswer(got, today, false)

		assert.Equal(t, 0, got.Streak)
		assert.True(t, got.WeeklyCalendar[today])
	})

	t.Run("正常系: 不正解のみの日は false", func(t *testing.T) {
		today := date(t, "2024-01-02")
		got := RecordAnswer(Progress{}, today, false)

		v, ok := got.WeeklyCalendar[today]
		assert.True(t, ok)
		assert.False(t, v)
	})

	t.Run("正常系: 先週のエントリは捨てられる", func(t *testing.T) {
		lastSat := date(t, "2024-01-06")
		sun := date(t, "2024-01-07")
		in := Progress{WeeklyCalendar: map[civil.Date]bool{lastSat: true}}

		got := RecordAnswer(in, sun, true)

		assert.Len(t, got.WeeklyCalendar, 1)
		assert.True(t, got.WeeklyCalendar[sun])
	})

	t.Run("正常系: 入力は変更されない", func(t *testing.T) {
		today := date(t, "2024-01-02")
		in := Progress{Streak: 1, WeeklyCalendar: map[civil.Date]bool{}}
		_ = RecordAnswer(in, today, true)

		assert.Equal(t, 1, in.Streak)
		assert.Empty(t, in.WeeklyCalendar)
	})
}

func TestDayGapScenario(t *testing.T) {
	in := Progress{Streak: 5, LastStreakUpdate: date(t, "2024-01-01")}
	today := date(t, "2024-01-03")

	got := RecordAnswer(ObserveLogin(in, today), today, true)

	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, today, got.LastStreakUpdate)
}

func TestStartOfWeek(t *testing.T) {
	// 2024-01-07 は日曜日
	assert.Equal(t, date(t, "2024-01-07"), StartOfWeek(date(t, "2024-01-07")))
	assert.Equal(t, date(t, "2024-01-07"), StartOfWeek(date(t, "2024-01-10")))
	assert.Equal(t, date(t, "2024-01-07"), StartOfWeek(date(t, "2024-01-13")))
	assert.Equal(t, date(t, "2023-12-31"), StartOfWeek(date(t, "2024-01-06")))
}

func TestRefreshWeek(t *testing.T) {
	today := date(t, "2024-01-10") // 水曜日
	in := Progress{WeeklyCalendar: map[civil.Date]bool{
		date(t, "2024-01-06"): true,  // 先週の土曜
		date(t, "2024-01-07"): true,  // 日
		date(t, "2024-01-08"): false, // 月
		date(t, "2024-01-10"): true,  // 水
		date(t, "2024-01-11"): true,  // 未来
	}}

	w := RefreshWeek(in, today)

	assert.Equal(t, Week{true, false, false, true, false, false, false}, w)
	assert.Len(t, in.WeeklyCalendar, 5)
}

func TestToday(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, date(t, "2024-01-02"), Today(now, ist))
	assert.Equal(t, date(t, "2024-01-01"), Today(now, nil))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Start your streak by answering correctly!", Message(0))
	assert.Equal(t, "Great start! Keep going!", Message(1))
	assert.Equal(t, "You're on fire! 2 days and counting!", Message(2))
	assert.Equal(t, "You're on fire! 3 days and counting!", Message(3))
}

func TestQuote(t *testing.T) {
	d := date(t, "2024-06-12")

	assert.Equal(t, Quote(d), Quote(d))
	assert.NotEqual(t, Quote(d), Quote(d.AddDays(1)))
	assert.Equal(t, Quote(d), Quote(d.AddDays(5)))
	assert.Equal(t, "Education is not preparation for life; education is life itself.", Quote(date(t, "1970-01-01")))
	assert.Equal(t, "The beautiful thing about learning is that no one can take it away from you.", Quote(date(t, "1969-12-31")))
}
