package progress

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("id-%03d", i)
	}
	return out
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(`Who wrote "Hamlet"?`)

	assert.Len(t, a, 20)
	// 復元済みの文をそのまま使う。エンティティを含む文は別の問題
	assert.NotEqual(t, Fingerprint("What does &amp; mean?"), Fingerprint("What does & mean?"))
	assert.NotEqual(t, a, Fingerprint("Who wrote Macbeth?"))
	assert.Equal(t, Fingerprint("same"), Fingerprint("same"))
}

func TestHistory_IsNovel(t *testing.T) {
	h := DefaultHistory
	assert.True(t, h.IsNovel(nil, "a"))
	assert.True(t, h.IsNovel([]string{"b"}, "a"))
	assert.False(t, h.IsNovel([]string{"b", "a"}, "a"))
}

func TestHistory_Record(t *testing.T) {
	h := DefaultHistory

	t.Run("正常系: 新しい id は末尾に追加", func(t *testing.T) {
		in := ids(5)
		got := h.Record(in, "new")
		require.Len(t, got, 6)
		assert.Equal(t, in, got[:5])
		assert.Equal(t, "new", got[5])
	})

	t.Run("正常系: 重複は変化なし", func(t *testing.T) {
		in := ids(5)
		got := h.Record(in, "id-002")
		assert.Equal(t, in, got)
	})

	t.Run("正常系: 99件から100件、101件目でリセット", func(t *testing.T) {
		got := h.Record(ids(99), "id-100")
		require.Len(t, got, 100)

		got = h.Record(got, "id-101")
		assert.Equal(t, []string{"id-101"}, got)
	})

	t.Run("正常系: 上限では重複でもリセット", func(t *testing.T) {
		got := h.Record(ids(100), "id-000")
		assert.Equal(t, []string{"id-000"}, got)
	})
}

func TestHistory_RecordEvictOldest(t *testing.T) {
	h := History{Limit: 3, Policy: EvictOldest}

	got := h.Record([]string{"a", "b", "c"}, "d")
	assert.Equal(t, []string{"b", "c", "d"}, got)

	got = h.Record(got, "c")
	assert.Equal(t, []string{"b", "c", "d"}, got)
}

func TestParseOverflowPolicy(t *testing.T) {
	p, err := ParseOverflowPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ResetOnOverflow, p)

	p, err = ParseOverflowPolicy("evict_oldest")
	require.NoError(t, err)
	assert.Equal(t, EvictOldest, p)
	assert.Equal(t, "evict_oldest", p.String())

	_, err = ParseOverflowPolicy("lru")
	assert.Error(t, err)
}
