package progress

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"slices"
	"strings"
)

const (
	DefaultHistoryLimit = 100
	fingerprintLength   = 20
)

// OverflowPolicy は履歴が上限に達したときの挙動
type OverflowPolicy int

const (
	// ResetOnOverflow は履歴を新しい id だけにする
	ResetOnOverflow OverflowPolicy = iota
	// EvictOldest は最も古い id を捨てる
	EvictOldest
)

func (p OverflowPolicy) String() string {
	switch p {
	case ResetOnOverflow:
		return "reset"
	case EvictOldest:
		return "evict_oldest"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy は設定値を解釈する。空文字は reset。
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reset":
		return ResetOnOverflow, nil
	case "evict_oldest", "evict-oldest":
		return EvictOldest, nil
	default:
		return ResetOnOverflow, fmt.Errorf("unknown history overflow policy %q", s)
	}
}

// History は出題済み id の上限付き履歴 (古い順)
type History struct {
	Limit  int
	Policy OverflowPolicy
}

var DefaultHistory = History{Limit: DefaultHistoryLimit, Policy: ResetOnOverflow}

func (h History) limit() int {
	if h.Limit <= 0 {
		return DefaultHistoryLimit
	}
	return h.Limit
}

// IsNovel は id がまだ履歴にないかどうか
func (h History) IsNovel(ids []string, id string) bool {
	return !slices.Contains(ids, id)
}

// Record は id を履歴に追加したコピーを返す
func (h History) Record(ids []string, id string) []string {
	limit := h.limit()
	if h.Policy == ResetOnOverflow && len(ids) >= limit {
		return []string{id}
	}
	if slices.Contains(ids, id) {
		return slices.Clone(ids)
	}
	out := append(slices.Clone(ids), id)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Fingerprint は問題文から短い固定長 id を作る。エンティティの復元は呼び出し側で1回だけ行う。
func Fingerprint(questionText string) string {
	sum := sha256.Sum256([]byte(questionText))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:fingerprintLength]
}
