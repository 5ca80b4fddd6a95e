package cache

import (
	"time"
)

// TimeUntilNextHour は次に指定の時刻（時・ローカルタイム）を迎えるまでの期間を返します。
// カタログの取り込みが毎日その時刻に走る前提で、キャッシュTTLの上限に使います。
func TimeUntilNextHour(hour int) time.Duration {
	now := time.Now()

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())

	// 今日の指定時刻が既に過ぎている場合は翌日を使用
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}
