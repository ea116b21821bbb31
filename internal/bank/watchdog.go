// internal/bank/watchdog.go

package bank

import (
	"context"
	"time"
)

// RunWatchdog 以固定間隔輪詢 CheckInactivity，直到 ctx 結束。
// 精度不重要（人類尺度的逾時），因此用簡單的 ticker 即可。
func (s *Session) RunWatchdog(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.CheckInactivity()
		}
	}
}
