package models

import (
	"sync/atomic"
	"time"
)

var lastMillis atomic.Int64

// NowMillis returns wall-clock milliseconds that never go backwards within the process,
// even if the system clock is stepped back.
func NowMillis() int64 {
	for {
		prev := lastMillis.Load()
		now := time.Now().UnixMilli()
		if now < prev {
			now = prev
		}
		if lastMillis.CompareAndSwap(prev, now) {
			return now
		}
	}
}
