package ratelimit

import (
	"testing"
	"time"
)

func TestWindowKeySameMinute(t *testing.T) {
	l := NewRedisLimiter(nil, "chat_rl", 12, nil)

	base := time.Date(2026, 3, 1, 10, 30, 5, 0, time.UTC)
	later := base.Add(40 * time.Second)

	if l.WindowKey("abc", base) != l.WindowKey("abc", later) {
		t.Fatal("calls within the same minute must share a window key")
	}
}

func TestWindowKeyRollsOver(t *testing.T) {
	l := NewRedisLimiter(nil, "chat_rl", 12, nil)

	base := time.Date(2026, 3, 1, 10, 30, 59, 0, time.UTC)
	next := base.Add(2 * time.Second)

	if l.WindowKey("abc", base) == l.WindowKey("abc", next) {
		t.Fatal("crossing a minute boundary must open a new window")
	}
}

func TestWindowKeySeparatesCallers(t *testing.T) {
	l := NewRedisLimiter(nil, "chat_rl", 12, nil)
	now := time.Now()

	if l.WindowKey("guest-a", now) == l.WindowKey("guest-b", now) {
		t.Fatal("distinct callers must not share a window key")
	}
}
