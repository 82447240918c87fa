package fallback

import "testing"

func TestPickAlwaysFromPool(t *testing.T) {
	messages := []string{"a", "b", "c"}
	pool := NewPool(messages, 42)

	allowed := map[string]bool{"a": true, "b": true, "c": true}
	for i := 0; i < 100; i++ {
		got := pool.Pick()
		if !allowed[got] {
			t.Fatalf("picked message outside pool: %q", got)
		}
	}
}

func TestPickCoversWholePool(t *testing.T) {
	messages := []string{"a", "b", "c"}
	pool := NewPool(messages, 1)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[pool.Pick()] = true
	}
	if len(seen) != len(messages) {
		t.Fatalf("expected all %d messages to appear, saw %d", len(messages), len(seen))
	}
}

func TestPickEmptyPool(t *testing.T) {
	pool := NewPool(nil, 7)

	got := pool.Pick()
	if got == "" {
		t.Fatal("empty pool must still yield a notice")
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	pool := NewPool([]string{"a", "b"}, 3)

	out := pool.Messages()
	out[0] = "mutated"

	if pool.Pick() == "mutated" && pool.Pick() == "mutated" {
		t.Fatal("Messages must not expose internal slice")
	}
}
