package identity

import "testing"

func TestHashDeterministic(t *testing.T) {
	h := NewHasher("pepper")

	first := h.Hash("203.0.113.7")
	second := h.Hash("203.0.113.7")

	if first != second {
		t.Fatalf("same input should hash identically: %s != %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
}

func TestHashDistinctInputs(t *testing.T) {
	h := NewHasher("pepper")

	if h.Hash("203.0.113.7") == h.Hash("203.0.113.8") {
		t.Fatal("different addresses must not collide")
	}
}

func TestHashSaltChangesOutput(t *testing.T) {
	a := NewHasher("salt-a").Hash("203.0.113.7")
	b := NewHasher("salt-b").Hash("203.0.113.7")

	if a == b {
		t.Fatal("different salts must produce different hashes")
	}
}

func TestHashNeverEchoesInput(t *testing.T) {
	h := NewHasher("pepper")
	out := h.Hash("203.0.113.7")

	if out == "203.0.113.7" {
		t.Fatal("hash must not return the raw address")
	}
}
