package utils

import "testing"

func TestPairKeyOrderIndependent(t *testing.T) {
	if PairKey("alice", "bob") != PairKey("bob", "alice") {
		t.Fatal("pair key must be identical for both orderings")
	}
	if PairKey("alice", "bob") != "alice#bob" {
		t.Fatalf("unexpected pair key: %s", PairKey("alice", "bob"))
	}
}

func TestPairKeyDistinctPairs(t *testing.T) {
	if PairKey("alice", "bob") == PairKey("alice", "carol") {
		t.Fatal("different pairs must produce different keys")
	}
}

func TestThreadIDForMatchDeterministic(t *testing.T) {
	if ThreadIDForMatch("m-1") != ThreadIDForMatch("m-1") {
		t.Fatal("thread ID must be deterministic")
	}
	if ThreadIDForMatch("m-1") == ThreadIDForMatch("m-2") {
		t.Fatal("different matches must map to different threads")
	}
}
