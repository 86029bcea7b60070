package utils

// PairKey builds the canonical key for an unordered user pair. Both orderings
// of the same two users produce the same key, which is what enforces the
// one-match-per-pair constraint at the storage layer.
func PairKey(user1, user2 string) string {
	if user1 > user2 {
		user1, user2 = user2, user1
	}
	return user1 + "#" + user2
}

// ThreadIDForMatch derives the chat thread ID of a match. Deterministic, so a
// create race between two participants converges on the same row.
func ThreadIDForMatch(matchID string) string {
	return "THREAD#" + matchID
}
