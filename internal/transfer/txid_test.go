package transfer

import "testing"

func TestTransactionIDUniqueness(t *testing.T) {
	const n = 10_000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		id := newTransactionID()
		if id == "" {
			t.Fatal("empty transaction id")
		}
		if seen[id] {
			t.Fatalf("collision after %d ids: %s", i, id)
		}
		seen[id] = true
	}
}
