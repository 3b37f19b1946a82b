package postgresadapter

import (
	"math"
	"testing"
)

func TestStoredAmountBounds(t *testing.T) {
	for _, amount := range []uint64{0, 1, math.MaxInt64} {
		got, err := storedAmount(amount)
		if err != nil {
			t.Fatalf("amount %d must be storable: %v", amount, err)
		}
		if got != int64(amount) {
			t.Fatalf("amount %d stored as %d", amount, got)
		}
	}

	for _, amount := range []uint64{math.MaxInt64 + 1, math.MaxUint64} {
		if _, err := storedAmount(amount); err == nil {
			t.Fatalf("amount %d must be rejected, not sign-flipped", amount)
		}
	}
}
