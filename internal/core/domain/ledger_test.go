package domain

import (
	"math"
	"testing"
)

func TestSplit_SumsToAmount(t *testing.T) {
	for _, amount := range []float64{0.01, 1, 99.99, 598, 1234.56, 1e6} {
		owner, platform := Split(amount)
		if math.Abs(owner+platform-amount) > 1e-9 {
			t.Fatalf("split of %v does not add up: %v + %v", amount, owner, platform)
		}
		if math.Abs(owner/amount-OwnerShareRatio) > 1e-9 {
			t.Fatalf("owner ratio for %v = %v", amount, owner/amount)
		}
	}
}

func TestRound2(t *testing.T) {
	owner, platform := Split(598)
	if Round2(owner) != 418.6 {
		t.Fatalf("expected 418.6, got %v", Round2(owner))
	}
	if Round2(platform) != 179.4 {
		t.Fatalf("expected 179.4, got %v", Round2(platform))
	}
}

func TestLedgerEntry_RevenueContribution(t *testing.T) {
	entries := []LedgerEntry{
		&Booking{Total: 598},
		&Deposit{USD: 100, PKR: 27850},
	}
	var sum float64
	for i, e := range entries {
		e.SetSequence(i + 1)
		if e.Sequence() != i+1 {
			t.Fatalf("sequence not stored on %s", e.Kind())
		}
		sum += e.RevenueContribution()
	}
	if sum != 698 {
		t.Fatalf("expected 698, got %v", sum)
	}
	if entries[0].Kind() != KindBooking || entries[1].Kind() != KindDeposit {
		t.Fatalf("unexpected kinds")
	}
}
