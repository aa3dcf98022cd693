package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/amlguard/internal/domain"
)

func historyOf(amounts []int64, interval time.Duration) []domain.Transaction {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]domain.Transaction, 0, len(amounts))
	for i, a := range amounts {
		out = append(out, domain.Transaction{
			FromAccount: "acc",
			ToAccount:   "other",
			Amount:      decimal.NewFromInt(a),
			Timestamp:   base.Add(time.Duration(i) * interval),
		})
	}
	return out
}

func TestDeriveWindowFeatures_Empty(t *testing.T) {
	f := DeriveWindowFeatures(nil)

	if f.TxCount != 0 || f.TxCountRecent != 0 {
		t.Errorf("counts = %d/%d, want 0/0", f.TxCount, f.TxCountRecent)
	}
	if f.AvgAmount != 0 {
		t.Errorf("AvgAmount = %v, want 0", f.AvgAmount)
	}
	if f.VelocityScore != 0.5 {
		t.Errorf("VelocityScore = %v, want placeholder 0.5", f.VelocityScore)
	}
}

func TestDeriveWindowFeatures_CountsAndAverage(t *testing.T) {
	f := DeriveWindowFeatures(historyOf([]int64{100, 200, 300}, time.Minute))

	if f.TxCount != 3 {
		t.Errorf("TxCount = %d, want 3", f.TxCount)
	}
	if f.AvgAmount != 200 {
		t.Errorf("AvgAmount = %v, want 200", f.AvgAmount)
	}
}

func TestDeriveWindowFeatures_Velocity(t *testing.T) {
	slow := DeriveWindowFeatures(historyOf([]int64{100, 100, 100}, 6*time.Hour))
	fast := DeriveWindowFeatures(historyOf([]int64{100, 100, 100}, time.Second))

	if slow.VelocityScore >= fast.VelocityScore {
		t.Errorf("slow velocity %v not below fast velocity %v", slow.VelocityScore, fast.VelocityScore)
	}
	if fast.VelocityScore <= 0.9 {
		t.Errorf("burst velocity = %v, want > 0.9", fast.VelocityScore)
	}

	single := DeriveWindowFeatures(historyOf([]int64{100}, time.Minute))
	if single.VelocityScore != 0.5 {
		t.Errorf("single-entry velocity = %v, want placeholder 0.5", single.VelocityScore)
	}
}

func TestDeriveWindowFeatures_ZeroSpanBurst(t *testing.T) {
	f := DeriveWindowFeatures(historyOf([]int64{100, 100}, 0))

	if f.VelocityScore != 1 {
		t.Errorf("VelocityScore = %v, want 1 for zero span", f.VelocityScore)
	}
}
