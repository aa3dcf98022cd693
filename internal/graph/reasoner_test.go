package graph

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/amlguard/internal/domain"
)

func fact(from, to string, amount int64, ts time.Time) domain.Transaction {
	return domain.Transaction{
		FromAccount: from,
		ToAccount:   to,
		Amount:      decimal.NewFromInt(amount),
		Currency:    "USD",
		Timestamp:   ts,
		PaymentType: "Wire",
	}
}

func TestReasoner_UnseenAccount(t *testing.T) {
	r := NewReasoner(DefaultConfig())

	got := r.InferRisk("nobody")

	if got.Score != 0 {
		t.Errorf("Score = %v, want 0", got.Score)
	}
	if len(got.Reasons) != 0 {
		t.Errorf("Reasons = %v, want empty", got.Reasons)
	}
}

func TestReasoner_FanInRule(t *testing.T) {
	r := NewReasoner(DefaultConfig())
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		r.AddFact(fact(fmt.Sprintf("src-%d", i), "sink", 100, ts.Add(time.Duration(i)*time.Minute)))
	}

	got := r.InferRisk("sink")

	if got.Score < 0.2 {
		t.Errorf("Score = %v, want >= 0.2", got.Score)
	}
	if len(got.Reasons) == 0 || !strings.Contains(got.Reasons[0], "6") {
		t.Errorf("Reasons = %v, want first reason naming in-degree 6", got.Reasons)
	}
}

func TestReasoner_FanInBelowThreshold(t *testing.T) {
	r := NewReasoner(DefaultConfig())
	ts := time.Now()

	for i := 0; i < 5; i++ {
		r.AddFact(fact(fmt.Sprintf("src-%d", i), "sink", 100, ts))
	}

	if got := r.InferRisk("sink"); got.Score != 0 {
		t.Errorf("Score = %v, want 0 at threshold", got.Score)
	}
}

func TestReasoner_FanInMonotonic(t *testing.T) {
	r := NewReasoner(DefaultConfig())
	ts := time.Now()

	prev := 0.0
	for i := 0; i < 12; i++ {
		r.AddFact(fact(fmt.Sprintf("src-%d", i), "sink", 100, ts))
		score := r.InferRisk("sink").Score
		if score < prev {
			t.Fatalf("fan-in contribution decreased: %v -> %v after %d senders", prev, score, i+1)
		}
		prev = score
	}
}

func TestReasoner_CycleRule(t *testing.T) {
	r := NewReasoner(DefaultConfig())
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	r.AddFact(fact("a", "b", 100, ts))
	r.AddFact(fact("b", "c", 100, ts.Add(time.Minute)))
	r.AddFact(fact("c", "a", 100, ts.Add(2*time.Minute)))

	got := r.InferRisk("a")

	if got.Score < 0.5 {
		t.Errorf("Score = %v, want >= 0.5 for cycle membership", got.Score)
	}
	if !got.CycleDetected {
		t.Error("CycleDetected = false, want true")
	}
	if len(got.Reasons) == 0 {
		t.Fatal("want a cycle reason")
	}
	reason := got.Reasons[len(got.Reasons)-1]
	for _, member := range []string{"a", "b", "c"} {
		if !strings.Contains(reason, member) {
			t.Errorf("cycle reason %q does not mention member %s", reason, member)
		}
	}
}

func TestReasoner_RuleOrder(t *testing.T) {
	r := NewReasoner(DefaultConfig())
	ts := time.Now()

	// Both rules fire for sink: six senders plus a cycle back through one.
	for i := 0; i < 6; i++ {
		r.AddFact(fact(fmt.Sprintf("src-%d", i), "sink", 100, ts))
	}
	r.AddFact(fact("sink", "src-0", 100, ts))

	got := r.InferRisk("sink")

	if len(got.Reasons) != 2 {
		t.Fatalf("Reasons = %v, want fan-in then cycle", got.Reasons)
	}
	if !strings.Contains(got.Reasons[0], "fan-in") {
		t.Errorf("first reason = %q, want fan-in", got.Reasons[0])
	}
	if !strings.Contains(got.Reasons[1], "cycle") {
		t.Errorf("second reason = %q, want cycle", got.Reasons[1])
	}
	if want := 0.2 + 0.5; got.Score != want {
		t.Errorf("Score = %v, want %v", got.Score, want)
	}
}

func TestReasoner_BudgetDegradesGracefully(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CycleStepBudget = 5
	r := NewReasoner(cfg)
	ts := time.Now()

	for i := 0; i < 30; i++ {
		mid := fmt.Sprintf("mid-%d", i)
		r.AddFact(fact("hub", mid, 100, ts))
		for j := 0; j < 30; j++ {
			r.AddFact(fact(mid, fmt.Sprintf("leaf-%d-%d", i, j), 100, ts))
		}
	}

	got := r.InferRisk("hub")

	if !got.CycleSkipped {
		t.Error("CycleSkipped = false, want true")
	}
	if got.CycleDetected {
		t.Error("CycleDetected = true, want false")
	}
	if got.Score != 0 {
		t.Errorf("Score = %v, want 0 (skipped rule contributes nothing)", got.Score)
	}
	found := false
	for _, reason := range got.Reasons {
		if strings.Contains(reason, "cycle check skipped") {
			found = true
		}
	}
	if !found {
		t.Errorf("Reasons = %v, want a skip notice", got.Reasons)
	}
}

func TestReasoner_DuplicateFactsCountTwice(t *testing.T) {
	r := NewReasoner(DefaultConfig())
	ts := time.Now()

	tx := fact("a", "b", 100, ts)
	r.AddFact(tx)
	r.AddFact(tx)

	if got := r.Graph().EdgeCount(); got != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got)
	}
}
