package usecase

import "github.com/iho/amlguard/internal/domain"

// velocityRateScale is the per-hour transaction rate at which the velocity
// score reaches 0.5.
const velocityRateScale = 10.0

// DeriveWindowFeatures computes the short-window aggregates from an
// account's bounded history. The window is the ring buffer itself rather
// than a true time window; see DESIGN.md.
func DeriveWindowFeatures(history []domain.Transaction) domain.WindowFeatures {
	n := len(history)
	features := domain.WindowFeatures{
		TxCount:       n,
		TxCountRecent: n,
		VelocityScore: 0.5,
	}
	if n == 0 {
		return features
	}

	var sum float64
	for _, tx := range history {
		sum += tx.Amount.InexactFloat64()
	}
	features.AvgAmount = sum / float64(n)

	if n >= 2 {
		features.VelocityScore = velocityScore(history)
	}
	return features
}

// velocityScore maps the transaction rate over the history span into [0,1).
// An instantaneous burst (zero span) scores 1.
func velocityScore(history []domain.Transaction) float64 {
	span := history[len(history)-1].Timestamp.Sub(history[0].Timestamp)
	if span <= 0 {
		return 1
	}

	rate := float64(len(history)) / span.Hours()
	return rate / (rate + velocityRateScale)
}
