package domain

// WindowFeatures are the short-window aggregates derived from an account's
// bounded sender history. The window is the ring buffer itself, not a true
// time window; see the velocity note in DESIGN.md.
type WindowFeatures struct {
	// TxCount is the number of transactions in the bounded history.
	TxCount int
	// AvgAmount is the mean amount over the bounded history.
	AvgAmount float64
	// VelocityScore is the transaction rate mapped into [0,1).
	VelocityScore float64
	// TxCountRecent is the count used by the STRUCTURING cool-down rule.
	TxCountRecent int
}

// ScoreVector is the fixed-size numeric input of the anomaly scorer.
type ScoreVector struct {
	Amount    float64
	HourOfDay float64
}
