package domain

// Automaton transition thresholds.
const (
	structuringTxCount   = 10
	structuringAvgAmount = 1000
	directHighRiskScore  = 0.8
	layeringVelocity     = 0.9
	coolDownTxCount      = 5
	layeringHighRisk     = 0.6
)

// NextState computes the automaton transition for one account.
//
// Conditions are evaluated top to bottom within a state and the first match
// wins. HIGH_RISK is terminal: once reached, no input changes the state
// (an external process owns resets). NextState is a pure function of its
// arguments.
func NextState(current RiskState, features WindowFeatures, riskScore float64, isCycle bool) RiskState {
	switch current {
	case StateNormal:
		if features.TxCount > structuringTxCount && features.AvgAmount < structuringAvgAmount {
			return StateStructuring
		}
		if riskScore > directHighRiskScore {
			return StateHighRisk
		}
		return StateNormal

	case StateStructuring:
		if features.VelocityScore > layeringVelocity {
			return StateLayering
		}
		if features.TxCountRecent < coolDownTxCount {
			return StateNormal
		}
		return StateStructuring

	case StateLayering:
		if riskScore > layeringHighRisk || isCycle {
			return StateHighRisk
		}
		return StateLayering

	case StateHighRisk:
		return StateHighRisk
	}

	return current
}
