package domain

import "testing"

func TestNextState(t *testing.T) {
	tests := []struct {
		name      string
		current   RiskState
		features  WindowFeatures
		riskScore float64
		isCycle   bool
		want      RiskState
	}{
		{
			name:      "normal to structuring on many small transactions",
			current:   StateNormal,
			features:  WindowFeatures{TxCount: 11, AvgAmount: 500},
			riskScore: 0.1,
			want:      StateStructuring,
		},
		{
			name:      "normal to high risk on strong graph signal",
			current:   StateNormal,
			features:  WindowFeatures{TxCount: 2, AvgAmount: 5000},
			riskScore: 0.9,
			want:      StateHighRisk,
		},
		{
			name:      "normal stays normal",
			current:   StateNormal,
			features:  WindowFeatures{TxCount: 3, AvgAmount: 5000},
			riskScore: 0.1,
			want:      StateNormal,
		},
		{
			name:     "count rule beats score rule when both match",
			current:  StateNormal,
			features: WindowFeatures{TxCount: 11, AvgAmount: 500},
			// first match wins: structuring, not high risk
			riskScore: 0.9,
			want:      StateStructuring,
		},
		{
			name:     "structuring to layering on high velocity",
			current:  StateStructuring,
			features: WindowFeatures{VelocityScore: 0.95, TxCountRecent: 20},
			want:     StateLayering,
		},
		{
			name:     "structuring cools down to normal",
			current:  StateStructuring,
			features: WindowFeatures{VelocityScore: 0.1, TxCountRecent: 3},
			want:     StateNormal,
		},
		{
			name:     "structuring holds",
			current:  StateStructuring,
			features: WindowFeatures{VelocityScore: 0.1, TxCountRecent: 8},
			want:     StateStructuring,
		},
		{
			name:      "layering to high risk on score",
			current:   StateLayering,
			riskScore: 0.7,
			want:      StateHighRisk,
		},
		{
			name:      "layering to high risk on cycle regardless of score",
			current:   StateLayering,
			riskScore: 0.1,
			isCycle:   true,
			want:      StateHighRisk,
		},
		{
			name:      "layering holds",
			current:   StateLayering,
			riskScore: 0.1,
			want:      StateLayering,
		},
		{
			name:      "high risk is terminal",
			current:   StateHighRisk,
			features:  WindowFeatures{TxCount: 0, AvgAmount: 0, TxCountRecent: 0},
			riskScore: 0,
			want:      StateHighRisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextState(tt.current, tt.features, tt.riskScore, tt.isCycle)
			if got != tt.want {
				t.Errorf("NextState() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNextState_Deterministic(t *testing.T) {
	features := WindowFeatures{TxCount: 11, AvgAmount: 999.99, VelocityScore: 0.91, TxCountRecent: 4}

	first := NextState(StateStructuring, features, 0.65, false)
	for i := 0; i < 10; i++ {
		if got := NextState(StateStructuring, features, 0.65, false); got != first {
			t.Fatalf("NextState not deterministic: got %s then %s", first, got)
		}
	}
}

func TestNextState_HighRiskAbsorbing(t *testing.T) {
	// No combination of inputs may leave HIGH_RISK.
	inputs := []struct {
		features  WindowFeatures
		riskScore float64
		isCycle   bool
	}{
		{WindowFeatures{}, 0, false},
		{WindowFeatures{TxCount: 100, AvgAmount: 1, VelocityScore: 1, TxCountRecent: 0}, 0, false},
		{WindowFeatures{}, 10, true},
	}

	for _, in := range inputs {
		if got := NextState(StateHighRisk, in.features, in.riskScore, in.isCycle); got != StateHighRisk {
			t.Errorf("HIGH_RISK escaped to %s with features %+v", got, in.features)
		}
	}
}
