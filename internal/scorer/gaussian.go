// Package scorer provides the pluggable anomaly scoring model.
package scorer

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"sync"

	"github.com/iho/amlguard/internal/domain"
)

// NeutralScore is returned while no model has been fitted.
const NeutralScore = 0.5

// ErrNoSamples is returned by Fit when called with an empty batch.
var ErrNoSamples = errors.New("no samples to fit")

// Gaussian is an outlier scorer over the fixed {amount, hour_of_day}
// vector. It estimates a per-dimension mean and standard deviation from a
// historical batch and maps the largest absolute z-score of an observation
// through a logistic curve into (0,1). Higher means more anomalous.
//
// Training procedure and hyperparameter search live outside this module;
// Fit is a mechanical parameter estimate so tests and the replay tool can
// produce a working model.
type Gaussian struct {
	mu     sync.RWMutex
	params *params
}

type params struct {
	AmountMean   float64 `json:"amount_mean"`
	AmountStddev float64 `json:"amount_stddev"`
	HourMean     float64 `json:"hour_mean"`
	HourStddev   float64 `json:"hour_stddev"`
}

// NewGaussian creates an unfitted scorer.
func NewGaussian() *Gaussian {
	return &Gaussian{}
}

// Fit estimates the model parameters from a batch of vectors.
func (g *Gaussian) Fit(samples []domain.ScoreVector) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	var amountSum, hourSum float64
	for _, s := range samples {
		amountSum += s.Amount
		hourSum += s.HourOfDay
	}
	n := float64(len(samples))
	p := &params{
		AmountMean: amountSum / n,
		HourMean:   hourSum / n,
	}

	var amountVar, hourVar float64
	for _, s := range samples {
		amountVar += (s.Amount - p.AmountMean) * (s.Amount - p.AmountMean)
		hourVar += (s.HourOfDay - p.HourMean) * (s.HourOfDay - p.HourMean)
	}
	p.AmountStddev = math.Sqrt(amountVar / n)
	p.HourStddev = math.Sqrt(hourVar / n)

	g.mu.Lock()
	g.params = p
	g.mu.Unlock()
	return nil
}

// Fitted reports whether a model is loaded.
func (g *Gaussian) Fitted() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.params != nil
}

// Score returns the outlier probability of a vector in [0,1]. An unfitted
// scorer returns exactly NeutralScore rather than failing; a fitted scorer
// is deterministic given its parameters.
func (g *Gaussian) Score(v domain.ScoreVector) float64 {
	g.mu.RLock()
	p := g.params
	g.mu.RUnlock()

	if p == nil {
		return NeutralScore
	}

	z := math.Max(zscore(v.Amount, p.AmountMean, p.AmountStddev),
		zscore(v.HourOfDay, p.HourMean, p.HourStddev))

	// Logistic curve centred so that observations two standard deviations
	// out score above 0.5.
	return 1 / (1 + math.Exp(2-z))
}

func zscore(x, mean, stddev float64) float64 {
	if stddev == 0 {
		if x == mean {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(x-mean) / stddev
}

// Save writes the fitted parameters as JSON.
func (g *Gaussian) Save(path string) error {
	g.mu.RLock()
	p := g.params
	g.mu.RUnlock()

	if p == nil {
		return ErrNoSamples
	}

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads previously saved parameters. A missing file leaves the scorer
// unfitted without error, matching the neutral-default contract.
func (g *Gaussian) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	p := &params{}
	if err := json.Unmarshal(data, p); err != nil {
		return err
	}

	g.mu.Lock()
	g.params = p
	g.mu.Unlock()
	return nil
}
