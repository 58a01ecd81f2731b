// Package priors provides the prior distributions of the weights of Bayesian Operators.
package priors

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Mixture is a scale mixture of two zero-mean Gaussians:
//	Pi·N(0, Sigma1²) + (1-Pi)·N(0, Sigma2²)
// With Pi = 1 it is a single Gaussian with standard deviation Sigma1.
type Mixture struct {
	Pi     float64 `json:"pi"`
	Sigma1 float64 `json:"sigma_1"`
	Sigma2 float64 `json:"sigma_2"`
}

var defaultMixture = Mixture{Pi: 1, Sigma1: 0.1, Sigma2: 0.4}

// Default returns the prior used by Bayesian Operators that have not been given one:
// π = 1, σ₁ = 0.1, σ₂ = 0.4.
func Default() Mixture {
	return defaultMixture
}

// SetDefault changes the prior returned by Default. It returns an error if the prior is invalid.
func SetDefault(m Mixture) error {
	if err := m.Validate(); err != nil {
		return err
	}

	defaultMixture = m
	return nil
}

// ScaleMixture returns the mixture π·N(0, σ₁²) + (1-π)·N(0, σ₂²)
func ScaleMixture(π, σ1, σ2 float64) Mixture {
	return Mixture{Pi: π, Sigma1: σ1, Sigma2: σ2}
}

// Gaussian returns the prior N(0, σ²)
func Gaussian(σ float64) Mixture {
	return Mixture{Pi: 1, Sigma1: σ, Sigma2: σ}
}

// Validate returns an error if the mixture does not describe a distribution
func (m Mixture) Validate() error {
	if m.Pi < 0 || m.Pi > 1 || math.IsNaN(m.Pi) {
		return errors.Errorf("Mixture weight must be in [0, 1] (%v)", m.Pi)
	} else if m.Pi > 0 && !(m.Sigma1 > 0) {
		return errors.Errorf("Sigma1 must be > 0 (%v)", m.Sigma1)
	} else if m.Pi < 1 && !(m.Sigma2 > 0) {
		return errors.Errorf("Sigma2 must be > 0 (%v)", m.Sigma2)
	}

	return nil
}

func (m Mixture) components() (n1, n2 distuv.Normal) {
	return distuv.Normal{Mu: 0, Sigma: m.Sigma1}, distuv.Normal{Mu: 0, Sigma: m.Sigma2}
}

// LogProb returns the log of the density of the prior at w
func (m Mixture) LogProb(w float64) float64 {
	n1, n2 := m.components()

	switch m.Pi {
	case 1:
		return n1.LogProb(w)
	case 0:
		return n2.LogProb(w)
	}

	return math.Log(m.Pi*n1.Prob(w) + (1-m.Pi)*n2.Prob(w))
}

// NegLogGrad returns the derivative of -LogProb at w
func (m Mixture) NegLogGrad(w float64) float64 {
	n1, n2 := m.components()

	switch m.Pi {
	case 1:
		return w / (m.Sigma1 * m.Sigma1)
	case 0:
		return w / (m.Sigma2 * m.Sigma2)
	}

	p1 := m.Pi * n1.Prob(w)
	p2 := (1 - m.Pi) * n2.Prob(w)
	if p1+p2 == 0 {
		// both densities underflow; the wider component dominates
		σ := math.Max(m.Sigma1, m.Sigma2)
		return w / (σ * σ)
	}

	return (p1*w/(m.Sigma1*m.Sigma1) + p2*w/(m.Sigma2*m.Sigma2)) / (p1 + p2)
}
