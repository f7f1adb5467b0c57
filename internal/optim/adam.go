package optim

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/minitorch/internal/nn"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	base
	beta1       float64
	beta2       float64
	eps         float64
	weightDecay float64
	t           int                         // Timestep for bias correction
	m           map[*nn.Parameter][]float64 // First moment estimates
	v           map[*nn.Parameter][]float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR          float64    // Learning rate (default: 0.001)
	Betas       [2]float64 // Coefficients for running averages (default: [0.9, 0.999])
	Eps         float64    // Term for numerical stability (default: 1e-8)
	WeightDecay float64    // L2 penalty added to the gradient (default: 0)
}

// NewAdam creates a new Adam optimizer. Zero fields take their defaults.
func NewAdam(params []*nn.Parameter, config AdamConfig) (*Adam, error) {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	if config.Betas[0] >= 1 || config.Betas[1] >= 1 || config.LR < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "adam: lr=%g betas=%v", config.LR, config.Betas)
	}

	return &Adam{
		base:        base{params: params, lr: config.LR},
		beta1:       config.Betas[0],
		beta2:       config.Betas[1],
		eps:         config.Eps,
		weightDecay: config.WeightDecay,
		m:           make(map[*nn.Parameter][]float64),
		v:           make(map[*nn.Parameter][]float64),
	}, nil
}

// Step performs a single optimization step using the Adam algorithm.
func (a *Adam) Step() error {
	a.t++

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for _, p := range a.params {
		g := gradient(p)
		if g == nil {
			continue
		}
		if a.weightDecay != 0 {
			floats.AddScaled(g, a.weightDecay, p.Data())
		}

		m, ok := a.m[p]
		if !ok {
			m = make([]float64, len(g))
			a.m[p] = m
		}
		v, ok := a.v[p]
		if !ok {
			v = make([]float64, len(g))
			a.v[p] = v
		}

		next := p.ToArray()
		for i, gi := range g {
			m[i] = a.beta1*m[i] + (1.0-a.beta1)*gi
			v[i] = a.beta2*v[i] + (1.0-a.beta2)*gi*gi

			mHat := m[i] / biasCorrection1
			vHat := v[i] / biasCorrection2
			next[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
		if err := p.SetData(next); err != nil {
			return errors.WithMessagef(err, "adam: update %s", p.Name())
		}
	}
	return nil
}

// GetTimestep returns the number of steps taken.
func (a *Adam) GetTimestep() int {
	return a.t
}
