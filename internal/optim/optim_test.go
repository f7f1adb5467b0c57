package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minitorch/internal/autograd"
	"github.com/born-ml/minitorch/internal/autograd/ops"
	"github.com/born-ml/minitorch/internal/nn"
	"github.com/born-ml/minitorch/internal/optim"
)

func newContext() *autograd.Context {
	return autograd.NewContext(autograd.WithOperations(ops.Register))
}

func newParam(t *testing.T, ctx *autograd.Context, values ...float64) *nn.Parameter {
	t.Helper()
	x, err := ctx.FromNested(values)
	require.NoError(t, err)
	p, err := nn.NewParameter("x", x)
	require.NoError(t, err)
	return p
}

// backward sets p.Grad to coeffs by differentiating sum(p * coeffs).
func backward(t *testing.T, p *nn.Parameter, coeffs ...float64) {
	t.Helper()
	c, err := p.Context().FromNested(coeffs)
	require.NoError(t, err)
	y, err := p.Mul(c)
	require.NoError(t, err)
	loss, err := y.Sum()
	require.NoError(t, err)
	p.ZeroGrad()
	require.NoError(t, loss.Backward())
}

func TestSGD_Basic(t *testing.T) {
	ctx := newContext()
	p := newParam(t, ctx, 1)

	y, err := p.MulScalar(2)
	require.NoError(t, err)
	require.NoError(t, y.Backward())

	sgd, err := optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{LR: 0.01})
	require.NoError(t, err)
	require.NoError(t, sgd.Step())
	assert.InDelta(t, 0.98, p.Data()[0], 1e-12)
	assert.InDelta(t, 0.01, sgd.GetLR(), 0)
}

func TestSGD_Variants(t *testing.T) {
	tests := []struct {
		name string
		cfg  optim.SGDConfig
		want [2]float64 // parameter after the first and second step
	}{
		{"plain", optim.SGDConfig{LR: 0.1}, [2]float64{1.9, 1.8}},
		{"momentum", optim.SGDConfig{LR: 0.1, Momentum: 0.9}, [2]float64{1.9, 1.71}},
		{"nesterov", optim.SGDConfig{LR: 0.1, Momentum: 0.9, Nesterov: true}, [2]float64{1.81, 1.539}},
		{"dampening", optim.SGDConfig{LR: 0.1, Momentum: 0.9, Dampening: 0.5}, [2]float64{1.9, 1.76}},
		{"weight decay", optim.SGDConfig{LR: 0.1, WeightDecay: 0.1}, [2]float64{1.88, 1.7612}},
		{"maximize", optim.SGDConfig{LR: 0.1, Maximize: true}, [2]float64{2.1, 2.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParam(t, newContext(), 2)
			sgd, err := optim.NewSGD([]*nn.Parameter{p}, tt.cfg)
			require.NoError(t, err)

			for step, want := range tt.want {
				backward(t, p, 1)
				require.NoError(t, sgd.Step())
				assert.InDelta(t, want, p.Data()[0], 1e-9, "step %d", step)
			}
		})
	}
}

func TestSGD_SkipsParametersWithoutGradient(t *testing.T) {
	ctx := newContext()
	used := newParam(t, ctx, 1, 2)
	unused := newParam(t, ctx, 5)

	backward(t, used, 1, -1)
	sgd, err := optim.NewSGD([]*nn.Parameter{used, unused}, optim.SGDConfig{LR: 0.5})
	require.NoError(t, err)
	require.NoError(t, sgd.Step())

	assert.Equal(t, []float64{0.5, 2.5}, used.ToArray())
	assert.Equal(t, []float64{5}, unused.ToArray())

	sgd.ZeroGrad()
	assert.Nil(t, used.Grad())
	assert.Len(t, sgd.Parameters(), 2)
}

func TestSGD_InvalidConfig(t *testing.T) {
	p := newParam(t, newContext(), 1)

	_, err := optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{Nesterov: true})
	require.ErrorIs(t, err, optim.ErrInvalidConfig)

	_, err = optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{Momentum: 0.9, Dampening: 0.1, Nesterov: true})
	require.ErrorIs(t, err, optim.ErrInvalidConfig)

	_, err = optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{LR: -1})
	require.ErrorIs(t, err, optim.ErrInvalidConfig)

	sgd, err := optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{})
	require.NoError(t, err)
	assert.InDelta(t, 0.001, sgd.GetLR(), 0)
}

func TestSGD_StateDict(t *testing.T) {
	cfg := optim.SGDConfig{LR: 0.1, Momentum: 0.9}

	p := newParam(t, newContext(), 2)
	sgd, err := optim.NewSGD([]*nn.Parameter{p}, cfg)
	require.NoError(t, err)
	backward(t, p, 1)
	require.NoError(t, sgd.Step())

	state := sgd.StateDict()
	assert.Equal(t, map[string][]float64{"momentum_buffer.0": {1}}, state)

	// A restored optimizer continues exactly where the first left off.
	q := newParam(t, newContext(), p.Data()[0])
	restored, err := optim.NewSGD([]*nn.Parameter{q}, cfg)
	require.NoError(t, err)
	require.NoError(t, restored.LoadStateDict(state))

	backward(t, p, 1)
	require.NoError(t, sgd.Step())
	backward(t, q, 1)
	require.NoError(t, restored.Step())
	assert.InDelta(t, p.Data()[0], q.Data()[0], 1e-12)

	err = restored.LoadStateDict(map[string][]float64{"momentum_buffer.0": {1, 2}})
	require.ErrorIs(t, err, autograd.ErrShapeMismatch)
}

func TestAdam_FirstStep(t *testing.T) {
	p := newParam(t, newContext(), 2, 2)
	adam, err := optim.NewAdam([]*nn.Parameter{p}, optim.AdamConfig{LR: 0.1})
	require.NoError(t, err)

	backward(t, p, 1, -3)
	require.NoError(t, adam.Step())

	// After bias correction the first step moves each element by lr·sign(g).
	assert.InDeltaSlice(t, []float64{1.9, 2.1}, p.ToArray(), 1e-6)
	assert.Equal(t, 1, adam.GetTimestep())
}

func TestAdam_Defaults(t *testing.T) {
	p := newParam(t, newContext(), 1)
	adam, err := optim.NewAdam([]*nn.Parameter{p}, optim.AdamConfig{})
	require.NoError(t, err)
	assert.InDelta(t, 0.001, adam.GetLR(), 0)

	adam.SetLR(0.5)
	assert.InDelta(t, 0.5, adam.GetLR(), 0)

	_, err = optim.NewAdam([]*nn.Parameter{p}, optim.AdamConfig{Betas: [2]float64{1, 0.999}})
	require.ErrorIs(t, err, optim.ErrInvalidConfig)
}

func TestAdam_Minimizes(t *testing.T) {
	ctx := newContext()
	p := newParam(t, ctx, 0)
	adam, err := optim.NewAdam([]*nn.Parameter{p}, optim.AdamConfig{LR: 0.1})
	require.NoError(t, err)
	loss := nn.NewMSELoss()
	target, err := ctx.FromNested([]float64{3})
	require.NoError(t, err)

	for range 300 {
		l, err := loss.Forward(p.Value(), target)
		require.NoError(t, err)
		adam.ZeroGrad()
		require.NoError(t, l.Backward())
		require.NoError(t, adam.Step())
	}

	assert.InDelta(t, 3, p.Data()[0], 0.5)
}
