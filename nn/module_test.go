// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minitorch/nn"
	"github.com/born-ml/minitorch/torch"
)

func TestModuleInterface(t *testing.T) {
	ctx := torch.NewContext(torch.WithSeed(3))
	l1, err := nn.NewLinear(ctx, 4, 3)
	require.NoError(t, err)
	l2, err := nn.NewLinear(ctx, 3, 1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		module nn.Module
		params int
	}{
		{"Linear", l1, 2},
		{"Sequential", nn.NewSequential(l1, nn.NewTanh(), l2, nn.NewSigmoid()), 4},
		{"ReLU", nn.NewReLU(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.module.Parameters(), tt.params)
		})
	}
}

func TestBinaryClassifier(t *testing.T) {
	ctx := torch.NewContext(torch.WithSeed(11))
	layer, err := nn.NewLinear(ctx, 2, 1)
	require.NoError(t, err)
	model := nn.NewSequential(layer, nn.NewSigmoid())
	bce := nn.NewBCELoss(nil)

	x, err := ctx.FromNested([][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
	require.NoError(t, err)
	y, err := ctx.FromNested([][]float64{{0}, {1}, {1}, {1}})
	require.NoError(t, err)

	var first, last float64
	for step := 0; step < 200; step++ {
		pred, err := model.Forward(x)
		require.NoError(t, err)
		loss, err := bce.Forward(pred, y)
		require.NoError(t, err)
		v, err := loss.Item()
		require.NoError(t, err)
		if step == 0 {
			first = v
		}
		last = v

		for _, p := range model.Parameters() {
			p.ZeroGrad()
		}
		require.NoError(t, loss.Backward())
		for _, p := range model.Parameters() {
			next := p.ToArray()
			for i, g := range p.Grad().Data() {
				next[i] -= 0.5 * g
			}
			require.NoError(t, p.SetData(next))
		}
	}

	assert.Less(t, last, first)
	assert.Less(t, last, 0.3)
}
