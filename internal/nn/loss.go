package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/minitorch/internal/autograd"
)

// Loss computes a scalar loss from predictions and targets.
type Loss interface {
	Forward(predictions, targets *autograd.Tensor) (*autograd.Tensor, error)
}

func checkSameShape(name string, predictions, targets *autograd.Tensor) error {
	if !predictions.Shape().Equal(targets.Shape()) {
		return errors.Wrapf(autograd.ErrShapeMismatch,
			"%s: predictions %v and targets %v must have the same shape", name, predictions.Shape(), targets.Shape())
	}
	return nil
}

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
type MSELoss struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return &MSELoss{}
}

// Forward computes the MSE loss as a scalar tensor.
func (m *MSELoss) Forward(predictions, targets *autograd.Tensor) (*autograd.Tensor, error) {
	if err := checkSameShape("MSELoss", predictions, targets); err != nil {
		return nil, err
	}
	diff, err := predictions.Sub(targets)
	if err != nil {
		return nil, err
	}
	squared, err := diff.PowInt(2)
	if err != nil {
		return nil, err
	}
	return squared.Mean()
}

// L1Loss computes Mean Absolute Error loss.
//
// Loss = mean(|predictions - targets|)
type L1Loss struct{}

// NewL1Loss creates a new L1 loss function.
func NewL1Loss() *L1Loss {
	return &L1Loss{}
}

// Forward computes the L1 loss as a scalar tensor.
func (l *L1Loss) Forward(predictions, targets *autograd.Tensor) (*autograd.Tensor, error) {
	if err := checkSameShape("L1Loss", predictions, targets); err != nil {
		return nil, err
	}
	diff, err := predictions.Sub(targets)
	if err != nil {
		return nil, err
	}
	abs, err := diff.Abs()
	if err != nil {
		return nil, err
	}
	return abs.Mean()
}

// BCELoss computes Binary Cross Entropy between probabilities and targets.
//
// Loss = -mean(t·log(x) + (1-t)·log(1-x)), scaled by the optional weight.
// Predictions must lie in (0, 1); feed it the output of Sigmoid.
type BCELoss struct {
	weight *autograd.Tensor
}

// NewBCELoss creates a new BCE loss function. weight may be nil.
func NewBCELoss(weight *autograd.Tensor) *BCELoss {
	return &BCELoss{weight: weight}
}

// Forward computes the BCE loss.
func (b *BCELoss) Forward(predictions, targets *autograd.Tensor) (*autograd.Tensor, error) {
	if err := checkSameShape("BCELoss", predictions, targets); err != nil {
		return nil, err
	}

	logX, err := predictions.Log()
	if err != nil {
		return nil, err
	}
	left, err := targets.Mul(logX)
	if err != nil {
		return nil, err
	}

	oneMinusX, err := oneMinus(predictions)
	if err != nil {
		return nil, err
	}
	logOneMinusX, err := oneMinusX.Log()
	if err != nil {
		return nil, err
	}
	oneMinusT, err := oneMinus(targets)
	if err != nil {
		return nil, err
	}
	right, err := oneMinusT.Mul(logOneMinusX)
	if err != nil {
		return nil, err
	}

	sum, err := left.Add(right)
	if err != nil {
		return nil, err
	}
	neg, err := sum.Neg()
	if err != nil {
		return nil, err
	}
	loss, err := neg.Mean()
	if err != nil {
		return nil, err
	}
	if b.weight != nil {
		return loss.Mul(b.weight)
	}
	return loss, nil
}

// oneMinus returns 1 - x.
func oneMinus(x *autograd.Tensor) (*autograd.Tensor, error) {
	neg, err := x.Neg()
	if err != nil {
		return nil, err
	}
	return neg.AddScalar(1)
}
