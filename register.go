package bnn

import (
	"github.com/pkg/errors"
)

var (
	operators   = make(map[string]func() Operator)
	optimizers  = make(map[string]func() Optimizer)
	hyperParams = make(map[string]func() HyperParameter)
	costFuncs   = make(map[string]func() CostFunction)

	defaultOptimizer func() Optimizer
)

// RegisterOperator allows the Operator to be decoded from a checkpoint. Subpackages register
// their types in init.
func RegisterOperator(name string, f func() Operator) error {
	if f() == nil {
		return ErrRegisterNilReturn
	} else if operators[name] != nil {
		return errors.Wrapf(ErrRegisterDuplicate, "Operator %q", name)
	}

	operators[name] = f
	return nil
}

// RegisterOptimizer allows the Optimizer to be decoded from a checkpoint.
func RegisterOptimizer(name string, f func() Optimizer) error {
	if f() == nil {
		return ErrRegisterNilReturn
	} else if optimizers[name] != nil {
		return errors.Wrapf(ErrRegisterDuplicate, "Optimizer %q", name)
	}

	optimizers[name] = f
	return nil
}

// RegisterHyperParameter allows the HyperParameter to be decoded from a checkpoint.
func RegisterHyperParameter(name string, f func() HyperParameter) error {
	if f() == nil {
		return ErrRegisterNilReturn
	} else if hyperParams[name] != nil {
		return errors.Wrapf(ErrRegisterDuplicate, "HyperParameter %q", name)
	}

	hyperParams[name] = f
	return nil
}

// RegisterCostFunction allows the CostFunction to be decoded from a checkpoint.
func RegisterCostFunction(name string, f func() CostFunction) error {
	if f() == nil {
		return ErrRegisterNilReturn
	} else if costFuncs[name] != nil {
		return errors.Wrapf(ErrRegisterDuplicate, "CostFunction %q", name)
	}

	costFuncs[name] = f
	return nil
}

// RegisterAll registers each constructor in the list under the TypeString of the value it
// returns. Each item must be one of: func() Operator, func() Optimizer, func() HyperParameter or
// func() CostFunction.
func RegisterAll(list []interface{}) error {
	for i, item := range list {
		var err error
		switch f := item.(type) {
		case func() Operator:
			if f() == nil {
				return errors.Wrapf(ErrRegisterNilReturn, "item %d", i)
			}
			err = RegisterOperator(f().TypeString(), f)
		case func() Optimizer:
			if f() == nil {
				return errors.Wrapf(ErrRegisterNilReturn, "item %d", i)
			}
			err = RegisterOptimizer(f().TypeString(), f)
		case func() HyperParameter:
			if f() == nil {
				return errors.Wrapf(ErrRegisterNilReturn, "item %d", i)
			}
			err = RegisterHyperParameter(f().TypeString(), f)
		case func() CostFunction:
			if f() == nil {
				return errors.Wrapf(ErrRegisterNilReturn, "item %d", i)
			}
			err = RegisterCostFunction(f().TypeString(), f)
		default:
			return errors.Wrapf(ErrRegisterWrongType, "item %d (%T)", i, item)
		}

		if err != nil {
			return errors.Wrapf(err, "Failed to register item %d", i)
		}
	}

	return nil
}

// SetDefaultOptimizer sets the function used to give Optimizers to adjustable Nodes that do not
// have one when the Network is finalized.
func SetDefaultOptimizer(f func() Optimizer) {
	defaultOptimizer = f
}

func newOperator(name string) (Operator, error) {
	f := operators[name]
	if f == nil {
		return nil, errors.Wrapf(ErrNotRegistered, "Operator %q", name)
	}
	return f(), nil
}

func newOptimizer(name string) (Optimizer, error) {
	f := optimizers[name]
	if f == nil {
		return nil, errors.Wrapf(ErrNotRegistered, "Optimizer %q", name)
	}
	return f(), nil
}

func newHyperParameter(name string) (HyperParameter, error) {
	f := hyperParams[name]
	if f == nil {
		return nil, errors.Wrapf(ErrNotRegistered, "HyperParameter %q", name)
	}
	return f(), nil
}

func newCostFunction(name string) (CostFunction, error) {
	f := costFuncs[name]
	if f == nil {
		return nil, errors.Wrapf(ErrNotRegistered, "CostFunction %q", name)
	}
	return f(), nil
}
