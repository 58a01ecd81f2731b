package bnn

// Nodes returns the list of all Nodes in the Network, sorted by ID such that Nodes()[n] has id=n.
// The slice that Nodes returns is a copy; it can be modified freely but will not update if more
// Nodes are added to the Network.
func (net *Network) Nodes() []*Node {
	ns := make([]*Node, len(net.nodesByID))
	copy(ns, net.nodesByID)
	return ns
}

// Node returns the Node with the given name, or nil if there is none.
func (net *Network) Node(name string) *Node {
	return net.nodesByName[name]
}

// ResetIter resets the Network's tracked number of iterations to the provided value. This could be
// done to bring HyperParameters that are dependent upon iterations back to an earlier state. The
// given value will usually be zero. ResetIter will return ErrNegativeIter if the iteration given
// is less than zero.
func (net *Network) ResetIter(iter int) error {
	if iter < 0 {
		return ErrNegativeIter
	}

	net.longIter = iter
	return nil
}

// Iter returns the total number of training iterations (mini-batches) the Network has gone
// through.
func (net *Network) Iter() int {
	return net.longIter
}

// InputSize returns the total number of expected input values to the Network. If the Network has
// not been finalized yet, InputSize will return -1.
func (net *Network) InputSize() int {
	if net.stat < finalized {
		return -1
	}

	return net.inputs.size()
}

// OutputSize returns the total number of expected output values to the Network. If the Network has
// not been finalized yet, OutputSize will return -1.
func (net *Network) OutputSize() int {
	if net.stat < finalized {
		return -1
	}

	return net.outputs.size()
}

// SetInputs sets the inputs of the Network to the provided values. If the Network has not been
// finalized, ErrNetNotFinalized will be returned. Else, if the number of inputs does not equal
// the total size of the inputs (given by InputSize()), type SizeMismatchError will be returned.
func (net *Network) SetInputs(inputs []float64) error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	}

	if !net.inputs.setValues(inputs) {
		return SizeMismatchError{net.inputs.size(), len(inputs), "inputs"}
	}

	net.stat = finalized
	return nil
}

// GetOutputs returns a copy of the Network's output values for the given inputs, using the
// weights of the current draw. There are several error conditions:
//	(0) If the Network has not been finalized: ErrNetNotFinalized,
//	(1) If the number of inputs doesn't match the total size: type SizeMismatchError,
func (net *Network) GetOutputs(inputs []float64) ([]float64, error) {
	if err := net.SetInputs(inputs); err != nil {
		return nil, err
	}

	if err := net.evaluate(); err != nil {
		return nil, err
	}

	return net.outputs.getValues(nil, true), nil
}

// ChangeCost changes the CostFunction of the Network, after it has been finalized. This allows
// different CostFunctions for training and final model evaluation. If cf is nil, ChangeCost will
// panic with type NilArgError.
func (net *Network) ChangeCost(cf CostFunction) *Network {
	if cf == nil {
		panic(NilArgError{"CostFunction"})
	}

	net.cf = cf
	return net
}

// Cost returns the CostFunction of the Network.
func (net *Network) Cost() CostFunction {
	return net.cf
}

// SetHP sets a HyperParameter for every Node in the Network that does not have its own.
func (net *Network) SetHP(name string, hp HyperParameter) *Network {
	if hp == nil {
		panic(NilArgError{"HyperParameter"})
	}

	net.init()
	net.hyperParams[name] = hp
	return net
}

// Freeze sets whether or not the Network is frozen. Frozen Networks use the means of their weight
// distributions, so their outputs are deterministic. Frozen Networks cannot be trained.
func (net *Network) Freeze(frozen bool) *Network {
	net.frozen = frozen
	if net.stat > finalized {
		net.stat = finalized
	}
	return net
}

// Frozen returns whether or not the Network is frozen.
func (net *Network) Frozen() bool {
	return net.frozen
}

// Complexity returns the complexity cost (KL divergence from the prior) of the current draw of
// weights, summed over all stochastic Nodes.
func (net *Network) Complexity() float64 {
	return net.complexity(0)
}
