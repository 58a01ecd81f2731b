package bnn

import (
	"github.com/pkg/errors"
)

type status int8

const (
	initialized status = iota // 0
	finalized   status = iota // 1
	evaluated   status = iota // 2
	deltas      status = iota // 3
)

// Sets all Nodes' field 'completed' to false
func (net *Network) resetCompletion() {
	for _, n := range net.nodesByID {
		n.completed = false
	}
}

// Checks that all Nodes affect the given outputs of the network
func (net *Network) checkOutputs(outputs []*Node) error {
	var mark func(*Node)
	mark = func(n *Node) {
		if n.completed {
			return
		}

		n.completed = true
		if n.IsInput() {
			return
		}

		for _, in := range n.inputs.nodes {
			mark(in)
		}
	}

	defer net.resetCompletion()

	// Mark all Nodes that affect the network outputs.
	for _, out := range outputs {
		mark(out)
	}

	// If any Nodes don't affect outputs, return error
	for _, n := range net.nodesByID {
		if !n.completed {
			return errors.Errorf("Node %v does not affect Network outputs", n)
		}
	}

	return nil
}

// Recursively calls itself on inputs to the Node before evaluating
func (n *Node) evaluate() error {
	if n.completed {
		return nil
	} else if n.IsInput() {
		n.completed = true
		return nil
	}

	for _, in := range n.inputs.nodes {
		if err := in.evaluate(); err != nil {
			return errors.Wrapf(err, "Evaluating Node %v failed", in)
		}
	}

	n.inputVals = n.inputs.getValues(n.inputVals, false)

	if err := n.op.Evaluate(n, n.values); err != nil {
		return errors.Wrapf(err, "Operator evaluation of %v failed", n)
	}

	n.completed = true
	return nil
}

// Changes the values of the Nodes so that they accurately reflect the inputs
func (net *Network) evaluate() error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	} else if net.stat >= evaluated {
		return nil
	}

	for _, out := range net.outputs.nodes {
		if err := out.evaluate(); err != nil {
			return errors.Wrapf(err, "Evaluating Network output Node %v failed", out)
		}
	}

	net.resetCompletion()
	net.stat = evaluated
	return nil
}

// Calculates the deltas of all of the Nodes in the Network whose deltas must be calculated, given
// the derivatives of the cost function w.r.t. each of the Network's outputs.
func (net *Network) getDeltas(cfDerivs []float64) error {
	if net.stat < evaluated {
		return errors.Errorf("Network must be evaluated before getting deltas")
	} else if net.stat >= deltas {
		return nil
	} else if len(cfDerivs) != net.outputs.size() {
		return SizeMismatchError{net.outputs.size(), len(cfDerivs), "cost derivatives"}
	}

	// Nodes only take input from Nodes with lower ids, so going backwards by id guarantees that
	// all outputs of a Node are done before it is.
	for id := len(net.nodesByID) - 1; id >= 0; id-- {
		n := net.nodesByID[id]
		if !n.needsDeltas {
			continue
		}

		for i := range n.deltas {
			n.deltas[i] = 0
		}

		if n.IsOutput() {
			for i := range n.deltas {
				n.deltas[i] += cfDerivs[n.outputIndex+i]
			}
		}

		add := func(index int, addition float64) {
			n.deltas[index] += addition
		}

		for _, out := range n.outputs.nodes {
			start, end, ok := out.inputs.bounds(n)
			if !ok {
				return errors.Errorf("Can't get input deltas of %v from %v, not an input", n, out)
			}

			if err := out.op.InputDeltas(out, add, start, end); err != nil {
				return errors.Wrapf(err, "Getting input deltas of Node %v from Node %v failed", n, out)
			}
		}
	}

	net.stat = deltas
	return nil
}

// accumulate has every adjustable Node add the gradients of the current sample
func (net *Network) accumulate(scale float64) error {
	if net.stat < deltas {
		return errors.Errorf("Network must have deltas calculated before accumulating gradients")
	}

	for _, n := range net.nodesByID {
		if n.IsInput() || !n.op.CanBeAdjusted(n) {
			continue
		}

		if err := n.op.Accumulate(n, scale); err != nil {
			return errors.Wrapf(err, "Failed to accumulate gradients of Node %v", n)
		}
	}

	return nil
}

// adjust applies the accumulated gradients of every adjustable Node
func (net *Network) adjust() error {
	for _, n := range net.nodesByID {
		if n.IsInput() || !n.op.CanBeAdjusted(n) {
			continue
		}

		hp, ok := n.hp("learning-rate")
		if !ok {
			return errors.Wrapf(ErrNoHP, "Node %v has no learning-rate", n)
		}

		if err := n.op.Adjust(n, hp.Value(net.longIter)); err != nil {
			return errors.Wrapf(err, "Failed to adjust Node %v", n)
		}
	}

	// weights have changed; values are stale
	net.stat = finalized
	return nil
}

// Resample draws new weights for every stochastic Node in the Network. It does nothing to frozen
// Networks.
func (net *Network) Resample() {
	if net.frozen || net.stat < finalized {
		return
	}

	for _, n := range net.nodesByID {
		if n.stoch != nil {
			n.stoch.Resample(n, net.rng)
		}
	}

	net.stat = finalized
}

// complexity sums the complexity cost of the current draw over all stochastic Nodes, adding the
// gradients multiplied by weight.
func (net *Network) complexity(weight float64) float64 {
	var sum float64
	for _, n := range net.nodesByID {
		if n.stoch != nil {
			sum += n.stoch.Complexity(n, weight)
		}
	}

	return sum
}
