package bnn

import (
	"fmt"
	"math/rand/v2"
)

// String offers a universal method of gaining information about a Node without printing all of its
// fields. String returns the Node's name in quotes. If given a Node that is nil, String will
// return:
//	<nil>
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%q", n.name)
}

// Name returns the name of the given Node.
func (n *Node) Name() string {
	return n.name
}

// ID returns the non-negative integer given to the Node as a member of its Network. IDs are unique
// within Networks.
func (n *Node) ID() int {
	return n.id
}

// IsInput returns whether or not the Node is an input Node. Input Nodes will not have Operators.
func (n *Node) IsInput() bool {
	return n.inputs == nil
}

// IsOutput returns whether or not the Node is an output Node.
func (n *Node) IsOutput() bool {
	return n.outputIndex >= 0
}

// Size returns the number of values the Node produces.
func (n *Node) Size() int {
	return len(n.values)
}

// Operator returns the Operator of the Node. It is nil for input Nodes.
func (n *Node) Operator() Operator {
	return n.op
}

// Optimizer returns the Optimizer used to adjust the weights of the Node. It is nil for Nodes
// without weights.
func (n *Node) Optimizer() Optimizer {
	return n.opt
}

// SetOptimizer sets the Optimizer of the Node, to be used instead of the default.
func (n *Node) SetOptimizer(opt Optimizer) *Node {
	if opt == nil {
		panic(NilArgError{"Optimizer"})
	}

	n.opt = opt
	return n
}

// SetHP sets a HyperParameter for the Node only, overriding any set for the whole Network.
func (n *Node) SetHP(name string, hp HyperParameter) *Node {
	if hp == nil {
		panic(NilArgError{"HyperParameter"})
	}

	if n.hyperParams == nil {
		n.hyperParams = make(map[string]HyperParameter)
	}
	n.hyperParams[name] = hp
	return n
}

func (n *Node) hp(name string) (HyperParameter, bool) {
	if hp := n.hyperParams[name]; hp != nil {
		return hp, true
	} else if hp := n.host.hyperParams[name]; hp != nil {
		return hp, true
	}

	return nil, false
}

// HP returns the values of the given HyperParameter at the current iteration. If an unknown
// HyperParameter is requested, HP will panic with ErrNoHP.
func (n *Node) HP(name string) float64 {
	hp, ok := n.hp(name)
	if !ok {
		panic(ErrNoHP)
	}

	return hp.Value(n.host.longIter)
}

// Rand returns the random number generator of the host Network.
func (n *Node) Rand() *rand.Rand {
	return n.host.rng
}

// Frozen returns whether or not the host Network is frozen.
func (n *Node) Frozen() bool {
	return n.host.frozen
}

// Value returns the value of the Node at the specified index. Value will allow panicking with
// index-out-of-bounds.
func (n *Node) Value(index int) float64 {
	return n.values[index]
}

// Values returns a copy of the values of the Node.
func (n *Node) Values() []float64 {
	vs := make([]float64, len(n.values))
	copy(vs, n.values)
	return vs
}

// Delta returns the derivative of the value at the given index w.r.t. the total cost of the
// Network's outputs for the current training sample.
func (n *Node) Delta(index int) float64 {
	return n.deltas[index]
}

// Deltas returns the deltas of the Node. The returned slice is NOT a copy and must not be
// modified.
func (n *Node) Deltas() []float64 {
	return n.deltas
}

// Input returns the n'th input Node to the given Node. If the Node has no inputs, it will panic
// with ErrNoInputs.
func (n *Node) Input(index int) *Node {
	if n.IsInput() {
		panic(ErrNoInputs)
	}

	return n.inputs.nodes[index]
}

// NumInputNodes returns the number of Nodes from which the Node receives input.
func (n *Node) NumInputNodes() int {
	return num(n.inputs)
}

// NumInputs returns the total number of input values to the node.
func (n *Node) NumInputs() int {
	return n.inputs.size()
}

// InputValue returns the value of the n'th input to the Node. If InputValue is called on an input
// Node (which has no input values), it will panic with ErrNoInputs
func (n *Node) InputValue(index int) float64 {
	if n.IsInput() {
		panic(ErrNoInputs)
	}

	return n.inputs.value(index)
}

// Inputs returns all of the input values to the Node as a single slice, as of its last
// evaluation. The returned slice is NOT a copy and must not be modified.
func (n *Node) Inputs() []float64 {
	if n.IsInput() {
		panic(ErrNoInputs)
	}

	if n.inputVals == nil {
		n.inputVals = n.inputs.getValues(nil, false)
	}
	return n.inputVals
}
