package bnn

import (
	"math/rand/v2"
)

// Network is the main structure that is used to learn a mapping from input to output values. A
// Network is more of a containing structure than it actually stores information: the weights live
// inside the Operators of its Nodes.
type Network struct {
	inputs, outputs *nodeGroup

	// a list of all of the Nodes, stored such that their id is their index in this slice
	nodesByID   []*Node
	nodesByName map[string]*Node

	cf CostFunction

	hyperParams map[string]HyperParameter

	// source of all randomness in the Network: initialization, weight sampling and shuffling
	rng  *rand.Rand
	seed uint64

	// when frozen, stochastic Operators use the means of their weight distributions
	frozen bool

	// used to keep track of the current iteration during training
	iter int

	// longIter corresponds to the iteration of the network as a whole, not just within the current
	// training run. It is what HyperParameters are given.
	longIter int

	stat status
}

// nodeGroups are a collection of what would instead be individual functions because of how
// different objects handle slices of Nodes.
type nodeGroup struct {
	// A list of all of the members of the group
	nodes []*Node

	// The sum of the sizes of each Node, up to and including the node at the specified index. For
	// example: index 0 would be equal to the size of the 0th Node; the last index is equal to the
	// size of the entire group.
	sumVals []int
}

// Nodes are the fundamental building blocks with which the Network is built -- they are the nodes
// of the computation graph. Each Node has an Operator that determines how it computes its values
// from those that it receives as input.
type Node struct {
	// The name that will be used to print this node. Required, and unique within the Network.
	name string

	// used for order identification of which nodes were added first
	id int

	host *Network

	// The sets of Nodes that this Node receives input from and provides output to. Input Nodes
	// have nil inputs.
	inputs, outputs *nodeGroup

	op Operator

	// type casting of op; nil if the Operator does not sample its weights
	stoch Stochastic

	opt Optimizer

	// these are exclusively for the Optimizer
	hyperParams map[string]HyperParameter

	// the values (essentially outputs) of the Node
	values []float64

	// the derivative of each value w.r.t. the cost of the current training sample. Deltas are
	// stored in the same ordering as Node.values.
	deltas []float64

	// whether or not the deltas of this Node must be calculated. True if the Node can be
	// adjusted or if any of its inputs need deltas.
	needsDeltas bool

	// scratch space for concatenating the values of multiple inputs
	inputVals []float64

	// outputIndex indicates the index in the Network outputs that this Node's values start at.
	// Non-output Nodes are given values of -1.
	outputIndex int

	// Whether or not the current task assigned by the Network has been completed.
	completed bool
}
