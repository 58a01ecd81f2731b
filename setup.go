package bnn

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
)

// DefaultSeed is the seed used by Networks that have not been given one with SetSeed.
const DefaultSeed uint64 = 42

func (net *Network) init() {
	if net.nodesByName != nil {
		return
	}

	net.nodesByName = make(map[string]*Node)
	net.inputs = new(nodeGroup)
	net.hyperParams = make(map[string]HyperParameter)
	if net.rng == nil {
		net.SetSeed(DefaultSeed)
	}
}

// SetSeed resets the random number generator of the Network. It is used for initializing weights,
// sampling weights and shuffling training data.
func (net *Network) SetSeed(seed uint64) *Network {
	net.seed = seed
	net.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return net
}

// Seed returns the seed that the random number generator of the Network was last given.
func (net *Network) Seed() uint64 {
	return net.seed
}

// newNode performs the checks common to all Nodes and adds it to the Network.
func (net *Network) newNode(name string, size int) (*Node, error) {
	net.init()

	if net.stat >= finalized {
		return nil, ErrNetFinalized
	} else if size < 1 {
		return nil, errors.Errorf("Node must have size >= 1 (%d)", size)
	} else if net.nodesByName[name] != nil {
		return nil, errors.Errorf("Name %q is already taken", name)
	} else if name == "" {
		return nil, errors.Errorf(`Name cannot be ""`)
	} else if strings.Contains(name, `"`) {
		return nil, errors.Errorf(`Name contains illegal character:"`)
	}

	n := new(Node)
	n.name = name
	n.host = net
	n.id = len(net.nodesByID)
	n.outputIndex = -1

	n.outputs = new(nodeGroup)

	n.values = make([]float64, size)
	n.deltas = make([]float64, size)

	return n, nil
}

// AddInput adds an input Node to the Network, with the given name and size. Input Nodes have no
// Operator; their values are set by SetInputs.
func (net *Network) AddInput(name string, size int) (*Node, error) {
	n, err := net.newNode(name, size)
	if err != nil {
		return nil, err
	}

	net.nodesByName[name] = n
	net.nodesByID = append(net.nodesByID, n)
	net.inputs.add(n)
	return n, nil
}

// Add adds a new Node to the Network, with given name, Operator, size, and inputs. At least one
// input must be given; all inputs must already belong to the Network, so the Network is always
// feed-forward.
//
// The name of each node must be unique, cannot be "", and cannot contain a double-quote (")
//
// if Add returns an error, the host Network will not have been changed
func (net *Network) Add(name string, op Operator, size int, inputs ...*Node) (*Node, error) {
	if op == nil {
		return nil, NilArgError{"Operator"}
	} else if len(inputs) == 0 {
		return nil, errors.Errorf("Can't add Node %q, no inputs given", name)
	}

	n, err := net.newNode(name, size)
	if err != nil {
		return nil, err
	}

	for i, in := range inputs {
		if in == nil {
			return nil, errors.Errorf("Input %d to node %q is nil", i, name)
		} else if in.host != net {
			return nil, errors.Errorf("Input %d (%v) to %q does not belong to the same Network", i, in, name)
		}
	}

	n.inputs = new(nodeGroup)
	n.inputs.add(inputs...)
	n.op = n.typeCast(op)

	if err := op.Init(n); err != nil {
		return nil, errors.Wrapf(err, "Initializing Operator of %q failed", name)
	}

	for _, in := range inputs {
		in.outputs.add(n)
	}

	net.nodesByName[name] = n
	net.nodesByID = append(net.nodesByID, n)
	return n, nil
}

func (n *Node) typeCast(op Operator) Operator {
	if s, ok := op.(Stochastic); ok {
		n.stoch = s
	}

	return op
}

// Finalize sets the CostFunction and output Nodes of the Network, finishing its construction.
//
// No outputs can be inputs, and all Nodes must affect the outputs. Nodes whose Operators can be
// adjusted are given the default Optimizer if they have none.
//
// If an error is returned, the Network has remained unchanged
func (net *Network) Finalize(cf CostFunction, outputs ...*Node) error {
	if cf == nil {
		return NilArgError{"CostFunction"}
	} else if net.stat >= finalized {
		return ErrNetFinalized
	} else if len(net.nodesByID) == 0 {
		return errors.Errorf("Can't finalize network, network has no nodes")
	} else if len(outputs) == 0 {
		return errors.Errorf("Can't finalize network, no outputs given")
	}

	for i, out := range outputs {
		if out == nil {
			return errors.Errorf("Can't finalize network, output node #%d is nil", i)
		} else if out.host != net {
			return errors.Errorf("Can't finalize network, output node #%d (%v) does not belong to this network", i, out)
		} else if out.IsInput() {
			return errors.Errorf("Can't finalize network, output node #%d (%v) is both an input and an output", i, out)
		}

		// check that there are no duplicates
		for o := i + 1; o < len(outputs); o++ {
			if out == outputs[o] {
				return errors.Errorf("Can't finalize network, output #%d (%v) is also #%d", i, out, o)
			}
		}
	}

	if err := net.checkOutputs(outputs); err != nil {
		return err
	}

	for _, n := range net.nodesByID {
		if n.IsInput() || !n.op.CanBeAdjusted(n) || n.opt != nil {
			continue
		}

		if defaultOptimizer == nil {
			return errors.Errorf("Can't finalize network, %v has no Optimizer and there is no default", n)
		}
		n.opt = defaultOptimizer()
	}

	net.outputs = new(nodeGroup)
	net.outputs.add(outputs...)

	numOutValues := 0
	for _, out := range outputs {
		out.outputIndex = numOutValues
		numOutValues += out.Size()
	}

	// inputs always have lower ids than the Nodes they feed, so a single pass is enough
	for _, n := range net.nodesByID {
		if n.IsInput() {
			continue
		}

		n.needsDeltas = n.op.CanBeAdjusted(n)
		for _, in := range n.inputs.nodes {
			n.needsDeltas = n.needsDeltas || in.needsDeltas
		}
	}

	net.cf = cf
	net.stat = finalized
	return nil
}
