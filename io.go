package bnn

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// State is the serializable form of a finalized Network: its structure, the weights held by its
// Operators and the state of its Optimizers. It is designed to be encoded as JSON as part of a
// larger document.
type State struct {
	Cost        Encoded            `json:"cost"`
	Nodes       []NodeState        `json:"nodes"`
	Outputs     []int              `json:"outputs"`
	HyperParams map[string]Encoded `json:"hyper_params,omitempty"`
	Iter        int                `json:"iter"`
	Seed        uint64             `json:"seed"`
}

// NodeState is the serializable form of a single Node. Input Nodes have no Operator.
type NodeState struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Size        int                `json:"size"`
	Inputs      []int              `json:"inputs,omitempty"`
	Operator    *Encoded           `json:"operator,omitempty"`
	Optimizer   *Encoded           `json:"optimizer,omitempty"`
	HyperParams map[string]Encoded `json:"hyper_params,omitempty"`
}

// Encoded is a registered type, identified by its TypeString, together with the JSON encoding of
// the value returned by its Get method.
type Encoded struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

type typed interface {
	TypeString() string
	Get() interface{}
}

func encode(t typed) (Encoded, error) {
	e := Encoded{Type: t.TypeString()}

	v := t.Get()
	if v == nil {
		return e, nil
	}

	bs, err := json.Marshal(v)
	if err != nil {
		return e, errors.Wrapf(err, "Failed to encode %q", e.Type)
	}

	e.Value = bs
	return e, nil
}

// decodeInto fills the value given by blank from the encoding
func (e Encoded) decodeInto(blank interface{}) error {
	if blank == nil || len(e.Value) == 0 {
		return nil
	}

	return errors.Wrapf(json.Unmarshal(e.Value, blank), "Failed to decode %q", e.Type)
}

func encodeHPs(hps map[string]HyperParameter) (map[string]Encoded, error) {
	if len(hps) == 0 {
		return nil, nil
	}

	m := make(map[string]Encoded, len(hps))
	for name, hp := range hps {
		e, err := encode(hp)
		if err != nil {
			return nil, errors.Wrapf(err, "HyperParameter %q", name)
		}
		m[name] = e
	}

	return m, nil
}

func decodeHPs(m map[string]Encoded) (map[string]HyperParameter, error) {
	hps := make(map[string]HyperParameter, len(m))
	for name, e := range m {
		hp, err := newHyperParameter(e.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "HyperParameter %q", name)
		}

		if err = e.decodeInto(hp.Blank()); err != nil {
			return nil, errors.Wrapf(err, "HyperParameter %q", name)
		}
		hps[name] = hp
	}

	return hps, nil
}

// State returns the serializable form of the Network. The Network must be finalized.
func (net *Network) State() (*State, error) {
	if net.stat < finalized {
		return nil, ErrNetNotFinalized
	}

	st := &State{
		Iter: net.longIter,
		Seed: net.seed,
	}

	var err error
	if st.Cost, err = encode(net.cf); err != nil {
		return nil, errors.Wrapf(err, "CostFunction")
	}

	if st.HyperParams, err = encodeHPs(net.hyperParams); err != nil {
		return nil, err
	}

	for _, out := range net.outputs.nodes {
		st.Outputs = append(st.Outputs, out.id)
	}

	for _, n := range net.nodesByID {
		ns := NodeState{ID: n.id, Name: n.name, Size: n.Size()}

		if !n.IsInput() {
			for _, in := range n.inputs.nodes {
				ns.Inputs = append(ns.Inputs, in.id)
			}

			op, err := encode(n.op)
			if err != nil {
				return nil, errors.Wrapf(err, "Operator of Node %v", n)
			}
			ns.Operator = &op
		}

		if n.opt != nil {
			opt, err := encode(n.opt)
			if err != nil {
				return nil, errors.Wrapf(err, "Optimizer of Node %v", n)
			}
			ns.Optimizer = &opt
		}

		if ns.HyperParams, err = encodeHPs(n.hyperParams); err != nil {
			return nil, errors.Wrapf(err, "Node %v", n)
		}

		st.Nodes = append(st.Nodes, ns)
	}

	return st, nil
}

// FromState rebuilds a finalized Network from its serialized form. Every Operator, Optimizer,
// HyperParameter and CostFunction used must have been registered, usually by importing the
// package that provides it.
//
// The random number generator is reset to the stored seed, so the draws of a loaded Network
// start over.
func FromState(st *State) (*Network, error) {
	if st == nil {
		return nil, NilArgError{"State"}
	}

	net := new(Network)
	net.SetSeed(st.Seed)
	net.init()

	for i, ns := range st.Nodes {
		if ns.ID != i {
			return nil, errors.Errorf("Node %q has id %d at index %d", ns.Name, ns.ID, i)
		}

		var n *Node
		var err error

		if ns.Operator == nil {
			if n, err = net.AddInput(ns.Name, ns.Size); err != nil {
				return nil, errors.Wrapf(err, "Failed to add input Node %q", ns.Name)
			}
		} else {
			op, err := newOperator(ns.Operator.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "Node %q", ns.Name)
			} else if err = ns.Operator.decodeInto(op.Blank()); err != nil {
				return nil, errors.Wrapf(err, "Operator of Node %q", ns.Name)
			}

			inputs := make([]*Node, len(ns.Inputs))
			for j, id := range ns.Inputs {
				if id < 0 || id >= i {
					return nil, errors.Errorf("Input %d of Node %q has invalid id %d", j, ns.Name, id)
				}
				inputs[j] = net.nodesByID[id]
			}

			if n, err = net.Add(ns.Name, op, ns.Size, inputs...); err != nil {
				return nil, errors.Wrapf(err, "Failed to add Node %q", ns.Name)
			}
		}

		if ns.Optimizer != nil {
			opt, err := newOptimizer(ns.Optimizer.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "Node %q", ns.Name)
			} else if err = ns.Optimizer.decodeInto(opt.Blank()); err != nil {
				return nil, errors.Wrapf(err, "Optimizer of Node %q", ns.Name)
			}
			n.SetOptimizer(opt)
		}

		if len(ns.HyperParams) != 0 {
			if n.hyperParams, err = decodeHPs(ns.HyperParams); err != nil {
				return nil, errors.Wrapf(err, "Node %q", ns.Name)
			}
		}
	}

	hps, err := decodeHPs(st.HyperParams)
	if err != nil {
		return nil, err
	}
	for name, hp := range hps {
		net.SetHP(name, hp)
	}

	cf, err := newCostFunction(st.Cost.Type)
	if err != nil {
		return nil, err
	} else if err = st.Cost.decodeInto(cf.Blank()); err != nil {
		return nil, errors.Wrapf(err, "CostFunction")
	}

	outputs := make([]*Node, len(st.Outputs))
	for i, id := range st.Outputs {
		if id < 0 || id >= len(net.nodesByID) {
			return nil, errors.Errorf("Output %d has invalid id %d", i, id)
		}
		outputs[i] = net.nodesByID[id]
	}

	if err = net.Finalize(cf, outputs...); err != nil {
		return nil, errors.Wrapf(err, "Failed to finalize Network")
	}

	net.longIter = st.Iter
	return net, nil
}
