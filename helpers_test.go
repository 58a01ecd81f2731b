package bnn

import (
	"math/rand/v2"
)

// shift adds a learned bias and, unless frozen, a small amount of noise to each input value
type shift struct {
	Bias  []float64 `json:"bias"`
	noise []float64
	grads []float64
}

const shiftNoise = 0.01

func (s *shift) Init(n *Node) error {
	if n.Size() != n.NumInputs() {
		return SizeMismatchError{n.NumInputs(), n.Size(), "shift values"}
	}

	if s.Bias == nil {
		s.Bias = make([]float64, n.Size())
	}
	s.noise = make([]float64, n.Size())
	s.grads = make([]float64, n.Size())
	return nil
}

func (s *shift) TypeString() string { return "test-shift" }

func (s *shift) Evaluate(n *Node, values []float64) error {
	for i, in := range n.Inputs() {
		values[i] = in + s.Bias[i]
		if !n.Frozen() {
			values[i] += s.noise[i]
		}
	}
	return nil
}

func (s *shift) InputDeltas(n *Node, add func(int, float64), start, end int) error {
	for i := start; i < end; i++ {
		add(i-start, n.Delta(i))
	}
	return nil
}

func (s *shift) CanBeAdjusted(n *Node) bool { return true }

func (s *shift) Accumulate(n *Node, scale float64) error {
	for i := range s.grads {
		s.grads[i] += scale * n.Delta(i)
	}
	return nil
}

func (s *shift) Adjust(n *Node, learningRate float64) error {
	grad := func(i int) float64 { return s.grads[i] }
	add := func(i int, addend float64) { s.Bias[i] += addend }

	if err := n.Optimizer().Run(n, len(s.Bias), grad, add, learningRate); err != nil {
		return err
	}

	for i := range s.grads {
		s.grads[i] = 0
	}
	return nil
}

func (s *shift) Resample(n *Node, r *rand.Rand) {
	for i := range s.noise {
		s.noise[i] = shiftNoise * r.NormFloat64()
	}
}

func (s *shift) Complexity(n *Node, weight float64) float64 {
	var sum float64
	for i, b := range s.Bias {
		sum += b * b / 2
		s.grads[i] += weight * b
	}
	return sum
}

func (s *shift) Get() interface{}   { return *s }
func (s *shift) Blank() interface{} { return s }

type testSGD struct{}

func (testSGD) Run(n *Node, size int, grad func(int) float64, add func(int, float64), learningRate float64) error {
	for i := 0; i < size; i++ {
		add(i, -learningRate*grad(i))
	}
	return nil
}

func (testSGD) TypeString() string { return "test-sgd" }
func (testSGD) Get() interface{}   { return nil }
func (testSGD) Blank() interface{} { return nil }

type fixed float64

func (f *fixed) TypeString() string      { return "test-fixed" }
func (f *fixed) Value(iter int) float64 { return float64(*f) }
func (f *fixed) Get() interface{}        { return float64(*f) }
func (f *fixed) Blank() interface{}      { return (*float64)(f) }

func lr(v float64) *fixed {
	f := fixed(v)
	return &f
}

type sqErr struct{}

func (sqErr) TypeString() string { return "test-sq-err" }

func (sqErr) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		d := outs[i] - targets[i]
		sum += d * d
	}
	return sum / float64(len(outs))
}

func (sqErr) Derivs(outs, targets []float64) []float64 {
	ds := make([]float64, len(outs))
	for i := range outs {
		ds[i] = 2 * (outs[i] - targets[i]) / float64(len(outs))
	}
	return ds
}

func (sqErr) Get() interface{}   { return nil }
func (sqErr) Blank() interface{} { return nil }

func init() {
	list := []interface{}{
		func() Operator { return new(shift) },
		func() Optimizer { return testSGD{} },
		func() HyperParameter { return lr(0) },
		func() CostFunction { return sqErr{} },
	}

	if err := RegisterAll(list); err != nil {
		panic(err)
	}
}

// newShiftNet returns a finalized Network with a single shift Node of the given size
func newShiftNet(size int) (*Network, *shift) {
	net := new(Network).SetSeed(3)

	in, err := net.AddInput("in", size)
	if err != nil {
		panic(err)
	}

	s := new(shift)
	out, err := net.Add("shift", s, size, in)
	if err != nil {
		panic(err)
	}
	out.SetOptimizer(testSGD{})

	net.SetHP("learning-rate", lr(0.1))
	if err = net.Finalize(sqErr{}, out); err != nil {
		panic(err)
	}

	return net, s
}

// offsetData gives targets equal to the inputs plus offset
func offsetData(n int, offset float64) Datums {
	ds := make(Datums, n)
	for i := range ds {
		x := float64(i)/float64(n) - 0.5
		ds[i] = Datum{Inputs: []float64{x, -x}, Outputs: []float64{x + offset, -x + offset}}
	}
	return ds
}
