package optimizers

import (
	"github.com/geobnn/bnn"
)

type gradientdescent int8

// GradientDescent returns plain stochastic gradient descent: each weight moves by the learning
// rate times its gradient.
func GradientDescent() *gradientdescent {
	g := gradientdescent(0)
	return &g
}

// SGD is a proxy for GradientDescent
func SGD() *gradientdescent {
	return GradientDescent()
}

func (g *gradientdescent) TypeString() string {
	return "sgd"
}

func (g *gradientdescent) Run(n *bnn.Node, size int, grad func(int) float64, add func(int, float64), learningRate float64) error {
	for i := 0; i < size; i++ {
		add(i, -learningRate*grad(i))
	}

	return nil
}

func (g *gradientdescent) Get() interface{} {
	return nil
}

func (g *gradientdescent) Blank() interface{} {
	return nil
}
