package regressor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geobnn/bnn"
)

func TestNewShape(t *testing.T) {
	net, err := New(Config{Inputs: 8, Outputs: 2})
	require.NoError(t, err)

	require.Equal(t, 8, net.InputSize())
	require.Equal(t, 2, net.OutputSize())
	require.Equal(t, 128, net.Node(HiddenName).Size())
	require.Nil(t, net.Node(SquashName))

	p, err := net.Predict(make([]float64, 8), 5, 1)
	require.NoError(t, err)
	require.Len(t, p.Mean, 2)
	require.Len(t, p.Std, 2)
}

func TestNewSigmoidOutput(t *testing.T) {
	net, err := New(Config{Inputs: 3, Hidden: 4, Outputs: 1, OutputType: Sigmoid, PosteriorRho: -1})
	require.NoError(t, err)
	require.NotNil(t, net.Node(SquashName))

	draws, err := net.Sample([][]float64{{10, -10, 3}}, 20)
	require.NoError(t, err)
	for _, d := range draws {
		require.Greater(t, d[0][0], 0.0)
		require.Less(t, d[0][0], 1.0)
	}
}

func TestNewErrors(t *testing.T) {
	cases := map[string]Config{
		"no inputs":   {Outputs: 1},
		"no outputs":  {Inputs: 1},
		"output type": {Inputs: 1, Outputs: 1, OutputType: "softmax"},
		"activation":  {Inputs: 1, Outputs: 1, Activation: "swish"},
		"optimizer":   {Inputs: 1, Outputs: 1, Optimizer: "rmsprop"},
		"cost":        {Inputs: 1, Outputs: 1, Cost: "hinge"},
		"lr":          {Inputs: 1, Outputs: 1, LearningRate: -1},
	}

	for name, c := range cases {
		_, err := New(c)
		require.Error(t, err, name)
	}
}

func TestTrainLowersLoss(t *testing.T) {
	// a noiseless linear relation
	var data bnn.Datums
	for i := 0; i < 64; i++ {
		x := float64(i)/32 - 1
		y := x / 2
		data = append(data, bnn.Datum{Inputs: []float64{x, -y}, Outputs: []float64{0.5*x - y + 0.1}})
	}

	net, err := New(Config{Inputs: 2, Hidden: 16, Outputs: 1, Seed: 11})
	require.NoError(t, err)

	before, err := net.Test(data, 10)
	require.NoError(t, err)

	err = net.Train(bnn.TrainArgs{
		TrainData:        data,
		Epochs:           30,
		BatchSize:        16,
		SampleNbr:        3,
		ComplexityWeight: 1 / float64(len(data)),
	})
	require.NoError(t, err)

	after, err := net.Test(data, 10)
	require.NoError(t, err)
	require.Less(t, after, before)
}

func TestLearningRateSteps(t *testing.T) {
	net, err := New(Config{Inputs: 1, Hidden: 2, Outputs: 1, LRSteps: []Step{{Iter: 2, Value: 0.001}, {Iter: 4, Value: 0.0001}}})
	require.NoError(t, err)

	n := net.Node(HiddenName)
	require.Equal(t, 0.01, n.HP("learning-rate"))

	data := bnn.Datums{{Inputs: []float64{0}, Outputs: []float64{0}}, {Inputs: []float64{1}, Outputs: []float64{1}}}
	require.NoError(t, net.Train(bnn.TrainArgs{TrainData: data}))
	require.Equal(t, 0.001, n.HP("learning-rate"))

	require.NoError(t, net.Train(bnn.TrainArgs{TrainData: data}))
	require.Equal(t, 0.0001, n.HP("learning-rate"))

	// the schedule is saved with the network
	st, err := net.State()
	require.NoError(t, err)
	require.Equal(t, "step", st.HyperParams["learning-rate"].Type)
}

func TestLearningRate(t *testing.T) {
	hp, err := LearningRate(0.1, nil)
	require.NoError(t, err)
	require.Equal(t, "constant", hp.TypeString())
	require.Equal(t, 0.1, hp.Value(1000))

	hp, err = LearningRate(0.1, []Step{{Iter: 10, Value: 0.05}})
	require.NoError(t, err)
	require.Equal(t, 0.1, hp.Value(9))
	require.Equal(t, 0.05, hp.Value(10))

	_, err = LearningRate(0, nil)
	require.Error(t, err)
	_, err = LearningRate(0.1, []Step{{Iter: 0, Value: 0.05}})
	require.Error(t, err, "step at the first iteration")
	_, err = LearningRate(0.1, []Step{{Iter: 5, Value: 0.05}, {Iter: 5, Value: 0.01}})
	require.Error(t, err, "steps out of order")
	_, err = LearningRate(0.1, []Step{{Iter: 5, Value: -1}})
	require.Error(t, err)
}
