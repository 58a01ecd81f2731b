package operators

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/geobnn/bnn"
	"github.com/geobnn/bnn/initializers"
	"github.com/geobnn/bnn/priors"
)

// the standard deviation of the initial means and rhos
const initSD float64 = 0.1

type bayesLinear struct {
	In  int `json:"in"`
	Out int `json:"out"`

	MuInit  float64        `json:"posterior_mu_init"`
	RhoInit float64        `json:"posterior_rho_init"`
	Prior   priors.Mixture `json:"prior"`

	// Params holds, in order: the means of the weights, the rhos of the weights, the means of the
	// biases and the rhos of the biases. Weights are stored row-major, Out × In. The standard
	// deviation of each weight is softplus(rho).
	Params []float64 `json:"params"`

	// gradient of the loss w.r.t. each of Params, since the last adjustment
	grads []float64

	// the current draw: noise and resulting weights, with biases after weights
	eps     []float64
	sampled []float64
	w       *mat.Dense
	b       *mat.VecDense

	// gradient of the cost w.r.t. the sampled weights, since the last draw
	drawGrad []float64
	pending  bool

	// scratch space for the deltas of the inputs
	inDeltas *mat.VecDense
}

// BayesLinear returns a fully-connected layer whose weights and biases are independent Gaussian
// distributions rather than single values. Each forward pass uses the current draw of the weights;
// a new draw is made when the Network resamples. Frozen Networks use the means.
//
// The means are initialized from N(0, 0.1²) and the rhos from N(-7, 0.1²). The prior defaults to
// priors.Default().
func BayesLinear() *bayesLinear {
	return &bayesLinear{
		RhoInit: -7,
		Prior:   priors.Default(),
	}
}

// PosteriorInit sets the centers of the distributions that the means and rhos are initialized from
func (l *bayesLinear) PosteriorInit(mu, rho float64) *bayesLinear {
	l.MuInit, l.RhoInit = mu, rho
	return l
}

// WithPrior sets the prior of the weights
func (l *bayesLinear) WithPrior(p priors.Mixture) *bayesLinear {
	l.Prior = p
	return l
}

func (l *bayesLinear) TypeString() string {
	return "bayes-linear"
}

func (l *bayesLinear) numWeights() int {
	return l.In * l.Out
}

// muIndex returns the index in Params of the mean of the i'th sampled value
func (l *bayesLinear) muIndex(i int) int {
	if i < l.numWeights() {
		return i
	}
	return i + l.numWeights()
}

// rhoIndex returns the index in Params of the rho of the i'th sampled value
func (l *bayesLinear) rhoIndex(i int) int {
	if i < l.numWeights() {
		return i + l.numWeights()
	}
	return i + l.numWeights() + l.Out
}

func (l *bayesLinear) Init(n *bnn.Node) error {
	if err := l.Prior.Validate(); err != nil {
		return errors.Wrapf(err, "Invalid prior")
	}

	numSampled := n.NumInputs()*n.Size() + n.Size()

	if l.Params != nil {
		if l.In != n.NumInputs() || l.Out != n.Size() {
			return errors.Errorf("Stored dimensions do not match Node (%d×%d != %d×%d)", l.Out, l.In, n.Size(), n.NumInputs())
		} else if len(l.Params) != 2*numSampled {
			return errors.Errorf("Wrong number of stored parameters (%d != %d)", len(l.Params), 2*numSampled)
		}
	} else {
		l.In, l.Out = n.NumInputs(), n.Size()
		l.Params = make([]float64, 2*numSampled)

		nw := l.numWeights()
		mus := initializers.Random(initializers.Normal().Mean(l.MuInit).SD(initSD))
		rhos := initializers.Random(initializers.Normal().Mean(l.RhoInit).SD(initSD))

		mus.Set(n, l.Params[:nw])
		rhos.Set(n, l.Params[nw:2*nw])
		mus.Set(n, l.Params[2*nw:2*nw+l.Out])
		rhos.Set(n, l.Params[2*nw+l.Out:])
	}

	l.grads = make([]float64, len(l.Params))
	l.eps = make([]float64, numSampled)
	l.sampled = make([]float64, numSampled)
	l.drawGrad = make([]float64, numSampled)
	l.w = mat.NewDense(l.Out, l.In, l.sampled[:l.numWeights()])
	l.b = mat.NewVecDense(l.Out, l.sampled[l.numWeights():])
	l.inDeltas = mat.NewVecDense(l.In, nil)

	l.draw(n.Rand())
	return nil
}

// weights returns the weights and biases used for evaluation
func (l *bayesLinear) weights(n *bnn.Node) (*mat.Dense, *mat.VecDense) {
	if n.Frozen() {
		nw := l.numWeights()
		return mat.NewDense(l.Out, l.In, l.Params[:nw]), mat.NewVecDense(l.Out, l.Params[2*nw:2*nw+l.Out])
	}

	return l.w, l.b
}

func (l *bayesLinear) Evaluate(n *bnn.Node, values []float64) error {
	w, b := l.weights(n)

	x := mat.NewVecDense(l.In, n.Inputs())
	out := mat.NewVecDense(l.Out, values)
	out.MulVec(w, x)
	out.AddVec(out, b)

	return nil
}

func (l *bayesLinear) InputDeltas(n *bnn.Node, add func(int, float64), start, end int) error {
	w, _ := l.weights(n)

	l.inDeltas.MulVec(w.T(), mat.NewVecDense(l.Out, n.Deltas()))
	for i := start; i < end; i++ {
		add(i-start, l.inDeltas.AtVec(i))
	}

	return nil
}

func (l *bayesLinear) CanBeAdjusted(n *bnn.Node) bool {
	return true
}

func (l *bayesLinear) Accumulate(n *bnn.Node, scale float64) error {
	if n.Frozen() {
		return bnn.ErrFrozen
	}

	deltas := mat.NewVecDense(l.Out, n.Deltas())
	g := mat.NewDense(l.Out, l.In, l.drawGrad[:l.numWeights()])
	g.RankOne(g, scale, deltas, mat.NewVecDense(l.In, n.Inputs()))
	floats.AddScaled(l.drawGrad[l.numWeights():], scale, n.Deltas())

	l.pending = true
	return nil
}

// fold moves the gradients w.r.t. the sampled weights into the gradients w.r.t. the parameters,
// using the noise of the current draw.
func (l *bayesLinear) fold() {
	if !l.pending {
		return
	}

	for i, g := range l.drawGrad {
		mu, rho := l.muIndex(i), l.rhoIndex(i)
		l.grads[mu] += g
		l.grads[rho] += g * l.eps[i] * sigmoid(l.Params[rho])
		l.drawGrad[i] = 0
	}

	l.pending = false
}

// refresh recalculates the sampled weights from the parameters and the noise
func (l *bayesLinear) refresh() {
	for i, e := range l.eps {
		l.sampled[i] = l.Params[l.muIndex(i)] + softplus(l.Params[l.rhoIndex(i)])*e
	}
}

func (l *bayesLinear) draw(r *rand.Rand) {
	for i := range l.eps {
		l.eps[i] = r.NormFloat64()
	}
	l.refresh()
}

func (l *bayesLinear) Resample(n *bnn.Node, r *rand.Rand) {
	l.fold()
	l.draw(r)
}

// Complexity gives the Monte Carlo estimate of the KL divergence from the prior at the current
// draw: the sum of log q(w) - log p(w).
func (l *bayesLinear) Complexity(n *bnn.Node, weight float64) float64 {
	var kl float64
	for i, w := range l.sampled {
		mu, rho := l.muIndex(i), l.rhoIndex(i)
		σ := softplus(l.Params[rho])

		q := distuv.Normal{Mu: l.Params[mu], Sigma: σ}
		kl += q.LogProb(w) - l.Prior.LogProb(w)

		if weight != 0 {
			// log q is constant in mu for a fixed draw, and only depends on sigma through its
			// normalization
			g := l.Prior.NegLogGrad(w)
			l.grads[mu] += weight * g
			l.grads[rho] += weight * (g*l.eps[i] - 1/σ) * sigmoid(l.Params[rho])
		}
	}

	return kl
}

func (l *bayesLinear) Adjust(n *bnn.Node, learningRate float64) error {
	l.fold()

	grad := func(i int) float64 {
		return l.grads[i]
	}

	add := func(i int, addend float64) {
		l.Params[i] += addend
	}

	if err := n.Optimizer().Run(n, len(l.Params), grad, add, learningRate); err != nil {
		return errors.Wrapf(err, "Couldn't adjust Node %v, running optimizer failed", n)
	}

	for i := range l.grads {
		l.grads[i] = 0
	}

	for _, p := range l.Params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return errors.Errorf("Parameters of Node %v are no longer finite", n)
		}
	}

	l.refresh()
	return nil
}

func (l *bayesLinear) Get() interface{} {
	return l
}

func (l *bayesLinear) Blank() interface{} {
	return l
}
