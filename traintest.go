package bnn

import (
	"github.com/pkg/errors"
)

// Datum is a simple wrapper used to send training samples to the Network
type Datum struct {
	// Inputs is the input of the network. It must have the same size as that of the
	// network's inputs.
	Inputs []float64

	// Outputs is the expected output of the network, given the input.
	Outputs []float64
}

// Fits indicates whether or not a given Datum's dimensions match those of the
// Network, allowing it to be used for training or testing.
func (d Datum) Fits(net *Network) bool {
	return len(d.Inputs) == net.InputSize() && len(d.Outputs) == net.OutputSize()
}

// DataSupplier is the primary method of providing datasets to the Network, either
// for training or testing.
type DataSupplier interface {
	// Get returns the piece of data at the given index, in [0, Len()).
	Get(int) (Datum, error)

	// Len returns the number of pieces of data available.
	Len() int
}

// ResultKind distinguishes the reasons a Result is sent.
type ResultKind int8

const (
	// StatusResult summarizes training since the previous status update.
	StatusResult ResultKind = iota
	// TestResult gives the performance on the test data.
	TestResult
	// EpochResult summarizes a complete pass over the training data.
	EpochResult
)

// A wrapper for sending back the progress of the training or testing
type Result struct {
	Kind ResultKind

	// The iteration the result is being sent before
	Iteration int

	// The epoch in progress, or just finished for EpochResult
	Epoch int

	// Average ELBO loss, and its two terms, since the last Result of the same kind. These are
	// not set for TestResult.
	Loss       float64
	Fit        float64
	Complexity float64

	// Average cost of the posterior predictive mean on the test data. Only set for TestResult.
	Cost float64

	// Confidence interval coverage of the test data. Only set for TestResult.
	Coverage Coverage
}

// TrainArgs gives the arguments to Train. Only TrainData is required; everything else has a
// default.
type TrainArgs struct {
	TrainData DataSupplier

	// TestData is the source of held-out data while training. This can be nil if ShouldTest is
	// also nil
	TestData DataSupplier

	// Epochs is the number of passes over the training data. Defaults to 1.
	Epochs int

	// BatchSize is the number of samples in each mini-batch. The final batch of each epoch may
	// be smaller. Defaults to 1.
	BatchSize int

	// SampleNbr is the number of weight draws the ELBO is averaged over for each batch. Defaults
	// to 1.
	SampleNbr int

	// FitWeight multiplies the cost of the outputs in the ELBO. Defaults to 1.
	FitWeight float64

	// ComplexityWeight multiplies the complexity cost in the ELBO. It is usually 1 over the size
	// of the training data. Zero is allowed.
	ComplexityWeight float64

	// NoShuffle keeps the training data in order instead of shuffling it every epoch
	NoShuffle bool

	// ShouldTest indicates whether or not testing should be done before the current
	// iteration.
	ShouldTest func(int) bool

	// TestSamples is the number of draws used for each test. Defaults to 25.
	TestSamples int

	// StdMultiplier sets the width of the confidence interval used for testing, in standard
	// deviations. Defaults to 2.
	StdMultiplier float64

	// SendStatus indicates whether or not to send back general information about
	// the status of the training since the last time 'true' was returned.
	// SendStatus can be left nil to represent an unconditional false.
	//
	// 'true' will be ignored on iteration 0.
	SendStatus func(int) bool

	// RunCondition will be called at each successive iteration to determine if
	// training should continue. Training will stop if 'false' is returned. Nil means training
	// always continues until all epochs are done.
	RunCondition func(int) bool

	// Update is how testing and status updates are returned.
	Update func(Result)
}

func (args *TrainArgs) setDefaults(net *Network) error {
	if args.TrainData == nil {
		return errors.Errorf("TrainData is nil")
	} else if args.TrainData.Len() == 0 {
		return errors.Errorf("TrainData is empty")
	}

	if args.TestData == nil {
		if args.ShouldTest != nil {
			return errors.Errorf("TestData is nil but ShouldTest is not")
		}
		args.ShouldTest = func(int) bool { return false }
	} else if args.ShouldTest == nil {
		args.ShouldTest = func(int) bool { return false }
	}

	if args.Epochs == 0 {
		args.Epochs = 1
	}
	if args.BatchSize == 0 {
		args.BatchSize = 1
	}
	if args.SampleNbr == 0 {
		args.SampleNbr = 1
	}
	if args.FitWeight == 0 {
		args.FitWeight = 1
	}
	if args.TestSamples == 0 {
		args.TestSamples = 25
	}
	if args.StdMultiplier == 0 {
		args.StdMultiplier = 2
	}

	if args.Epochs < 0 || args.BatchSize < 0 || args.SampleNbr < 0 || args.TestSamples < 0 {
		return errors.Errorf("Epochs, BatchSize, SampleNbr and TestSamples must be >= 0 (%d, %d, %d, %d)",
			args.Epochs, args.BatchSize, args.SampleNbr, args.TestSamples)
	} else if args.ComplexityWeight < 0 || args.FitWeight < 0 {
		return errors.Errorf("FitWeight and ComplexityWeight must be >= 0 (%v, %v)", args.FitWeight, args.ComplexityWeight)
	}

	if args.SendStatus == nil {
		args.SendStatus = func(int) bool { return false }
	}
	if args.RunCondition == nil {
		args.RunCondition = func(int) bool { return true }
	}
	if args.Update == nil {
		args.Update = func(Result) {}
	}

	for _, n := range net.nodesByID {
		if n.IsInput() || !n.op.CanBeAdjusted(n) {
			continue
		}

		if _, ok := n.hp("learning-rate"); !ok {
			return errors.Wrapf(ErrNoHP, "Node %v has no learning-rate", n)
		}
	}

	return nil
}

// Train fits the weight distributions of the Network to the training data by minimizing the
// ELBO loss with mini-batches.
//
// For each batch, the weights are drawn SampleNbr times. For each draw every sample in the batch
// is run through the Network and its cost backpropagated, and then the complexity cost of the
// draw is added. The accumulated gradients are applied once per batch.
func (net *Network) Train(args TrainArgs) error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	} else if net.frozen {
		return ErrFrozen
	}

	if err := args.setDefaults(net); err != nil {
		return err
	}

	net.iter = 0

	var status, epoch elboSum

	order := make([]int, args.TrainData.Len())
	for i := range order {
		order[i] = i
	}

	batch := make([]Datum, 0, args.BatchSize)

	for ep := 0; ep < args.Epochs; ep++ {
		if !args.NoShuffle {
			net.rng.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
		}

		for start := 0; start < len(order); start += args.BatchSize {
			if args.SendStatus(net.iter) && net.iter != 0 && status.size != 0 {
				args.Update(status.result(StatusResult, net.iter, ep))
				status = elboSum{}
			}

			// testing before any update says nothing about training
			if net.iter != 0 && args.ShouldTest(net.iter) {
				r, err := net.testResult(args)
				if err != nil {
					return errors.Wrapf(err, "Testing on iteration %d failed", net.iter)
				}

				r.Iteration, r.Epoch = net.iter, ep
				args.Update(r)
			}

			if !args.RunCondition(net.iter) {
				return nil
			}

			end := start + args.BatchSize
			if end > len(order) {
				end = len(order)
			}

			batch = batch[:0]
			for _, i := range order[start:end] {
				d, err := args.TrainData.Get(i)
				if err != nil {
					return errors.Wrapf(err, "Failed to get training data %d on iteration %d", i, net.iter)
				} else if !d.Fits(net) {
					return errors.Errorf("Training data %d for iteration %d does not fit Network", i, net.iter)
				}

				batch = append(batch, d)
			}

			loss, fit, kl, err := net.elbo(batch, args)
			if err != nil {
				return errors.Wrapf(err, "Failed to get ELBO on iteration %d", net.iter)
			}

			if err = net.adjust(); err != nil {
				return errors.Wrapf(err, "Failed to adjust network on iteration %d", net.iter)
			}

			status.add(loss, fit, kl)
			epoch.add(loss, fit, kl)

			net.iter++
			net.longIter++
		}

		args.Update(epoch.result(EpochResult, net.iter, ep))
		epoch = elboSum{}
	}

	return nil
}

// elbo accumulates the gradients of the sampled ELBO for a single batch, returning the loss and
// its two terms: the average cost and the average complexity cost.
func (net *Network) elbo(batch []Datum, args TrainArgs) (loss, fit, complexity float64, err error) {
	draws := float64(args.SampleNbr)
	scale := args.FitWeight / (float64(len(batch)) * draws)

	for s := 0; s < args.SampleNbr; s++ {
		net.Resample()

		for i, d := range batch {
			c, err := net.correct(d, scale)
			if err != nil {
				return 0, 0, 0, errors.Wrapf(err, "Sample %d of draw %d", i, s)
			}
			fit += c
		}

		complexity += net.complexity(args.ComplexityWeight / draws)
	}

	fit /= float64(len(batch)) * draws
	complexity /= draws
	loss = args.FitWeight*fit + args.ComplexityWeight*complexity
	return loss, fit, complexity, nil
}

// correct runs a single Datum through the Network with the current draw of weights and
// accumulates the gradients of its cost, multiplied by scale. It returns the cost.
func (net *Network) correct(d Datum, scale float64) (float64, error) {
	if err := net.SetInputs(d.Inputs); err != nil {
		return 0, err
	}

	if err := net.evaluate(); err != nil {
		return 0, errors.Wrapf(err, "Getting outputs failed")
	}

	outs := net.outputs.getValues(nil, false)
	cost := net.cf.Cost(outs, d.Outputs)

	if err := net.getDeltas(net.cf.Derivs(outs, d.Outputs)); err != nil {
		return 0, errors.Wrapf(err, "Getting deltas failed")
	}

	if err := net.accumulate(scale); err != nil {
		return 0, errors.Wrapf(err, "Accumulating gradients failed")
	}

	return cost, nil
}

func (net *Network) testResult(args TrainArgs) (Result, error) {
	cost, cov, err := net.test(args.TestData, args.TestSamples, args.StdMultiplier)
	if err != nil {
		return Result{}, err
	}

	return Result{Kind: TestResult, Cost: cost, Coverage: cov}, nil
}

// Test returns the average cost of the posterior predictive mean on the given data, estimated
// with the given number of draws.
func (net *Network) Test(data DataSupplier, samples int) (float64, error) {
	cost, _, err := net.test(data, samples, 1)
	return cost, err
}

type elboSum struct {
	loss, fit, complexity float64
	size                  int
}

func (s *elboSum) add(loss, fit, complexity float64) {
	s.loss += loss
	s.fit += fit
	s.complexity += complexity
	s.size++
}

func (s elboSum) result(kind ResultKind, iter, epoch int) Result {
	r := Result{Kind: kind, Iteration: iter, Epoch: epoch}
	if s.size != 0 {
		r.Loss = s.loss / float64(s.size)
		r.Fit = s.fit / float64(s.size)
		r.Complexity = s.complexity / float64(s.size)
	}
	return r
}
