// Package bnn provides a small framework for Bayesian neural networks trained by variational
// inference ("Bayes by backprop"). Networks are graphs of Nodes, each with an Operator; the
// Operators with weights in the subpackage "operators" keep a distribution over each weight
// instead of a single value.
//
// Creating Networks
//
// The center of all training is the Network, initialized by:
//
//		net := new(bnn.Network).SetSeed(42)
//
// Each Node has an Operator, which determines its values and the backpropagation through it. The
// Operators with weights also need Optimizers, which can be set per Node or by default with
// SetDefaultOptimizer. Importing the subpackage "optimizers" sets Adam as the default.
//
// The standard procedure for a regressor with one hidden layer is:
//
//		in, _ := net.AddInput("latent", 64)
//		hl, _ := net.Add("hidden", operators.BayesLinear(), 128, in)
//		act, _ := net.Add("sigmoid", operators.Logistic(), 128, hl)
//		out, _ := net.Add("output", operators.BayesLinear(), 1, act)
//		net.SetHP("learning-rate", hyperparams.Constant(0.01))
//
//		if err := net.Finalize(costfuncs.MSE(), out); err != nil {
//			return err
//		}
//
// Training
//
// Training minimizes the sampled ELBO loss: the cost of the outputs for several draws of the
// weights, plus the complexity cost (the KL divergence between the weight distributions and their
// prior), weighted by TrainArgs.ComplexityWeight.
//
//		err := net.Train(bnn.TrainArgs{
//			TrainData:        train,
//			Epochs:           100,
//			BatchSize:        16,
//			SampleNbr:        3,
//			ComplexityWeight: 1 / float64(train.Len()),
//		})
//
// Prediction
//
// Every forward pass of an unfrozen Network uses a different draw of its weights. Predict runs an
// input through several draws and returns the mean and standard deviation of the outputs:
//
//		p, err := net.Predict(inputs, 20, 1.0)
//
// Freezing the Network with Freeze(true) makes it use the means of its weight distributions.
//
// Saving and Loading
//
// State returns the serializable form of a Network, and FromState rebuilds it. The types used by
// the Network must be registered, which is done by importing their packages.
package bnn
