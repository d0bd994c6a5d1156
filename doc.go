/*
Package nllfit computes unbinned maximum-likelihood fits of probability
densities whose support has a sharp, parameter-dependent kinematic cutoff.

The central design point is error handling during likelihood evaluations:
when the cutoff parameter is floated below the largest value in the data,
events beyond the cutoff have zero probability and their -log(L)
contributions are undefined. An evaluation error policy decides what such
events contribute. The default Wall policy substitutes a large finite
penalty, repelling the minimizer from the broken region; the Passthrough
policy hands the actual broken values to the minimizer, which can create
spurious minima and is only useful for diagnosis.

# Usage

	obs := domain.NewObservable("m", 5.20, 5.30)
	m0 := domain.NewBoundedParameter("m0", 5.291, 5.20, 5.30)
	k := domain.NewBoundedParameter("k", -30, -50, -10)
	model := pdf.NewArgus(obs, m0, k)

	data, _ := model.Generate(1000)
	fitter, _ := nllfit.New(model, data, nllfit.WithPolicy(policy.Wall(10)))
	result, _ := fitter.Fit(context.Background())

A likelihood curve near the problematic region is produced with Scan:

	curve, _ := fitter.Scan("m0", 5.288, 5.293, 51,
		nllfit.ShiftToZero(), nllfit.EvalErrorValue(result.NLL+10))
*/
package nllfit
