/*
Package pdf provides probability density models over a bounded observable.

Currently it implements the ARGUS background shape: a density with a hard
kinematic cutoff at m = m0, beyond which probability is defined to be zero.
The cutoff is itself a fit parameter, which makes the shape prone to
evaluation errors when m0 is floated below the largest value in the data.
*/
package pdf
