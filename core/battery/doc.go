// Package battery implements the RV-model discharge engine for a single
// Li-ion cell: a piecewise-constant load history, the diffusion-recovery
// series that turns it into an effective accumulated discharge, the
// empirical polarization voltage curve, and the Cell tracker that ties
// them to a virtual-time scheduler and raises depletion notifications.
//
// The model follows Rakhmatov and Vrudhula's analytical battery model,
// fitted here against the Panasonic CGR18650DA discharge curves.
package battery
