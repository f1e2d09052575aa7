// Package energy defines the contract between an energy source and the
// devices draining it: load sources report their instantaneous current
// draw, and depletion observers are notified once when the source runs
// out.
package energy
