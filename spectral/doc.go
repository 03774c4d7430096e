// SPDX-License-Identifier: EPL-2.0

// Package spectral picks the strongest frequency bins of one analysis window.
//
// Selection is a bounded insertion sort: a pre-sized array of OutSize zero
// placeholders, ordered by descending magnitude, where each candidate bin is
// either rejected against the weakest slot or inserted in front of the first
// slot it strictly beats. Only bins in [FloorHz, CeilingHz) are candidates,
// and the ceiling is clamped to half the window so mirror bins never appear.
package spectral
