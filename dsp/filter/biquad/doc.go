// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form I processing for a single
// second-order section defined by [Coefficients]. Sections can be chained
// in a fixed-length [Cascade] whose coefficients may be swapped every
// sample without disturbing the filter history.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package biquad
