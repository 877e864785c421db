// Package design provides RBJ "audio EQ cookbook" biquad designers.
//
// Every designer takes a frequency in Hz, an optional gain in dB, a
// quality factor and the sample rate, and returns normalized coefficients
// consumable by dsp/filter/biquad. Frequencies outside (0, Nyquist) yield
// zero coefficients; non-positive Q falls back to [DefaultQ].
package design
