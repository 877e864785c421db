// Package response measures the frequency response of the zoned delay's
// color filter, either analytically from the biquad coefficients or
// numerically from an FFT of the filter's impulse response.
package response
