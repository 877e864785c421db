// Package param defines the control surface of the zoned delay kernel.
//
// The table of controls (zone, rate, microRate, microRateFreq, skew,
// repeats, color, halo, mix, hold, flip, pingPong, swap) is fixed; each
// entry has a default and an inclusive range. [Lanes] carries per-block
// or per-sample automation into the audio path, and [Store] hands values
// from a control goroutine to the audio goroutine without locks.
package param
