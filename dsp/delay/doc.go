// Package delay provides circular sample histories and the control
// smoother used to move read heads without zipper noise.
//
// [Line] supports integer reads, linearly interpolated forward reads into
// the past and reverse reads ahead of the write cursor. [Smoother] is a
// one-pole glide for delay times and similar control values.
package delay
