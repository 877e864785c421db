// Package zonedelay implements a stereo delay whose time is chosen from
// four zones spanning a few milliseconds to ten seconds.
//
// Each channel runs the same chain per sample: a forward or reverse read
// from a circular buffer, optional ping-pong routing, a two-section tone
// filter swept by the color control, a four-stage allpass halo, a
// color-dependent saturator and a feedback write. A hold switch freezes
// the buffer by reading from a snapshot taken on the rising edge.
//
// Kernel.Process consumes one host block at a time with per-sample or
// block-constant automation from package param. It never allocates.
package zonedelay
