// Package host drives a zoned delay kernel the way an audio host does:
// fixed-size blocks, a running sample clock, control values published from
// another goroutine and optional per-sample automation.
package host
