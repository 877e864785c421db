package core

// Zero32 sets all values in buf to 0.
func Zero32(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}

// MinLen returns the length of the shortest non-nil slice in bufs, or 0 if
// none is given.
func MinLen(bufs ...[]float32) int {
	n := -1
	for _, b := range bufs {
		if b == nil {
			continue
		}
		if n < 0 || len(b) < n {
			n = len(b)
		}
	}
	if n < 0 {
		return 0
	}
	return n
}
