package biquad

// Cascade is a fixed-length series of sections. Its length is chosen at
// construction and never changes, so retuning it never allocates.
type Cascade struct {
	sections []Section
}

// NewCascade creates a cascade from one or more coefficient sets.
func NewCascade(coeffs ...Coefficients) *Cascade {
	c := &Cascade{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
	return c
}

// ProcessSample runs x through every section in order.
func (c *Cascade) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place through the full cascade.
func (c *Cascade) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// SetCoefficients retunes the sections while keeping their history.
// Extra coefficient sets are ignored; missing ones leave sections as they
// are.
func (c *Cascade) SetCoefficients(coeffs ...Coefficients) {
	n := len(coeffs)
	if n > len(c.sections) {
		n = len(c.sections)
	}
	for i := 0; i < n; i++ {
		c.sections[i].Coefficients = coeffs[i]
	}
}

// Reset clears all section states.
func (c *Cascade) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// NumSections returns the number of biquad sections.
func (c *Cascade) NumSections() int {
	return len(c.sections)
}

// Section returns a pointer to the i-th section for inspection.
func (c *Cascade) Section(i int) *Section {
	return &c.sections[i]
}
