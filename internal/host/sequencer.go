package host

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-zonedelay/dsp/core"
)

const (
	// StepCount is the number of steps in a sequencer pattern.
	StepCount = 16

	minDecaySeconds = 0.01
	maxVoices       = 64
	attackSeconds   = 0.005
)

// Waveform selects the oscillator shape of sequencer voices.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSaw
	WaveSquare
)

// ParseWaveform maps a waveform name to its value.
func ParseWaveform(name string) (Waveform, error) {
	switch name {
	case "sine", "":
		return WaveSine, nil
	case "triangle":
		return WaveTriangle, nil
	case "saw":
		return WaveSaw, nil
	case "square":
		return WaveSquare, nil
	default:
		return WaveSine, fmt.Errorf("unknown waveform: %q", name)
	}
}

// Step is one sequencer step.
type Step struct {
	Enabled bool
	FreqHz  float64
}

type voice struct {
	waveform    Waveform
	phase       float64
	phaseStep   float64
	ageSamples  int
	decaySample int
}

// Sequencer is a 16-step pulse generator used as a test source for the
// delay: short enveloped tones make every repeat easy to hear.
type Sequencer struct {
	sampleRate float64
	tempoBPM   float64
	decaySec   float64
	shuffle    float64
	waveform   Waveform
	running    bool

	steps       [StepCount]Step
	currentStep int

	samplesUntilNextStep float64
	voices               []voice
}

// NewSequencer returns a stopped sequencer with a four-on-the-floor
// pattern.
func NewSequencer(sampleRate float64) (*Sequencer, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("sequencer sample rate must be > 0: %f", sampleRate)
	}
	s := &Sequencer{
		sampleRate: sampleRate,
		tempoBPM:   110,
		decaySec:   0.2,
		voices:     make([]voice, 0, maxVoices),
	}
	for i := range s.steps {
		s.steps[i] = Step{Enabled: i%4 == 0, FreqHz: defaultStepFreq(i)}
	}
	return s, nil
}

// SetTransport updates tempo, decay and shuffle amount.
func (s *Sequencer) SetTransport(tempoBPM, decaySec, shuffle float64) {
	if tempoBPM > 0 {
		s.tempoBPM = tempoBPM
	}
	if decaySec < minDecaySeconds {
		decaySec = minDecaySeconds
	}
	s.decaySec = decaySec
	s.shuffle = core.Clamp(shuffle, 0, 1)
}

// SetWaveform selects the oscillator for newly triggered voices.
func (s *Sequencer) SetWaveform(w Waveform) {
	s.waveform = w
}

// SetRunning starts or stops triggering. Starting rewinds to step 0.
func (s *Sequencer) SetRunning(running bool) {
	if running && !s.running {
		s.currentStep = 0
		s.samplesUntilNextStep = 0
	}
	s.running = running
}

// SetSteps replaces up to StepCount steps of the pattern.
func (s *Sequencer) SetSteps(steps []Step) {
	for i := 0; i < StepCount && i < len(steps); i++ {
		cfg := steps[i]
		if cfg.FreqHz <= 0 {
			cfg.FreqHz = 110
		}
		s.steps[i] = cfg
	}
}

// CurrentStep returns the index of the next step to trigger.
func (s *Sequencer) CurrentStep() int {
	return s.currentStep
}

// Render fills dst with mono samples. Step k of a running pattern
// triggers on the sample k step durations after SetRunning(true).
func (s *Sequencer) Render(dst []float32) {
	for i := range dst {
		if s.running {
			for s.samplesUntilNextStep <= 0 {
				s.triggerCurrentStep()
				s.samplesUntilNextStep += s.stepDurationSamples(s.currentStep)
				s.currentStep = (s.currentStep + 1) % StepCount
			}
			s.samplesUntilNextStep--
		}
		dst[i] = float32(s.nextSample())
	}
}

func (s *Sequencer) triggerCurrentStep() {
	step := s.steps[s.currentStep]
	if !step.Enabled {
		return
	}
	if len(s.voices) >= maxVoices {
		copy(s.voices, s.voices[1:])
		s.voices = s.voices[:maxVoices-1]
	}
	s.voices = append(s.voices, voice{
		waveform:    s.waveform,
		phaseStep:   2 * math.Pi * step.FreqHz / s.sampleRate,
		decaySample: max(1, int(s.decaySec*s.sampleRate)),
	})
}

func (s *Sequencer) nextSample() float64 {
	if len(s.voices) == 0 {
		return 0
	}
	attack := max(1, int(attackSeconds*s.sampleRate))

	sum := 0.0
	write := 0
	for i := range s.voices {
		v := s.voices[i]
		if v.ageSamples >= v.decaySample {
			continue
		}

		sum += envelope(v.ageSamples, attack, v.decaySample) * waveSample(v.waveform, v.phase)

		v.phase += v.phaseStep
		if v.phase > math.Pi {
			v.phase -= 2 * math.Pi
		}
		v.ageSamples++
		s.voices[write] = v
		write++
	}
	s.voices = s.voices[:write]
	return sum
}

// stepDurationSamples returns the length of a sixteenth note, stretched
// on even steps and shortened on odd ones by the shuffle amount.
func (s *Sequencer) stepDurationSamples(step int) float64 {
	base := s.sampleRate * 60.0 / s.tempoBPM / 4.0
	ratio := (1.0 / 3.0) * math.Pow(s.shuffle, 1.6)
	if ratio <= 0 {
		return base
	}
	if step%2 == 0 {
		return base * (1 + ratio)
	}
	return base * (1 - ratio)
}

func envelope(age, attack, decay int) float64 {
	const (
		start = 0.0001
		peak  = 0.22
		end   = 0.0001
	)

	if age < attack {
		t := float64(age) / float64(attack)
		return start * math.Pow(peak/start, t)
	}
	if decay <= attack {
		return end
	}
	t := float64(age-attack) / float64(decay-attack)
	return peak * math.Pow(end/peak, t)
}

func defaultStepFreq(i int) float64 {
	defaults := [...]float64{130.81, 164.81, 196, 220, 261.63, 329.63, 392, 440}
	return defaults[i%len(defaults)]
}

func waveSample(w Waveform, phase float64) float64 {
	switch w {
	case WaveTriangle:
		return (2 / math.Pi) * math.Asin(math.Sin(phase))
	case WaveSaw:
		return phase / math.Pi
	case WaveSquare:
		if math.Sin(phase) >= 0 {
			return 1
		}
		return -1
	default:
		return math.Sin(phase)
	}
}
