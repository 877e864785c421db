package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-zonedelay/dsp/core"
	"github.com/cwbudde/algo-zonedelay/dsp/effects/zonedelay"
	"github.com/cwbudde/algo-zonedelay/dsp/param"
	"github.com/cwbudde/algo-zonedelay/internal/host"
)

// setting is one name=value control override.
type setting struct {
	desc  param.Descriptor
	value float64
}

// settingsFlag collects repeated -set name=value flags.
type settingsFlag []setting

func (s *settingsFlag) String() string {
	parts := make([]string, len(*s))
	for i, st := range *s {
		parts[i] = fmt.Sprintf("%s=%g", st.desc.Name, st.value)
	}
	return strings.Join(parts, ",")
}

func (s *settingsFlag) Set(v string) error {
	st, err := parseSetting(v)
	if err != nil {
		return err
	}
	*s = append(*s, st)
	return nil
}

func parseSetting(v string) (setting, error) {
	name, raw, ok := strings.Cut(v, "=")
	if !ok {
		return setting{}, fmt.Errorf("setting must be name=value: %q", v)
	}
	d, ok := param.Lookup(strings.TrimSpace(name))
	if !ok {
		return setting{}, fmt.Errorf("unknown control: %q", name)
	}
	raw = strings.TrimSpace(raw)
	var value float64
	switch strings.ToLower(raw) {
	case "on", "true":
		value = 1
	case "off", "false":
		value = 0
	default:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return setting{}, fmt.Errorf("%s value: %w", d.Name, err)
		}
		value = f
	}
	if err := d.Validate(value); err != nil {
		return setting{}, err
	}
	return setting{desc: d, value: value}, nil
}

// engineFlags are shared by every command that runs the delay.
type engineFlags struct {
	settings  settingsFlag
	blockSize int
	gain      float64
	maxDelay  float64
}

func (f *engineFlags) register(fs *flag.FlagSet) {
	fs.Var(&f.settings, "set", "control override name=value (repeatable, see 'zonedelay params')")
	fs.IntVar(&f.blockSize, "block", 128, "processing block size in samples")
	fs.Float64Var(&f.gain, "gain", 1, "linear output gain")
	fs.Float64Var(&f.maxDelay, "max-delay", 10, "delay buffer length in seconds")
}

func (f *engineFlags) newEngine(sampleRate float64) (*host.Engine, error) {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(f.blockSize),
	)
	e, err := host.NewEngine(cfg, zonedelay.WithMaxDelaySeconds(f.maxDelay))
	if err != nil {
		return nil, err
	}
	for _, st := range f.settings {
		if err := e.SetParam(st.desc.Name, st.value); err != nil {
			return nil, err
		}
	}
	if err := e.SetMasterGain(f.gain); err != nil {
		return nil, err
	}
	return e, nil
}

// overrides reports whether a -set flag names id.
func (f *engineFlags) overrides(id param.ID) bool {
	for _, st := range f.settings {
		if st.desc.ID == id {
			return true
		}
	}
	return false
}
