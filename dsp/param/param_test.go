package param

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableMatchesControlSurface(t *testing.T) {
	want := []struct {
		name     string
		def      float64
		min, max float64
	}{
		{"zone", 1, 0, 3},
		{"rate", 0.5, 0, 1},
		{"microRate", 0, 0, 1},
		{"microRateFreq", 2, 0.1, 8},
		{"skew", 0, -1, 1},
		{"repeats", 0.3, 0, 1.2},
		{"color", 0.5, 0, 1},
		{"halo", 0, 0, 1},
		{"mix", 0, 0, 1},
		{"hold", 0, 0, 1},
		{"flip", 0, 0, 1},
		{"pingPong", 0, 0, 1},
		{"swap", 0, 0, 1},
	}

	ds := Descriptors()
	require.Len(t, ds, int(Count))
	for i, w := range want {
		d := ds[i]
		require.Equal(t, ID(i), d.ID)
		require.Equal(t, w.name, d.Name)
		require.Equal(t, w.def, d.Default, w.name)
		require.Equal(t, w.min, d.Min, w.name)
		require.Equal(t, w.max, d.Max, w.name)
		require.GreaterOrEqual(t, d.Default, d.Min, w.name)
		require.LessOrEqual(t, d.Default, d.Max, w.name)
	}
}

func TestDescriptorsReturnsCopy(t *testing.T) {
	ds := Descriptors()
	ds[0].Default = 99

	d, ok := Describe(Zone)
	require.True(t, ok)
	require.Equal(t, 1.0, d.Default)
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("pingpong")
	require.True(t, ok)
	require.Equal(t, PingPong, d.ID)
	require.True(t, d.Toggle)

	_, ok = Lookup("feedback")
	require.False(t, ok)

	_, ok = Describe(Count)
	require.False(t, ok)
	require.Equal(t, "param(99)", ID(99).String())
	require.Equal(t, "microRateFreq", MicroRateFreq.String())
}

func TestClampAndValidate(t *testing.T) {
	d, _ := Describe(Repeats)
	require.Equal(t, 1.2, d.Clamp(5))
	require.Equal(t, 0.0, d.Clamp(-1))
	require.Equal(t, 0.7, d.Clamp(0.7))
	require.Equal(t, 0.3, d.Clamp(math.NaN()))

	require.NoError(t, d.Validate(1.1))
	require.Error(t, d.Validate(1.3))
	require.Error(t, d.Validate(math.Inf(1)))
}

func TestEngaged(t *testing.T) {
	require.False(t, Engaged(0.49))
	require.True(t, Engaged(ToggleThreshold))
	require.True(t, Engaged(1))
}

func TestLanesGranularity(t *testing.T) {
	var l Lanes

	// Empty lane: default.
	require.Equal(t, 0.5, l.At(Rate, 7))

	// Block constant.
	l.Set(Rate, 0.25)
	require.Equal(t, 0.25, l.At(Rate, 0))
	require.Equal(t, 0.25, l.At(Rate, 127))

	// Per sample, with the last value held past the end.
	l[Color] = []float32{0, 0.5, 1}
	require.Equal(t, 0.0, l.At(Color, 0))
	require.Equal(t, 0.5, l.At(Color, 1))
	require.Equal(t, 1.0, l.At(Color, 2))
	require.Equal(t, 1.0, l.At(Color, 50))

	// Non-finite values fall back to the default.
	l[Mix] = []float32{float32(math.NaN())}
	require.Equal(t, 0.0, l.At(Mix, 0))
}

func TestLanesSetReusesStorage(t *testing.T) {
	var l Lanes
	l[Halo] = make([]float32, 128)
	first := &l[Halo][0]

	l.Set(Halo, 0.75)
	require.Len(t, l[Halo], 1)
	require.Same(t, first, &l[Halo][0])
}

func TestDefaults(t *testing.T) {
	l := Defaults()
	for _, d := range Descriptors() {
		require.InDelta(t, d.Default, l.At(d.ID, 0), 1e-6, d.Name)
	}
}

func TestStore(t *testing.T) {
	s := NewStore()
	require.Equal(t, 1.0, s.Get(Zone))

	require.NoError(t, s.SetByName("zone", 7))
	require.Equal(t, 3.0, s.Get(Zone), "value is clamped into range")

	require.Error(t, s.SetByName("nope", 1))
	require.Error(t, s.Set(Mix, math.NaN()))
	require.Error(t, s.Set(Count, 1))
	require.Equal(t, 0.0, s.Get(Count))

	var l Lanes
	s.Snapshot(&l)
	require.Equal(t, 3.0, l.At(Zone, 0))
	require.InDelta(t, 0.3, l.At(Repeats, 0), 1e-7)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = s.Set(Color, float64(i%2))
		}
	}()
	go func() {
		defer wg.Done()
		var l Lanes
		for i := 0; i < 1000; i++ {
			s.Snapshot(&l)
			v := l.At(Color, 0)
			if v != 0 && v != 1 && v != 0.5 {
				t.Errorf("torn value %v", v)
				return
			}
		}
	}()
	wg.Wait()
}
