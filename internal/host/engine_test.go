package host

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-zonedelay/dsp/core"
	"github.com/cwbudde/algo-zonedelay/dsp/effects/zonedelay"
	"github.com/cwbudde/algo-zonedelay/dsp/param"
	"github.com/cwbudde/algo-zonedelay/internal/testutil"
)

func newTestEngine(t *testing.T, opts ...core.ProcessorOption) *Engine {
	t.Helper()
	e, err := NewEngine(core.ApplyProcessorOptions(opts...))
	require.NoError(t, err)
	return e
}

func TestNewEngineValidation(t *testing.T) {
	_, err := NewEngine(core.ProcessorConfig{SampleRate: 48000, BlockSize: 0})
	require.Error(t, err)

	_, err = NewEngine(core.ProcessorConfig{SampleRate: -1, BlockSize: 128})
	require.Error(t, err)

	_, err = NewEngine(core.DefaultProcessorConfig(), zonedelay.WithSmoothingTime(-1))
	require.Error(t, err)
}

func TestSetParam(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.SetParam("mix", 0.4))
	v, err := e.Param("mix")
	require.NoError(t, err)
	require.InDelta(t, 0.4, v, 1e-12)

	require.NoError(t, e.SetParam("repeats", 5))
	v, err = e.Param("repeats")
	require.NoError(t, err)
	require.Equal(t, 1.2, v, "values are clamped to range")

	require.Error(t, e.SetParam("nope", 1))
	require.Error(t, e.SetParam("mix", math.NaN()))
	_, err = e.Param("nope")
	require.Error(t, err)
}

func TestProcessStereoMatchesKernel(t *testing.T) {
	e := newTestEngine(t, core.WithSampleRate(16000), core.WithBlockSize(64))
	require.NoError(t, e.SetParam("mix", 0.7))
	require.NoError(t, e.SetParam("zone", 0))
	require.NoError(t, e.SetParam("halo", 0.4))

	in := testutil.Noise(1, 0.5, 1000)
	outL := make([]float32, len(in))
	outR := make([]float32, len(in))
	require.Equal(t, len(in), e.ProcessStereo(outL, outR, in, nil))

	k, err := zonedelay.New(16000)
	require.NoError(t, err)
	lanes := param.Defaults()
	lanes.Set(param.Mix, 0.7)
	lanes.Set(param.Zone, 0)
	lanes.Set(param.Halo, 0.4)
	want := testutil.Stereo(len(in))
	for start := 0; start < len(in); start += 64 {
		end := min(start+64, len(in))
		k.Process(testutil.Window(want, start, end), [][]float32{in[start:end]}, &lanes, float64(start)/16000)
	}

	testutil.RequireIdentical(t, outL, want[0])
	testutil.RequireIdentical(t, outR, want[1])
	require.InDelta(t, 1000.0/16000, e.Time(), 1e-12)
}

func TestRenderInterleavedMatchesProcessStereo(t *testing.T) {
	a := newTestEngine(t, core.WithSampleRate(8000))
	b := newTestEngine(t, core.WithSampleRate(8000))
	for _, e := range []*Engine{a, b} {
		require.NoError(t, e.SetParam("mix", 0.5))
		require.NoError(t, e.SetParam("skew", 0.5))
		require.NoError(t, e.SetParam("zone", 0))
	}

	l := testutil.Noise(2, 0.5, 700)
	r := testutil.Noise(3, 0.5, 700)
	src := make([]float32, 2*len(l))
	for i := range l {
		src[2*i], src[2*i+1] = l[i], r[i]
	}

	dst := make([]float32, len(src))
	require.Equal(t, len(l), a.RenderInterleaved(dst, src))

	outL := make([]float32, len(l))
	outR := make([]float32, len(l))
	b.ProcessStereo(outL, outR, l, r)

	for i := range l {
		require.Equal(t, outL[i], dst[2*i], "left frame %d", i)
		require.Equal(t, outR[i], dst[2*i+1], "right frame %d", i)
	}
}

func TestRenderInterleavedMonoSource(t *testing.T) {
	e := newTestEngine(t, core.WithSampleRate(8000))
	src := testutil.Noise(4, 0.5, 300)
	dst := make([]float32, 2*len(src))
	require.Equal(t, len(src), e.RenderInterleaved(dst, src))
	// Default mix is dry, so both sides carry the source.
	for i, v := range src {
		require.Equal(t, v, dst[2*i])
		require.Equal(t, v, dst[2*i+1])
	}
}

func TestMasterGain(t *testing.T) {
	e := newTestEngine(t, core.WithSampleRate(8000))
	require.NoError(t, e.SetMasterGain(0.5))
	require.Error(t, e.SetMasterGain(-1))
	require.Error(t, e.SetMasterGain(10))

	in := testutil.Step(256, 0, 0.5)
	outL := make([]float32, len(in))
	outR := make([]float32, len(in))
	e.ProcessStereo(outL, outR, in, in)
	for i := range outL {
		require.InDelta(t, 0.25, outL[i], 1e-7)
		require.InDelta(t, 0.25, outR[i], 1e-7)
	}
}

func TestAutomationRunsThenHolds(t *testing.T) {
	e := newTestEngine(t, core.WithSampleRate(8000), core.WithBlockSize(32))

	lane := make([]float32, 100)
	for i := range lane {
		lane[i] = float32(i) / 100
	}
	require.NoError(t, e.SetAutomation(param.Mix, lane))

	in := testutil.Step(200, 0, 1)
	outL := make([]float32, len(in))
	outR := make([]float32, len(in))
	e.ProcessStereo(outL, outR, in, nil)

	// With an empty buffer only the dry share reaches the output.
	for i := 0; i < 100; i++ {
		require.InDelta(t, 1-float64(lane[i]), outL[i], 1e-6, "sample %d", i)
	}
	v, err := e.Param("mix")
	require.NoError(t, err)
	require.InDelta(t, float64(lane[99]), v, 1e-7)
}

func TestAutomationValidation(t *testing.T) {
	e := newTestEngine(t)
	require.Error(t, e.SetAutomation(param.Mix, nil))
	require.Error(t, e.SetAutomation(param.Mix, []float32{0.5, 2}))
	require.Error(t, e.SetAutomation(param.Count, []float32{0}))
}

func TestResetRewindsClock(t *testing.T) {
	e := newTestEngine(t, core.WithSampleRate(8000))
	require.NoError(t, e.SetParam("mix", 1))
	in := testutil.Noise(9, 0.5, 500)
	out1L := make([]float32, 500)
	out1R := make([]float32, 500)
	e.ProcessStereo(out1L, out1R, in, nil)
	require.Greater(t, e.Time(), 0.0)

	e.Reset()
	require.Equal(t, 0.0, e.Time())

	out2L := make([]float32, 500)
	out2R := make([]float32, 500)
	e.ProcessStereo(out2L, out2R, in, nil)
	testutil.RequireIdentical(t, out2L, out1L)
	testutil.RequireIdentical(t, out2R, out1R)
}

func TestResetDropsAutomation(t *testing.T) {
	e := newTestEngine(t, core.WithSampleRate(8000))
	require.NoError(t, e.SetParam("mix", 0.7))

	lane := make([]float32, 1000)
	for i := range lane {
		lane[i] = 0.2
	}
	require.NoError(t, e.SetAutomation(param.Mix, lane))

	in := testutil.Noise(3, 0.5, 100)
	outL := make([]float32, 100)
	outR := make([]float32, 100)
	e.ProcessStereo(outL, outR, in, nil)
	require.NotNil(t, e.active[param.Mix].data)

	require.NoError(t, e.SetAutomation(param.Repeats, []float32{0.5, 0.5}))
	e.Reset()
	require.Nil(t, e.active[param.Mix].data)
	require.False(t, e.hasPending.Load())
	require.Nil(t, e.pending[param.Repeats])

	v, err := e.Param("mix")
	require.NoError(t, err)
	require.InDelta(t, 0.7, v, 1e-12)
}

func TestConcurrentParamUpdates(t *testing.T) {
	e := newTestEngine(t, core.WithSampleRate(8000))
	in := testutil.Noise(5, 0.5, 128)
	outL := make([]float32, 128)
	outR := make([]float32, 128)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = e.SetParam("color", float64(i%100)/100)
			_ = e.SetParam("hold", float64(i%2))
		}
	}()
	for i := 0; i < 200; i++ {
		e.ProcessStereo(outL, outR, in, nil)
		testutil.RequireFinite(t, outL)
	}
	wg.Wait()
}
