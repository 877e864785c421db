//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-zonedelay/dsp/core"
	"github.com/cwbudde/algo-zonedelay/dsp/param"
	"github.com/cwbudde/algo-zonedelay/internal/host"
	"github.com/cwbudde/algo-zonedelay/measure/response"
)

var (
	engine *host.Engine
	seq    *host.Sequencer
	pulse  []float32
	frames []float32
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		cfg := core.ApplyProcessorOptions(core.WithSampleRate(sr))
		e, err := host.NewEngine(cfg)
		if err != nil {
			return err.Error()
		}
		s, err := host.NewSequencer(cfg.SampleRate)
		if err != nil {
			return err.Error()
		}
		engine, seq = e, s
		return js.Null()
	}))

	api.Set("params", export(func(args []js.Value) any {
		descs := param.Descriptors()
		arr := js.Global().Get("Array").New(len(descs))
		for i, d := range descs {
			item := js.Global().Get("Object").New()
			item.Set("name", d.Name)
			item.Set("default", d.Default)
			item.Set("min", d.Min)
			item.Set("max", d.Max)
			item.Set("unit", d.Unit)
			item.Set("toggle", d.Toggle)
			arr.SetIndex(i, item)
		}
		return arr
	}))

	api.Set("setParam", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Null()
		}
		if err := engine.SetParam(args[0].String(), args[1].Float()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("setGain", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		if err := engine.SetMasterGain(args[0].Float()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("setTransport", export(func(args []js.Value) any {
		if seq == nil || len(args) < 2 {
			return js.Null()
		}
		shuffle := 0.0
		if len(args) > 2 {
			shuffle = args[2].Float()
		}
		seq.SetTransport(args[0].Float(), args[1].Float(), shuffle)
		return js.Null()
	}))

	api.Set("setWaveform", export(func(args []js.Value) any {
		if seq == nil || len(args) < 1 {
			return js.Null()
		}
		w, err := host.ParseWaveform(args[0].String())
		if err != nil {
			return err.Error()
		}
		seq.SetWaveform(w)
		return js.Null()
	}))

	api.Set("setRunning", export(func(args []js.Value) any {
		if seq == nil || len(args) < 1 {
			return js.Null()
		}
		seq.SetRunning(args[0].Bool())
		return js.Null()
	}))

	api.Set("setSteps", export(func(args []js.Value) any {
		if seq == nil || len(args) < 1 {
			return js.Null()
		}
		arr := args[0]
		steps := make([]host.Step, arr.Length())
		for i := 0; i < arr.Length(); i++ {
			item := arr.Index(i)
			steps[i] = host.Step{
				Enabled: item.Get("enabled").Bool(),
				FreqHz:  item.Get("freq").Float(),
			}
		}
		seq.SetSteps(steps)
		return js.Null()
	}))

	// process renders n interleaved stereo frames driven by the sequencer.
	api.Set("process", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		n := args[0].Int()
		if cap(pulse) < n {
			pulse = make([]float32, n)
			frames = make([]float32, 2*n)
		}
		in, out := pulse[:n], frames[:2*n]
		seq.Render(in)
		engine.RenderInterleaved(out, in)
		arr := js.Global().Get("Float32Array").New(len(out))
		for i := range out {
			arr.SetIndex(i, out[i])
		}
		return arr
	}))

	api.Set("responseCurve", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		input := args[0]
		freqs := make([]float64, input.Length())
		for i := 0; i < input.Length(); i++ {
			freqs[i] = input.Index(i).Float()
		}
		color, err := engine.Param("color")
		if err != nil {
			return err.Error()
		}
		resp, err := response.ColorCurveDB(color, engine.SampleRate(), freqs)
		if err != nil {
			return err.Error()
		}
		arr := js.Global().Get("Float32Array").New(len(resp))
		for i := range resp {
			arr.SetIndex(i, resp[i])
		}
		return arr
	}))

	api.Set("currentStep", export(func(args []js.Value) any {
		if seq == nil {
			return -1
		}
		return seq.CurrentStep()
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if engine != nil {
			engine.Reset()
		}
		return js.Null()
	}))

	js.Global().Set("ZoneDelay", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
