// Package echo analyzes the impulse response of a feedback delay as a
// train of discrete taps.
//
// The response is cut into windows one tap spacing wide, centred on the
// expected tap positions. Each window yields a peak, an energy and a level
// relative to the first tap; a least-squares fit over the tap levels gives
// the per-repeat decay and the time the train needs to fall by 60 dB.
//
// # Usage
//
//	analyzer := echo.NewAnalyzer(48000)
//	metrics, err := analyzer.Analyze(response, 2400)
//	fmt.Printf("decay %.1f dB per repeat, RT60 %.2f s\n", metrics.DecayPerTapDB, metrics.RT60)
package echo
