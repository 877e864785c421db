// Command zonedelay renders, plays and inspects the stereo zoned delay.
//
// Usage:
//
//	zonedelay <command> [flags] [args]
//
// Commands:
//
//	params    list the controls with their ranges and defaults
//	render    process a WAV file and write the result
//	play      play a WAV file or the pulse sequencer through the delay
//	response  print the color filter's magnitude response
//	taps      render an impulse and analyze the echo train
//
// Examples:
//
//	zonedelay params
//	zonedelay render -set zone=1 -set rate=0.3 -set mix=0.5 -tail 3 in.wav out.wav
//	zonedelay play -set repeats=0.8 -set halo=0.6
//	zonedelay response -color 0.9
//	zonedelay taps -set repeats=0.6 -rate 48000
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

type command struct {
	name    string
	summary string
	run     func(args []string, stdout io.Writer, logger *slog.Logger) error
}

var commands = []command{
	{"params", "list the controls with their ranges and defaults", runParams},
	{"render", "process a WAV file and write the result", runRender},
	{"play", "play a WAV file or the pulse sequencer through the delay", runPlay},
	{"response", "print the color filter's magnitude response", runResponse},
	{"taps", "render an impulse and analyze the echo train", runTaps},
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: zonedelay [-log-level level] <command> [flags] [args]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nRun 'zonedelay <command> -h' for command flags.\n")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("zonedelay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	level := fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger, err := newLogger(stderr, *level)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}

	for _, c := range commands {
		if c.name != rest[0] {
			continue
		}
		if err := c.run(rest[1:], stdout, logger); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
			logger.Error("command failed", "command", c.name, "err", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stderr, "error: unknown command %q\n\n", rest[0])
	usage(stderr)
	return 2
}
