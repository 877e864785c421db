package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/cwbudde/algo-zonedelay/dsp/effects/zonedelay"
	"github.com/cwbudde/algo-zonedelay/dsp/param"
)

func runParams(args []string, stdout io.Writer, _ *slog.Logger) error {
	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	zones := fs.Bool("zones", false, "also print the delay time range of each zone")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := printParams(stdout); err != nil {
		return err
	}
	if *zones {
		fmt.Fprintln(stdout)
		return printZones(stdout)
	}
	return nil
}

func printParams(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\tDefault\tMin\tMax\tUnit\tKind\n")
	fmt.Fprintf(tw, "----\t-------\t---\t---\t----\t----\n")
	for _, d := range param.Descriptors() {
		kind := "continuous"
		if d.Toggle {
			kind = "switch"
		}
		unit := d.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%s\t%s\n", d.Name, d.Default, d.Min, d.Max, unit, kind)
	}
	return tw.Flush()
}

func printZones(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Zone\tMin [ms]\tMax [ms]\n")
	fmt.Fprintf(tw, "----\t--------\t--------\n")
	for i, z := range zonedelay.Zones() {
		fmt.Fprintf(tw, "%d\t%.0f\t%.0f\n", i, z.Min*1000, z.Max*1000)
	}
	return tw.Flush()
}
