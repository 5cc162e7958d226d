// Stats plot tool - charts stream levels from a session's telemetry.csv.
//
// Usage: go run ./cmd/statsplot -in out/telemetry.csv -out levels.png
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pthm-cable/echoroom/telemetry"
)

func main() {
	inPath := flag.String("in", "telemetry.csv", "Window stats written with -output-dir")
	outPath := flag.String("out", "levels.png", "Output image path (.png, .svg or .pdf)")
	flag.Parse()

	stats, err := telemetry.ReadStats(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "statsplot: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Fprintf(os.Stderr, "statsplot: no windows in %s\n", *inPath)
		os.Exit(1)
	}

	if err := telemetry.PlotLevels(stats, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "statsplot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Plotted %d windows to: %s\n", len(stats), *outPath)
}
