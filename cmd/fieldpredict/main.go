// Command fieldpredict evaluates a trained loop-field bundle: on a
// measurement CSV, on a single (current, radius) pair, or in an
// interactive prompt loop. With ground truth present it reports RMSE,
// relative RMSE and R², and can render the two-panel comparison chart.
//
// Usage:
//
//	fieldpredict -data new.csv [-chart compare.png]
//	fieldpredict -current 1.5 -radius 0.1
//	fieldpredict -interactive
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"loop-field/internal/config"
	"loop-field/internal/dataset"
	"loop-field/internal/logging"
	"loop-field/internal/model"
	"loop-field/internal/report"
)

func main() {
	dataPath := flag.String("data", "", "CSV of inputs to predict on")
	current := flag.Float64("current", 0, "Single-input current in amperes")
	radius := flag.Float64("radius", 0, "Single-input radius in meters")
	interactive := flag.Bool("interactive", false, "Prompt for (current, radius) pairs on stdin")
	configPath := flag.String("config", "", "Optional YAML config file")
	bundlePath := flag.String("bundle", "", "Bundle path (default from config)")
	chartPath := flag.String("chart", "", "Write the comparison chart PNG here")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	if *bundlePath != "" {
		cfg.BundlePath = *bundlePath
	}
	if *chartPath != "" {
		cfg.ChartPath = *chartPath
	}
	logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	bundle, err := model.LoadBundle(cfg.BundlePath)
	if err != nil {
		if errors.Is(err, model.ErrNoModel) {
			fmt.Fprintf(os.Stderr, "%v — run fieldtrain first.\n", err)
			os.Exit(1)
		}
		fail(err)
	}
	fmt.Printf("Loaded degree-%d model trained on %d rows (%s)\n",
		bundle.Degree, bundle.Rows, bundle.TrainedAt.Format("2006-01-02 15:04"))

	switch {
	case *dataPath != "":
		predictBatch(bundle, *dataPath, cfg.ChartPath)
	case *interactive:
		runInteractive(bundle)
	case *current != 0 || *radius != 0:
		predictSingle(bundle, *current, *radius)
	default:
		fmt.Fprintln(os.Stderr, "Usage: fieldpredict -data <csv> | -current A -radius M | -interactive")
		os.Exit(1)
	}
}

func predictBatch(bundle *model.Bundle, path, chartPath string) {
	obs, err := dataset.LoadCSV(path)
	if err != nil {
		fail(err)
	}

	rep, err := model.Predict(bundle, obs)
	if err != nil {
		fail(err)
	}

	fmt.Println()
	report.WriteTable(os.Stdout, rep)
	fmt.Println()
	report.WriteMetrics(os.Stdout, rep)

	if chartPath != "" {
		if err := report.SaveChart(chartPath, rep); err != nil {
			fail(err)
		}
		fmt.Printf("Comparison chart written to %s\n", chartPath)
	}
}

func predictSingle(bundle *model.Bundle, current, radius float64) {
	pred, err := model.PredictOne(bundle, current, radius)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Predicted magnetic field: %.6e T\n", pred)
}

// runInteractive is a thin prompt adapter over the same single-input
// contract as the batch path.
func runInteractive(bundle *model.Bundle) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Enter current and radius separated by whitespace; empty line quits.")
	for {
		fmt.Print("current(A) radius(m)> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			fmt.Println("Need exactly two numbers, e.g.: 1.5 0.1")
			continue
		}
		current, err1 := strconv.ParseFloat(parts[0], 64)
		radius, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			fmt.Println("Could not parse the numbers; try again.")
			continue
		}
		pred, err := model.PredictOne(bundle, current, radius)
		if err != nil {
			fmt.Printf("Cannot predict: %v\n", err)
			continue
		}
		fmt.Printf("B = %.6e T\n", pred)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
