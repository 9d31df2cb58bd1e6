// Command apcalc-calibrate measures the multiplication crossover points on
// the current host and stores them as a calibration profile for the kernel
// tuning chain.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/agbru/apcalc/internal/calibration"
	"github.com/agbru/apcalc/internal/config"
	"github.com/agbru/apcalc/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	quick := flag.Bool("quick", false, "use the reduced candidate grid")
	verbose := flag.Bool("v", false, "log each measurement")
	profilePath := flag.String("profile", calibration.DefaultProfilePath(), "profile output path")
	flag.Parse()

	logger := logging.NewDefaultLogger()
	if *verbose {
		logger = logging.NewLogger(os.Stderr, "calibrate")
	}

	// Measurements run against the resolved tuning so env overrides apply.
	config.Apply(config.Resolve())

	runner := calibration.NewRunner(logger)
	profile, err := runner.Run(context.Background(), calibration.Options{Quick: *quick})
	if err != nil {
		logger.Error("calibration failed", err)
		return 1
	}
	if err := calibration.Save(profile, *profilePath); err != nil {
		logger.Error("saving profile failed", err)
		return 1
	}
	fmt.Printf("calibration profile written to %s\n", *profilePath)
	return 0
}
