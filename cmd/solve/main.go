package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/realbakari/partition"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

var (
	toolConfigPath = flag.String("config", "./config.toml", "The config file for the partition tools to use")
	instanceID     = flag.Uint("id", 0, "The id of a stored instance to solve")
	numbersPath    = flag.String("numbers", "", "Solve a number-partition instance read from this file instead of the store")
	profileCPU     = flag.Bool("profile", false, "Write a CPU profile for the solve")
)

func main() {
	flag.Parse()
	logger := log.New()
	logger.SetOutput(os.Stderr)

	if *profileCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	toolConfig, err := partition.LoadToolConfig(*toolConfigPath)
	if err != nil {
		logger.Fatalf("Failed to load tool config: %v", err)
	}

	var persist *partition.Persistence
	if toolConfig.Persistence != nil {
		persist, err = partition.NewPersistence(toolConfig.Persistence)
		if err != nil {
			logger.Fatalf("Failed to create or initialize persistence: %v", err)
		}
		defer persist.Shutdown()
	}

	instance, storedID := loadInstance(logger, persist)

	var tolerance float64
	if toolConfig.Solvers != nil {
		tolerance = toolConfig.Solvers.Tolerance
	}
	registry := partition.DefaultRegistry(toolConfig.Solvers)
	harness := partition.NewHarness(registry, tolerance, logger)

	oracle, reports, err := harness.Run(context.Background(), instance)
	if err != nil {
		logger.Fatalf("Harness run failed: %v", err)
	}

	fmt.Printf("instance: kind=%s size=%d\n", instance.Kind, instance.Size())
	fmt.Printf("oracle:   value=%g assignment=%s (%d evaluations in %v)\n",
		oracle.Value, oracle.Assignment, oracle.Evaluations, oracle.Duration)
	for _, r := range reports {
		if r.Verdict == partition.VerdictSkipped {
			fmt.Printf("%-12s skipped: %s\n", r.Name, r.Reason)
			continue
		}
		if r.Result == nil {
			fmt.Printf("%-12s %-10s %s\n", r.Name, r.Verdict, r.Reason)
			continue
		}
		fmt.Printf("%-12s %-10s value=%-10g gap=%-8g distance=%-3d assignment=%s (%v)\n",
			r.Name, r.Verdict, r.Result.Value, r.Gap, r.Distance, r.Result.Assignment, r.Result.Duration)
	}

	if persist != nil && storedID != 0 {
		if err := persist.SaveRuns(storedID, reports); err != nil {
			logger.Fatalf("Failed to store runs: %v", err)
		}
		summary, err := persist.Summarize(storedID)
		if err != nil {
			logger.Warnf("Failed to summarize runs: %v", err)
			return
		}
		logger.WithFields(log.Fields{
			"instance":    storedID,
			"runs":        summary.RunCount,
			"best_value":  summary.BestValue,
			"best_solver": summary.BestSolver,
		}).Info("runs stored")
	}
}

// loadInstance resolves the instance from the store or a numbers file.
// Instances read from a file are stored first when a store is
// configured, so their runs have something to attach to.
func loadInstance(logger *log.Logger, persist *partition.Persistence) (*partition.Instance, uint) {
	switch {
	case *instanceID != 0:
		if persist == nil {
			logger.Fatal("Loading a stored instance requires a persistence section in the tool config")
		}
		instance, err := persist.LoadInstance(*instanceID)
		if err != nil {
			logger.Fatalf("Unable to load instance from store: %v", err)
		}
		return instance, *instanceID
	case *numbersPath != "":
		numbers, err := partition.LoadNumberList(*numbersPath)
		if err != nil {
			logger.Fatalf("Unable to read number list: %v", err)
		}
		instance, err := partition.NewNumberPartitionInstance(numbers)
		if err != nil {
			logger.Fatalf("Invalid number list: %v", err)
		}
		if persist == nil {
			return instance, 0
		}
		id, err := persist.SaveInstance(instance, 0)
		if err != nil {
			logger.Fatalf("Failed to store instance: %v", err)
		}
		return instance, id
	}
	logger.Fatal("Either -id or -numbers must be given")
	return nil, 0
}
