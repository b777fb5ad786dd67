package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/realbakari/partition"

	log "github.com/sirupsen/logrus"
)

var (
	toolConfigPath    = flag.String("config", "./config.toml", "The config file for the partition tools to use")
	problemConfigPath = flag.String("problem", "./problem.toml", "The problem config describing the instance to generate")
)

func main() {
	flag.Parse()
	logger := log.New()
	logger.SetOutput(os.Stderr)

	problemConfig, err := partition.LoadProblemConfig(*problemConfigPath)
	if err != nil {
		logger.Fatalf("Failed to load problem config: %v", err)
	}

	instance, err := partition.GenerateInstance(problemConfig)
	if err != nil {
		logger.Fatalf("Failed to generate instance: %v", err)
	}

	switch instance.Kind {
	case partition.KindGraphPartition:
		fmt.Print(instance.Graph.String())
	case partition.KindNumberPartition:
		for i, v := range instance.Numbers {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Printf("%g", v)
		}
		fmt.Println()
	}

	toolConfig, err := partition.LoadToolConfig(*toolConfigPath)
	if err != nil {
		logger.Warnf("No tool config, not persisting: %v", err)
		return
	}
	if toolConfig.Persistence == nil {
		logger.Warn("Tool config has no persistence section, not persisting")
		return
	}

	persist, err := partition.NewPersistence(toolConfig.Persistence)
	if err != nil {
		logger.Fatalf("Failed to create or initialize persistence: %v", err)
	}
	defer persist.Shutdown()

	id, err := persist.SaveInstance(instance, problemConfig.Seed)
	if err != nil {
		logger.Fatalf("Failed to store instance: %v", err)
	}
	logger.WithFields(log.Fields{
		"id":   id,
		"kind": instance.Kind,
		"size": instance.Size(),
		"seed": problemConfig.Seed,
	}).Info("instance stored")
}
