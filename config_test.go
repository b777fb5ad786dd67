package partition

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadToolConfig(t *testing.T) {
	path := writeTempConfig(t, `
[persistence]
name = "runs.db"
path = "/var/lib/partition"
sqlite_pragmas = ["journal_mode=WAL"]
sqlite_options = ["cache=shared"]

[solvers]
tolerance = 1e-6

[solvers.brute_force]
workers = 4
max_size = 20

[solvers.annealer]
restarts = 16
sweeps = 500
seed = 99
`)
	cfg, err := LoadToolConfig(path)
	if err != nil {
		t.Fatalf("LoadToolConfig failed: %v", err)
	}
	if cfg.Persistence == nil || cfg.Persistence.Name != "runs.db" || cfg.Persistence.Path != "/var/lib/partition" {
		t.Errorf("Persistence section is wrong: %+v", cfg.Persistence)
	}
	if len(cfg.Persistence.SQLitePragmas) != 1 || cfg.Persistence.SQLitePragmas[0] != "journal_mode=WAL" {
		t.Errorf("Pragmas are wrong: %v", cfg.Persistence.SQLitePragmas)
	}
	if cfg.Solvers == nil || cfg.Solvers.Tolerance != 1e-6 {
		t.Errorf("Solvers section is wrong: %+v", cfg.Solvers)
	}
	if cfg.Solvers.BruteForce.Workers != 4 || cfg.Solvers.BruteForce.MaxSize != 20 {
		t.Errorf("Brute-force section is wrong: %+v", cfg.Solvers.BruteForce)
	}
	if cfg.Solvers.Annealer.Restarts != 16 || cfg.Solvers.Annealer.Seed != 99 {
		t.Errorf("Annealer section is wrong: %+v", cfg.Solvers.Annealer)
	}
	if cfg.Solvers.Remote != nil {
		t.Errorf("Remote section appeared from nowhere: %+v", cfg.Solvers.Remote)
	}
}

func TestLoadToolConfigMissingFile(t *testing.T) {
	if _, err := LoadToolConfig("/nonexistent/config.toml"); err == nil {
		t.Errorf("LoadToolConfig did not fail on a missing file")
	}
}

func TestLoadProblemConfig(t *testing.T) {
	path := writeTempConfig(t, `
kind = "graph-partition"
size = 6
seed = 42
edge_probability = 0.7
weight_min = 1.0
weight_max = 5.0
penalty = 10.0
`)
	cfg, err := LoadProblemConfig(path)
	if err != nil {
		t.Fatalf("LoadProblemConfig failed: %v", err)
	}
	if cfg.Kind != KindGraphPartition || cfg.Size != 6 || cfg.Seed != 42 {
		t.Errorf("Problem config is wrong: %+v", cfg)
	}
	if cfg.EdgeProbability != 0.7 || cfg.WeightMin != 1 || cfg.WeightMax != 5 || cfg.Penalty != 10 {
		t.Errorf("Graph parameters are wrong: %+v", cfg)
	}
}

func TestGenerateInstanceDeterminism(t *testing.T) {
	cfg := &ProblemConfig{Kind: KindGraphPartition, Size: 8, Seed: 13}
	in1, err := GenerateInstance(cfg)
	if err != nil {
		t.Fatalf("GenerateInstance failed: %v", err)
	}
	in2, err := GenerateInstance(cfg)
	if err != nil {
		t.Fatalf("GenerateInstance failed: %v", err)
	}
	if !reflect.DeepEqual(in1.Graph.Weights, in2.Graph.Weights) {
		t.Errorf("Same config produced different graphs:\n%v\n%v", in1.Graph, in2.Graph)
	}
	// Default penalty dominates any crossing-edge saving.
	if in1.Penalty != 64 {
		t.Errorf("Default penalty [%v] is not expected value [64]", in1.Penalty)
	}
}

func TestGenerateInstanceNumbers(t *testing.T) {
	cfg := &ProblemConfig{Kind: KindNumberPartition, Size: 12, Seed: 5}
	in, err := GenerateInstance(cfg)
	if err != nil {
		t.Fatalf("GenerateInstance failed: %v", err)
	}
	if in.Kind != KindNumberPartition || in.Size() != 12 {
		t.Errorf("Instance is malformed: kind [%v], size [%v]", in.Kind, in.Size())
	}
	for _, v := range in.Numbers {
		if v < 1 || v >= 100 {
			t.Errorf("Value [%v] is outside the default range [1, 100)", v)
		}
	}
}

func TestGenerateInstanceRejectsBadConfig(t *testing.T) {
	if _, err := GenerateInstance(&ProblemConfig{Kind: KindGraphPartition, Size: 0}); err == nil {
		t.Errorf("GenerateInstance accepted size 0")
	}
	if _, err := GenerateInstance(&ProblemConfig{Kind: "max-cut", Size: 4}); err == nil {
		t.Errorf("GenerateInstance accepted an unknown kind")
	}
}
