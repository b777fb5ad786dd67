package partition

import (
	"testing"
)

func TestDefaultRegistryWithoutRemote(t *testing.T) {
	t.Setenv(remoteURLEnv, "")
	reg := DefaultRegistry(nil)
	entries := reg.Entries()
	if len(entries) != 4 {
		t.Fatalf("Registry has [%v] entries, want [4]", len(entries))
	}
	wantOrder := []string{SolverBruteForce, SolverEigensolver, SolverAnnealer, SolverRemote}
	for i, name := range wantOrder {
		if entries[i].Name != name {
			t.Errorf("Entry %v is [%v], want [%v]", i, entries[i].Name, name)
		}
	}
	if len(reg.Available()) != 3 {
		t.Errorf("Available count [%v] is not expected value [3]", len(reg.Available()))
	}

	remote, ok := reg.Lookup(SolverRemote)
	if !ok {
		t.Fatalf("Lookup(%v) found nothing", SolverRemote)
	}
	if remote.Available() {
		t.Errorf("Remote solver is available without an endpoint")
	}
	if remote.Reason == "" {
		t.Errorf("Unavailable remote solver carries no reason")
	}
}

func TestDefaultRegistryWithRemote(t *testing.T) {
	t.Setenv(remoteURLEnv, "")
	cfg := &SolverConfig{Remote: &RemoteConfig{URL: "http://localhost:9999/solve"}}
	reg := DefaultRegistry(cfg)
	remote, ok := reg.Lookup(SolverRemote)
	if !ok {
		t.Fatalf("Lookup(%v) found nothing", SolverRemote)
	}
	if !remote.Available() {
		t.Errorf("Remote solver is unavailable despite a configured endpoint: %v", remote.Reason)
	}
	if len(reg.Available()) != 4 {
		t.Errorf("Available count [%v] is not expected value [4]", len(reg.Available()))
	}
}

func TestRegistryLookupMiss(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterUnavailable("something", "not built")
	if _, ok := reg.Lookup("missing"); ok {
		t.Errorf("Lookup found a solver that was never registered")
	}
	e, ok := reg.Lookup("something")
	if !ok || e.Available() {
		t.Errorf("Unavailable registration is malformed: found [%v], available [%v]", ok, e.Available())
	}
}
