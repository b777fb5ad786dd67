package partition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Environment variables consulted when RemoteConfig leaves the
// endpoint unset.
const (
	remoteURLEnv   = "PARTITION_SOLVER_URL"
	remoteTokenEnv = "PARTITION_SOLVER_TOKEN"
)

// RemoteConfig points at an external annealing or variational service
// that accepts a spin-form objective and returns a minimizer.
type RemoteConfig struct {
	URL       string `toml:"url"`
	Token     string `toml:"token"`
	TimeoutMS int    `toml:"timeout_ms"` // 0 means 30000
}

// RemoteSolver submits the instance's Hamiltonian to an external
// service. It is an optional collaborator: when no endpoint is
// configured, NewRemoteSolver fails and the registry records the
// solver as unavailable so runs skip it instead of aborting.
type RemoteSolver struct {
	url    string
	token  string
	client *http.Client
}

// NewRemoteSolver resolves the endpoint from config, falling back to
// the environment the way annealing-service clients conventionally do.
func NewRemoteSolver(config *RemoteConfig) (*RemoteSolver, error) {
	url := os.Getenv(remoteURLEnv)
	token := os.Getenv(remoteTokenEnv)
	timeout := 30 * time.Second
	if config != nil {
		if config.URL != "" {
			url = config.URL
		}
		if config.Token != "" {
			token = config.Token
		}
		if config.TimeoutMS > 0 {
			timeout = time.Duration(config.TimeoutMS) * time.Millisecond
		}
	}
	if url == "" {
		return nil, fmt.Errorf("remote solver not configured: set solvers.remote.url or %s", remoteURLEnv)
	}
	return &RemoteSolver{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (s *RemoteSolver) Name() string { return SolverRemote }

type remoteRequest struct {
	Kind   string  `json:"kind"`
	Spins  int     `json:"spins"`
	Terms  Terms   `json:"terms"`
	Offset float64 `json:"offset"`
}

type remoteResponse struct {
	Spins  []int8  `json:"spins"`
	Energy float64 `json:"energy"`
	Reads  uint64  `json:"reads"`
}

func (s *RemoteSolver) Solve(ctx context.Context, in *Instance) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	h, err := in.Hamiltonian()
	if err != nil {
		return nil, err
	}
	obj, err := in.Objective()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := json.Marshal(remoteRequest{
		Kind:   in.Kind,
		Spins:  in.Size(),
		Terms:  h.Terms,
		Offset: h.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode remote request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote solve failed: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote solver returned %s: %s", resp.Status, data)
	}

	var rr remoteResponse
	if err := json.Unmarshal(data, &rr); err != nil {
		return nil, fmt.Errorf("failed to decode remote response: %w\nraw: %s", err, data)
	}
	if len(rr.Spins) != in.Size() {
		return nil, fmt.Errorf("remote solver returned %d spins, want %d", len(rr.Spins), in.Size())
	}

	assignment := SpinsToAssignment(rr.Spins)
	return &Result{
		Solver:      s.Name(),
		Assignment:  assignment,
		Value:       obj(assignment),
		Energy:      rr.Energy,
		Evaluations: rr.Reads,
		Iterations:  rr.Reads,
		Duration:    time.Since(start),
	}, nil
}
