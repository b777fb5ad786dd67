package partition

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/xrash/smetrics"
)

// A RunReport is one solver's graded outcome on an instance.
type RunReport struct {
	Name     string
	Result   *Result // nil when skipped or failed
	Verdict  Verdict
	Gap      float64 // objective value above the oracle minimum
	Distance int     // Hamming distance to the oracle assignment, up to complement
	Reason   string  // skip reason or error text
}

// Harness runs every registered solver on an instance and grades each
// result against the brute-force oracle. Unavailable solvers are
// reported as skipped, never treated as fatal.
type Harness struct {
	Registry  *Registry
	Oracle    *BruteForceSolver
	Tolerance float64
	Log       *log.Logger
}

func NewHarness(reg *Registry, tolerance float64, logger *log.Logger) *Harness {
	if tolerance <= 0 {
		tolerance = 1e-9
	}
	if logger == nil {
		logger = log.New()
	}
	return &Harness{
		Registry:  reg,
		Oracle:    NewBruteForceSolver(nil),
		Tolerance: tolerance,
		Log:       logger,
	}
}

// Run solves the instance with the oracle first, then with every
// registered solver concurrently, and returns the oracle result plus
// a graded report per registration in registry order.
func (h *Harness) Run(ctx context.Context, in *Instance) (*Result, []RunReport, error) {
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}
	oracle, err := h.Oracle.Solve(ctx, in)
	if err != nil {
		return nil, nil, fmt.Errorf("oracle solve failed: %w", err)
	}
	h.Log.WithFields(log.Fields{
		"kind":  in.Kind,
		"size":  in.Size(),
		"value": oracle.Value,
	}).Info("oracle minimum established")

	entries := h.Registry.Entries()
	reports := make([]RunReport, len(entries))
	var wg sync.WaitGroup
	for i, e := range entries {
		if !e.Available() {
			reports[i] = RunReport{Name: e.Name, Verdict: VerdictSkipped, Reason: e.Reason}
			h.Log.WithField("solver", e.Name).Warnf("solver unavailable, skipping: %s", e.Reason)
			continue
		}
		wg.Add(1)
		go func(i int, e Registration) {
			defer wg.Done()
			res, err := e.Solver.Solve(ctx, in)
			reports[i] = h.grade(in, oracle, e.Name, res, err)
		}(i, e)
	}
	wg.Wait()

	for _, r := range reports {
		if r.Verdict == VerdictSkipped {
			continue
		}
		fields := log.Fields{"solver": r.Name, "verdict": r.Verdict}
		if r.Result != nil {
			fields["value"] = r.Result.Value
			fields["gap"] = r.Gap
			fields["distance"] = r.Distance
			fields["duration"] = r.Result.Duration
		}
		if r.Reason != "" {
			fields["reason"] = r.Reason
		}
		h.Log.WithFields(fields).Info("solver graded")
	}
	return oracle, reports, nil
}

func (h *Harness) grade(in *Instance, oracle *Result, name string, res *Result, err error) RunReport {
	if err != nil {
		return RunReport{Name: name, Verdict: VerdictFailed, Reason: err.Error()}
	}
	report := RunReport{
		Name:     name,
		Result:   res,
		Gap:      res.Value - oracle.Value,
		Distance: assignmentDistance(res.Assignment, oracle.Assignment),
	}
	switch {
	case in.BalanceRequired() && !res.Assignment.Balanced():
		report.Verdict = VerdictInfeasible
	case report.Gap <= h.Tolerance:
		report.Verdict = VerdictOptimal
	default:
		report.Verdict = VerdictSuboptimal
	}
	return report
}

// assignmentDistance measures how far two assignments are apart as a
// Hamming distance, taking whichever labeling of the two halves is
// closer: the partition objectives are invariant under complement, so
// a solution and its complement are the same partition.
func assignmentDistance(a, b Assignment) int {
	d1, err := smetrics.Hamming(a.String(), b.String())
	if err != nil {
		return len(a)
	}
	d2, err := smetrics.Hamming(a.Complement().String(), b.String())
	if err != nil {
		return len(a)
	}
	if d2 < d1 {
		return d2
	}
	return d1
}
