package partition

import (
	"fmt"
)

// RunSummary aggregates the stored runs for one instance.
type RunSummary struct {
	InstanceID uint
	RunCount   int64
	BestValue  float64
	BestSolver string
	Optimal    int64
	Suboptimal int64
	Skipped    int64
	Failed     int64
}

// BestRun returns the stored run with the lowest objective value for
// an instance, considering only runs that produced a solution.
func (p *Persistence) BestRun(instanceID uint) (*RunRecord, error) {
	var rec RunRecord
	result := p.DB.
		Where("instance_id = ? AND verdict IN ?", instanceID,
			[]string{string(VerdictOptimal), string(VerdictSuboptimal), string(VerdictInfeasible)}).
		Order("value ASC, id ASC").
		First(&rec)
	if result.Error != nil {
		return nil, fmt.Errorf("no solved runs for instance %d: %w", instanceID, result.Error)
	}
	return &rec, nil
}

// Summarize tallies stored runs by verdict for an instance.
func (p *Persistence) Summarize(instanceID uint) (*RunSummary, error) {
	s := &RunSummary{InstanceID: instanceID}
	if err := p.DB.Model(&RunRecord{}).
		Where("instance_id = ?", instanceID).
		Count(&s.RunCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}
	if s.RunCount == 0 {
		return s, nil
	}

	counts := map[Verdict]*int64{
		VerdictOptimal:    &s.Optimal,
		VerdictSuboptimal: &s.Suboptimal,
		VerdictSkipped:    &s.Skipped,
		VerdictFailed:     &s.Failed,
	}
	for verdict, dest := range counts {
		if err := p.DB.Model(&RunRecord{}).
			Where("instance_id = ? AND verdict = ?", instanceID, string(verdict)).
			Count(dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s runs: %w", verdict, err)
		}
	}

	best, err := p.BestRun(instanceID)
	if err == nil {
		s.BestValue = best.Value
		s.BestSolver = best.Solver
	}
	return s, nil
}
