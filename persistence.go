package partition

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
)

// PersistenceConfig locates the SQLite database and its connection
// string extras.
type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

// Persistence stores problem instances and solver runs so experiments
// can be replayed and compared.
type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

// An InstanceRecord is a stored problem instance. Payload holds the
// JSON-encoded weight matrix or number list.
type InstanceRecord struct {
	ID        uint
	Kind      string
	Size      int
	Seed      int64
	Penalty   float64
	Payload   []byte `gorm:"type:blob"`
	CreatedAt time.Time
}

// A RunRecord is one solver run against a stored instance.
type RunRecord struct {
	ID          uint
	InstanceID  uint
	Solver      string
	Verdict     string
	Value       float64
	Energy      float64
	Assignment  string
	Gap         float64
	Distance    int
	Evaluations uint64
	Iterations  uint64
	DurationUS  int64
	Error       *string
	CreatedAt   time.Time
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(config.Path) == 0 {
		return nil, fmt.Errorf("path to database must be defined")
	}
	if len(config.Name) == 0 {
		return nil, fmt.Errorf("name of database must be defined")
	}

	var extras []string
	for _, prag := range config.SQLitePragmas {
		extras = append(extras, "_pragma="+prag)
	}
	extras = append(extras, config.SQLiteOptions...)

	dsn := filepath.Join(config.Path, config.Name)
	if len(extras) > 0 {
		dsn += "?" + strings.Join(extras, "&")
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: 1000})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(
		&InstanceRecord{},
		&RunRecord{},
	)
}

func (p *Persistence) Shutdown() error {
	sqldb, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	return sqldb.Close()
}

// instancePayload is the JSON shape stored in InstanceRecord.Payload.
type instancePayload struct {
	Weights [][]float64 `json:"weights,omitempty"`
	Numbers []float64   `json:"numbers,omitempty"`
}

// SaveInstance stores an instance along with the seed that generated
// it and returns the new record ID.
func (p *Persistence) SaveInstance(in *Instance, seed int64) (uint, error) {
	if in == nil {
		return 0, fmt.Errorf("instance cannot be nil")
	}
	if err := in.Validate(); err != nil {
		return 0, err
	}
	var payload instancePayload
	switch in.Kind {
	case KindGraphPartition:
		payload.Weights = in.Graph.Weights
	case KindNumberPartition:
		payload.Numbers = in.Numbers
	}
	blob, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode instance payload: %w", err)
	}
	rec := &InstanceRecord{
		Kind:    in.Kind,
		Size:    in.Size(),
		Seed:    seed,
		Penalty: in.Penalty,
		Payload: blob,
	}
	if result := p.DB.Create(rec); result.Error != nil {
		return 0, fmt.Errorf("failed to store instance: %w", result.Error)
	}
	return rec.ID, nil
}

// LoadInstance rebuilds a stored instance.
func (p *Persistence) LoadInstance(id uint) (*Instance, error) {
	var rec InstanceRecord
	if result := p.DB.First(&rec, id); result.Error != nil {
		return nil, fmt.Errorf("failed to load instance %d: %w", id, result.Error)
	}
	var payload instancePayload
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode instance %d payload: %w", id, err)
	}
	switch rec.Kind {
	case KindGraphPartition:
		g, err := NewGraph(payload.Weights)
		if err != nil {
			return nil, fmt.Errorf("stored instance %d is invalid: %w", id, err)
		}
		return NewGraphPartitionInstance(g, rec.Penalty)
	case KindNumberPartition:
		nl, err := NewNumberList(payload.Numbers)
		if err != nil {
			return nil, fmt.Errorf("stored instance %d is invalid: %w", id, err)
		}
		return NewNumberPartitionInstance(nl)
	}
	return nil, fmt.Errorf("stored instance %d has unknown kind %q", id, rec.Kind)
}

// SaveRuns stores the graded reports from one harness run.
func (p *Persistence) SaveRuns(instanceID uint, reports []RunReport) error {
	if len(reports) == 0 {
		return nil
	}
	records := make([]RunRecord, 0, len(reports))
	for _, r := range reports {
		rec := RunRecord{
			InstanceID: instanceID,
			Solver:     r.Name,
			Verdict:    string(r.Verdict),
			Gap:        r.Gap,
			Distance:   r.Distance,
		}
		if r.Reason != "" {
			reason := r.Reason
			rec.Error = &reason
		}
		if r.Result != nil {
			rec.Value = r.Result.Value
			rec.Energy = r.Result.Energy
			rec.Assignment = r.Result.Assignment.String()
			rec.Evaluations = r.Result.Evaluations
			rec.Iterations = r.Result.Iterations
			rec.DurationUS = r.Result.Duration.Microseconds()
		}
		records = append(records, rec)
	}
	if result := p.DB.Create(&records); result.Error != nil {
		return fmt.Errorf("failed to store runs: %w", result.Error)
	}
	return nil
}
