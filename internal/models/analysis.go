package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/killallgit/dialogue-qc/internal/analysis"
	"gorm.io/gorm"
)

// Analysis status constants
const (
	AnalysisStatusAnalyzed = "analyzed" // metrics extracted and classified
	AnalysisStatusFailed   = "failed"   // audio could not be decoded or analysed
)

// StringList is a JSON-encoded string slice column
type StringList []string

// Value implements driver.Valuer interface for StringList
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface for StringList
func (l *StringList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// Analysis is the persisted outcome of screening one audio file
type Analysis struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UUID      string    `json:"id" gorm:"uniqueIndex;not null;size:36"`
	CreatedAt time.Time `json:"created_at"`

	// UUID of the owning run; empty for ad-hoc API analyses
	RunID string `json:"run_id,omitempty" gorm:"index;size:36"`

	// Source identification
	Source    string `json:"source" gorm:"not null;size:500"` // filename or object key
	Character string `json:"character,omitempty" gorm:"size:100"`
	LineIndex *int   `json:"line_index,omitempty"`
	SizeBytes int64  `json:"size_bytes"`

	// Reference text context
	Text        *string  `json:"text,omitempty" gorm:"type:text"`
	WordCount   *int     `json:"word_count,omitempty"`
	ExpectedMin *float64 `json:"expected_min,omitempty"`
	ExpectedMax *float64 `json:"expected_max,omitempty"`

	// Signal metrics
	DurationSeconds  float64 `json:"duration_seconds"`
	RMSEnergy        float64 `json:"rms_energy"`
	ZeroCrossingRate float64 `json:"zero_crossing_rate"`
	SpectralFlatness float64 `json:"spectral_flatness"`

	// Verdict
	Status        string     `json:"status" gorm:"size:20;default:analyzed;index"`
	IsSuspicious  bool       `json:"is_suspicious" gorm:"index"`
	Reasons       StringList `json:"reasons" gorm:"type:text"`
	Rules         StringList `json:"rules" gorm:"type:text"`
	DurationRatio *float64   `json:"duration_ratio,omitempty"`
	ErrorMessage  string     `json:"error_message,omitempty" gorm:"size:500"`
}

// BeforeCreate generates a UUID before creating a new analysis
func (a *Analysis) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = AnalysisStatusAnalyzed
	}
	return nil
}

// TableName returns the table name for the Analysis model
func (Analysis) TableName() string {
	return "analyses"
}

// ApplyResult copies metrics, text context and verdict from an analysis result
func (a *Analysis) ApplyResult(text *string, res analysis.Result) {
	a.Status = AnalysisStatusAnalyzed
	a.Text = text
	a.WordCount = res.WordCount
	if res.Expected != nil {
		lo, hi := res.Expected.MinSeconds, res.Expected.MaxSeconds
		a.ExpectedMin = &lo
		a.ExpectedMax = &hi
	}

	a.DurationSeconds = res.Metrics.DurationSeconds
	a.RMSEnergy = res.Metrics.RMSEnergy
	a.ZeroCrossingRate = res.Metrics.ZeroCrossingRate
	a.SpectralFlatness = res.Metrics.SpectralFlatness

	a.applyVerdict(res.Verdict)
}

// ApplyFailure marks the analysis as failed; failures always count as suspicious
func (a *Analysis) ApplyFailure(v analysis.Verdict, err error) {
	a.Status = AnalysisStatusFailed
	a.applyVerdict(v)
	if err != nil {
		a.ErrorMessage = err.Error()
	}
}

func (a *Analysis) applyVerdict(v analysis.Verdict) {
	a.IsSuspicious = v.IsSuspicious
	a.Reasons = StringList(v.Reasons)
	a.Rules = make(StringList, len(v.Rules))
	for i, r := range v.Rules {
		a.Rules[i] = string(r)
	}
	a.DurationRatio = v.DurationRatio
}

// IsFailed reports whether the audio could not be analysed
func (a *Analysis) IsFailed() bool {
	return a.Status == AnalysisStatusFailed
}
