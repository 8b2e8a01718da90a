package natsqc

import (
	"github.com/killallgit/dialogue-qc/internal/analysis"
	apperrors "github.com/killallgit/dialogue-qc/pkg/errors"
)

// Request asks for one rendered line to be checked
type Request struct {
	AudioKey string  `json:"audio_key"`
	Text     *string `json:"text,omitempty"`
	Profile  string  `json:"profile,omitempty"`
}

// Response is the reply to a Request. Verdict is set for every object that
// could be fetched; Metrics only when the audio could be analysed. Code
// classifies Error when the failure came from storage or the audio itself.
type Response struct {
	AudioKey   string                          `json:"audio_key,omitempty"`
	AnalysisID string                          `json:"analysis_id,omitempty"`
	Metrics    *analysis.SignalMetrics         `json:"metrics,omitempty"`
	Expected   *analysis.ExpectedDurationRange `json:"expected,omitempty"`
	Verdict    *analysis.Verdict               `json:"verdict,omitempty"`
	Error      string                          `json:"error,omitempty"`
	Code       apperrors.ErrorCode             `json:"code,omitempty"`
}
