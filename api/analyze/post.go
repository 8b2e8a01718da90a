package analyze

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/dialogue-qc/api/types"
	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/killallgit/dialogue-qc/internal/audio"
	"github.com/killallgit/dialogue-qc/internal/models"
	apperrors "github.com/killallgit/dialogue-qc/pkg/errors"
)

// Post analyses one uploaded WAV file
// @Summary      Analyze a rendered line
// @Description  Decode an uploaded WAV file, extract signal metrics and classify it. When text is given the duration is checked against the expected range for its word count.
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio   formData file   true  "WAV file"
// @Param        text    formData string false "Dialogue text the audio should contain"
// @Param        profile formData string false "Threshold profile name"
// @Success      200 {object} types.AnalyzeResponse "Analysis result"
// @Failure      400 {object} types.ErrorResponse "Missing audio file"
// @Failure      413 {object} types.ErrorResponse "Upload too large"
// @Failure      422 {object} types.AnalyzeResponse "Audio could not be analysed"
// @Router       /api/v1/analyze [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("audio")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.JSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "audio upload exceeds the size limit",
					Error:   string(apperrors.ErrCodeInvalidInput),
				})
				return
			}
			types.SendError(c, apperrors.MissingFieldError("audio"))
			return
		}

		file, err := header.Open()
		if err != nil {
			types.SendBadRequest(c, "failed to read uploaded audio")
			return
		}
		defer file.Close()

		raw, err := io.ReadAll(file)
		if err != nil {
			types.SendBadRequest(c, "failed to read uploaded audio")
			return
		}

		var text *string
		if t, ok := c.GetPostForm("text"); ok && t != "" {
			text = &t
		}
		profile := c.PostForm("profile")
		filename := filepath.Base(header.Filename)

		log := deps.Log().With("filename", filename, "profile", profile)
		resp := types.AnalyzeResponse{Filename: filename}
		record := &models.Analysis{Source: filename, SizeBytes: int64(len(raw))}

		status := http.StatusOK
		res, meta, err := run(raw, text, deps.ThresholdsFor(profile))
		if err != nil {
			appErr := audio.FailureError(filename, err)
			v := analysis.FailureVerdict(err)
			resp.Status = types.StatusFailed
			resp.Message = appErr.Message
			resp.Verdict = v
			resp.Error = err.Error()
			resp.Code = string(appErr.Code)
			record.Text = text
			record.ApplyFailure(v, err)
			status = appErr.GetHTTPCode()
			log.Warn("upload analysis failed", "code", appErr.Code, "error", err)
		} else {
			resp.Status = types.StatusOK
			resp.Audio = meta
			resp.Metrics = &res.Metrics
			resp.WordCount = res.WordCount
			resp.Expected = res.Expected
			resp.Verdict = res.Verdict
			record.ApplyResult(text, res)
			log.Info("upload analysed", "suspicious", res.Verdict.IsSuspicious)
		}
		resp.Reason = resp.Verdict.Summary()

		if deps.AnalysisService != nil {
			if rerr := deps.AnalysisService.Record(c.Request.Context(), record); rerr != nil {
				log.Error("failed to record analysis", "error", rerr)
			} else {
				resp.AnalysisID = record.UUID
			}
		}

		c.JSON(status, resp)
	}
}

func run(raw []byte, text *string, t analysis.Thresholds) (analysis.Result, *audio.Metadata, error) {
	wf, meta, err := audio.DecodeBytes(raw)
	if err != nil {
		return analysis.Result{}, nil, err
	}
	res, err := analysis.Analyze(wf, text, t)
	if err != nil {
		return analysis.Result{}, nil, err
	}
	return res, meta, nil
}
