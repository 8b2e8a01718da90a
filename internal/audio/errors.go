package audio

import (
	"errors"

	apperrors "github.com/killallgit/dialogue-qc/pkg/errors"
)

// FailureError maps an error from decoding or analysing source onto an
// AppError. Container problems become DECODE_FAILED; anything else about the
// samples themselves is INVALID_AUDIO. Errors that already carry a code keep it.
func FailureError(source string, err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	if errors.Is(err, ErrDecode) || errors.Is(err, ErrUnsupportedFormat) {
		return apperrors.DecodeError(source, err)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInvalidAudio, "audio could not be analysed").
		WithDetail("source", source)
}
