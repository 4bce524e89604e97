package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

// Stage names a pipeline step calling an upstream API
type Stage string

const (
	// StageTranscription is the speech to text call
	StageTranscription Stage = "transcription"
	// StageSummarization is the chat completion call
	StageSummarization Stage = "summarization"
)

// ErrNoAudio is returned when the request has no audio data. No upstream call is made
var ErrNoAudio = errors.New("No audio file uploaded")

// Error is a failure of one pipeline stage
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(stage Stage, err error) *Error {
	return &Error{Stage: stage, Err: err}
}

// StageOf returns the failed stage or "" if err is not a stage error
func StageOf(err error) Stage {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return ""
}
