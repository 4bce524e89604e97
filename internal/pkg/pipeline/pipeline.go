package pipeline

import (
	"context"

	"bitbucket.org/airenas/meetsum/internal/pkg/api"
	"bitbucket.org/airenas/meetsum/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

// Transcriber converts audio to text
type Transcriber interface {
	Transcribe(ctx context.Context, audio *api.AudioBlob) (string, error)
}

// Summarizer makes the meeting summary from the transcript
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (*api.Summary, error)
}

// Pipeline runs transcription and then summarization for one audio file.
// It keeps no state between calls.
type Pipeline struct {
	transcriber Transcriber
	summarizer  Summarizer
}

// New creates the pipeline
func New(transcriber Transcriber, summarizer Summarizer) (*Pipeline, error) {
	if transcriber == nil {
		return nil, errors.New("No transcriber")
	}
	if summarizer == nil {
		return nil, errors.New("No summarizer")
	}
	return &Pipeline{transcriber: transcriber, summarizer: summarizer}, nil
}

// Process transcribes the audio and summarizes the transcript.
// Either both values are returned or an error: ErrNoAudio or *Error with the failed stage.
// Failures are not logged here, the caller logs them.
func (p *Pipeline) Process(ctx context.Context, audio *api.AudioBlob) (*api.Result, error) {
	if audio.Empty() {
		return nil, ErrNoAudio
	}
	log := cmdapp.Log.WithField("file", audio.Name)

	log.Info("Step 1: transcribing audio")
	transcript, err := p.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return nil, newError(StageTranscription, err)
	}
	log.Info("Transcription successful")

	log.Info("Step 2: summarizing transcript")
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return nil, newError(StageSummarization, err)
	}
	log.Info("Summary successful")

	return &api.Result{Transcript: transcript, Summary: summary}, nil
}
