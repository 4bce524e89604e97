package transcriber

import (
	"bytes"
	"context"

	"bitbucket.org/airenas/meetsum/internal/pkg/api"
	"bitbucket.org/airenas/meetsum/internal/pkg/cmdapp"
	"bitbucket.org/airenas/meetsum/internal/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is a speech to text model used if none configured
const DefaultModel = "whisper-large-v3"

//Client comunicates with speech to text service
type Client struct {
	client *openai.Client
	model  string
}

//NewClient creates a transcriber client
func NewClient(client *openai.Client, model string) (*Client, error) {
	if client == nil {
		return nil, errors.New("No API client")
	}
	if model == "" {
		return nil, errors.New("No transcriber model")
	}
	return &Client{client: client, model: model}, nil
}

//Transcribe sends the audio to the service and returns the recognized text.
//Empty text is a valid result for silent audio
func (c *Client) Transcribe(ctx context.Context, audio *api.AudioBlob) (string, error) {
	if audio.Empty() {
		return "", errors.New("No audio data")
	}
	if audio.Name == "" {
		return "", errors.New("No audio file name")
	}
	cmdapp.Log.Infof("Sending audio '%s' (%d bytes) to %s", audio.Name, len(audio.Data), c.model)
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: audio.Name,
		Reader:   bytes.NewReader(audio.Data),
	})
	if err != nil {
		utils.LogUpstreamError("transcription", err)
		return "", errors.Wrap(err, "Can't transcribe")
	}
	if resp.Text == "" {
		cmdapp.Log.Warnf("Empty transcription for '%s'", audio.Name)
	}
	return resp.Text, nil
}
