package utils

import (
	"bitbucket.org/airenas/meetsum/internal/pkg/cmdapp"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

//NewOpenAIClient creates a client for an OpenAI compatible API located at url
func NewOpenAIClient(apiKey, url string, retries int) (*openai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("No API key")
	}
	url, err := validateConfigURL(url, "url")
	if err != nil {
		return nil, err
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = url
	cfg.HTTPClient = NewHTTPClient(retries)
	return openai.NewClientWithConfig(cfg), nil
}

//LogUpstreamError logs the upstream failure details. They are never passed to the service caller
func LogUpstreamError(stage string, err error) {
	l := cmdapp.Log.WithField("stage", stage)
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		l.WithFields(logrus.Fields{"code": apiErr.HTTPStatusCode, "type": apiErr.Type}).
			Errorf("API error data: %s", apiErr.Message)
	case errors.As(err, &reqErr):
		l.WithField("code", reqErr.HTTPStatusCode).Errorf("API error data: %s", string(reqErr.Body))
	default:
		l.Errorf("Call failed: %v", err)
	}
}
