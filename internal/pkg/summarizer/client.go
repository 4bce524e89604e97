package summarizer

import (
	"context"

	"bitbucket.org/airenas/meetsum/internal/pkg/api"
	"bitbucket.org/airenas/meetsum/internal/pkg/cmdapp"
	"bitbucket.org/airenas/meetsum/internal/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is a chat model used if none configured
const DefaultModel = "llama-3.1-8b-instant"

// SystemPrompt is sent unchanged with every summarization request
const SystemPrompt = `You are an expert meeting assistant. Analyze the following meeting transcript. Provide a summary of the key decisions made and a list of action items.
Respond *only* with a JSON object in the following format:
{
  "key_decisions": ["Decision 1", "Decision 2", "..."],
  "action_items": [
    {"task": "Task description", "owner": "Name or 'Unassigned'"},
    {"task": "Another task", "owner": "Name"}
  ]
}`

// ErrNoChoices indicates a chat response without any message
var ErrNoChoices = errors.New("No choices in chat response")

//Client comunicates with the chat completion service
type Client struct {
	client *openai.Client
	model  string
}

//NewClient creates a summarizer client
func NewClient(client *openai.Client, model string) (*Client, error) {
	if client == nil {
		return nil, errors.New("No API client")
	}
	if model == "" {
		return nil, errors.New("No summarizer model")
	}
	return &Client{client: client, model: model}, nil
}

//Summarize asks the model for the meeting summary of the transcript
func (c *Client) Summarize(ctx context.Context, transcript string) (*api.Summary, error) {
	cmdapp.Log.Infof("Sending transcript (%d chars) to %s", len(transcript), c.model)
	resp, err := c.client.CreateChatCompletion(ctx, newRequest(c.model, transcript))
	if err != nil {
		utils.LogUpstreamError("summarization", err)
		return nil, errors.Wrap(err, "Can't summarize")
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	content := resp.Choices[0].Message.Content
	res, err := parseSummary(content)
	if err != nil {
		cmdapp.Log.WithField("stage", "summarization").Errorf("Wrong content: %s", trim(content, 200))
		return nil, err
	}
	return res, nil
}

func newRequest(model, transcript string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage(transcript)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}
}

func userMessage(transcript string) string {
	return "Transcript: \"\"\"\n" + transcript + "\n\"\"\""
}

func trim(s string, l int) string {
	r := []rune(s)
	if len(r) > l {
		return string(r[:l]) + "..."
	}
	return s
}
