package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
)

// Config holds LLM client settings
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	// Timeout bounds each completion call; an unbounded external call
	// inside the claim-submission path is the main availability risk.
	Timeout time.Duration
}

const systemPrompt = "You are a strict fact checker. Decide TRUE, FALSE, or NOT ENOUGH EVIDENCE " +
	"for the claim using ONLY the evidence provided. If numbers/years/units " +
	"don't exactly match, answer NOT ENOUGH EVIDENCE.\n\n" +
	`Return ONLY this JSON: {"result":"TRUE|FALSE|NOT ENOUGH EVIDENCE","explanation":"one short sentence"}`

// OpenAIClient implements ports.LLMClient using the OpenAI chat API
type OpenAIClient struct {
	client *openai.Client
	config Config
}

// NewOpenAIClient creates an OpenAI-backed LLM client
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// ChatCompletion sends the judge prompt and returns the raw assistant
// message. JSON response format is requested so the oracle's parser
// sees a bare object in the common case; parse failures are still
// handled fail-closed upstream.
func (c *OpenAIClient) ChatCompletion(ctx context.Context, prompt string) (string, error) {
	model := c.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := c.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 512
	}

	timeout := c.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(c.config.Temperature),
		MaxTokens:   maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", errors.ExternalServiceError("oracle", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.ExternalServiceError("oracle", fmt.Errorf("response missing choices"))
	}
	return resp.Choices[0].Message.Content, nil
}
