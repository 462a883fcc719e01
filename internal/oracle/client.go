package oracle

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// Client is the generative-text oracle. Replies are free-form text and must
// be treated as adversarial input by the caller; nothing about their shape
// is contractual.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{client: &c, model: model}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(c.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("oracle generate: %w", err)
	}
	return result.OutputText(), nil
}

var _ Client = (*OpenAIClient)(nil)
