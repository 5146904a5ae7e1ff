package illustrator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	ErrMissingAPIKey    = errors.New("OPENAI_API_KEY is not set (export it or run 'dialogos login')")
	ErrGenerationFailed = errors.New("image generation failed")
)

const (
	DefaultModel   = "dall-e-3"
	DefaultSize    = "1024x1024"
	defaultTimeout = 2 * time.Minute
)

// OpenAIConfig holds configuration for the OpenAI image generator.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // optional, for compatible endpoints and tests
	Model   string
	Size    string
	Timeout time.Duration
}

// OpenAIGenerator generates images with the OpenAI Images API.
type OpenAIGenerator struct {
	client openai.Client
	model  string
	size   string
}

// NewOpenAIGenerator creates a generator. Requests are never retried.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	size := cfg.Size
	if size == "" {
		size = DefaultSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIGenerator{
		client: openai.NewClient(opts...),
		model:  model,
		size:   size,
	}, nil
}

// Generate implements ImageGenerator. It requests a single base64 encoded
// image and returns the decoded bytes.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(g.model),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize(g.size),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %w", ErrGenerationFailed, err)
	}
	return data, nil
}
