package ai

import (
	"Pictor/core"
	"Pictor/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

var ErrEmptyResponse = errors.New("image generation: empty response")

const defaultTimeout = 120 * time.Second

// ImageClient requests single images from the OpenAI images API
type ImageClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

func NewImageClient(conf *core.Config, log *slog.Logger) *ImageClient {
	config := openai.DefaultConfig(conf.OpenAIApiKey)
	if conf.OpenAIBaseURL != "" {
		config.BaseURL = conf.OpenAIBaseURL
	}
	config.HTTPClient = &http.Client{}

	timeout := conf.ImageTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	model := conf.ImageModel
	if model == "" {
		model = openai.CreateImageModelDallE2
	}

	return &ImageClient{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		timeout: timeout,
		log:     log.With(sl.Module("image-client")),
	}
}

// Generate asks for exactly one image and returns its URL
func (c *ImageClient) Generate(ctx context.Context, prompt string, size string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.model,
		N:              1,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("creating image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrEmptyResponse
	}

	c.log.With(
		slog.String("model", c.model),
		slog.String("size", size),
		slog.Duration("took", time.Since(start)),
	).Debug("image created")

	return resp.Data[0].URL, nil
}

var _ core.ImageGenerator = (*ImageClient)(nil)
