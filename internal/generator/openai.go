package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"wiregen/internal/config"
	"wiregen/pkg/types"
)

// OpenAI sends the prompt and wireframe to the OpenAI Responses API.
type OpenAI struct {
	client *openai.Client
	opts   Options
}

// NewOpenAI builds a client for apiKey. A non-empty baseURL points it at a
// compatible endpoint.
func NewOpenAI(apiKey, baseURL string, opts Options) *OpenAI {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(reqOpts...)
	return &OpenAI{client: &client, opts: opts}
}

func (c *OpenAI) Name() string { return config.ProviderOpenAI }

func (c *OpenAI) Generate(ctx context.Context, req types.GenerateRequest) (string, error) {
	params := responses.ResponseNewParams{
		Model: openai.ChatModel(req.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(
					responses.ResponseInputMessageContentListParam{
						{
							OfInputImage: &responses.ResponseInputImageParam{
								Detail:   responses.ResponseInputImageDetailAuto,
								ImageURL: openai.String(dataURL(req.MIMEType, req.Image)),
							},
						},
						{
							OfInputText: &responses.ResponseInputTextParam{
								Text: req.Prompt,
							},
						},
					},
					responses.EasyInputMessageRoleUser,
				),
			},
		},
	}
	if c.opts.Temperature > 0 {
		params.Temperature = openai.Float(float64(c.opts.Temperature))
	}
	if c.opts.MaxOutputTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(c.opts.MaxOutputTokens))
	}
	if s := strings.TrimSpace(c.opts.SystemInstruction); s != "" {
		params.Instructions = openai.String(s)
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai generate %s: %w", req.Model, err)
	}
	return strings.TrimSpace(resp.OutputText()), nil
}

func dataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
