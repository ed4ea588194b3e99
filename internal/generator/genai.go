package generator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"

	"wiregen/internal/config"
	"wiregen/pkg/types"
)

// streamFunc matches genai's Models.GenerateContentStream.
type streamFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]

// GenAI calls Gemini models through Vertex AI or the Gemini API and streams
// the response.
type GenAI struct {
	name   string
	stream streamFunc
	opts   Options
}

// NewVertex connects to Vertex AI using application default credentials.
func NewVertex(ctx context.Context, project, location, baseURL string, opts Options) (*GenAI, error) {
	if project == "" || location == "" {
		return nil, errors.New("vertex client: project and location are required (GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION)")
	}
	cc := &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  project,
		Location: location,
	}
	cc.HTTPOptions.BaseURL = baseURL
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("vertex client: %w", err)
	}
	return &GenAI{name: config.ProviderVertex, stream: client.Models.GenerateContentStream, opts: opts}, nil
}

// NewGemini connects to the Gemini API with an API key.
func NewGemini(ctx context.Context, apiKey, baseURL string, opts Options) (*GenAI, error) {
	cc := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	}
	cc.HTTPOptions.BaseURL = baseURL
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GenAI{name: config.ProviderGemini, stream: client.Models.GenerateContentStream, opts: opts}, nil
}

func (g *GenAI) Name() string { return g.name }

// Generate sends the wireframe followed by the prompt as one user turn.
// Each streamed chunk is trimmed before it is appended.
func (g *GenAI) Generate(ctx context.Context, req types.GenerateRequest) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(req.Image, req.MIMEType),
		genai.NewPartFromText(req.Prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var b strings.Builder
	for resp, err := range g.stream(ctx, req.Model, contents, g.contentConfig()) {
		if err != nil {
			return "", fmt.Errorf("%s generate %s: %w", g.name, req.Model, err)
		}
		if resp == nil {
			continue
		}
		b.WriteString(strings.TrimSpace(resp.Text()))
	}
	return b.String(), nil
}

func (g *GenAI) contentConfig() *genai.GenerateContentConfig {
	if g.opts == (Options{}) {
		return nil
	}
	gc := &genai.GenerateContentConfig{MaxOutputTokens: g.opts.MaxOutputTokens}
	if g.opts.Temperature > 0 {
		gc.Temperature = genai.Ptr(g.opts.Temperature)
	}
	if s := strings.TrimSpace(g.opts.SystemInstruction); s != "" {
		gc.SystemInstruction = genai.NewContentFromText(s, genai.RoleUser)
	}
	return gc
}
