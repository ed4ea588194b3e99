package generator

import (
	"context"
	"fmt"
	"html"

	"wiregen/internal/config"
	"wiregen/pkg/types"
)

// Stub answers without calling any remote service. The reply is fenced the
// way hosted models usually answer, so callers exercise fence stripping.
type Stub struct{}

func NewStub() *Stub { return &Stub{} }

func (s *Stub) Name() string { return config.ProviderStub }

func (s *Stub) Generate(ctx context.Context, req types.GenerateRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("```html\n<!DOCTYPE html>\n<html><body><h1>%s</h1><p>%s, %d bytes</p></body></html>\n```",
		html.EscapeString(req.Prompt), html.EscapeString(req.Model), len(req.Image)), nil
}
