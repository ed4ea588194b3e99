package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"wiregen/pkg/types"
)

// pngBytes returns a small valid PNG.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// fakeGenerator records requests and replies with text or err. When block is
// set, calls wait until it is closed or the context ends.
type fakeGenerator struct {
	mu    sync.Mutex
	text  string
	err   error
	block chan struct{}
	reqs  []types.GenerateRequest
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, req types.GenerateRequest) (string, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func (f *fakeGenerator) requests() []types.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.GenerateRequest(nil), f.reqs...)
}
