package e2e

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"wiregen/internal/generator"
	"wiregen/internal/httpapi"
	"wiregen/internal/registry"
	"wiregen/internal/service"
)

// newServer wires the real service and HTTP layer around gen.
func newServer(t *testing.T, gen generator.Generator, cfg service.Config) (*httptest.Server, *service.Service) {
	t.Helper()
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "gemini-1.0-pro-vision"
	}
	cfg.Generator = gen
	cfg.Models = registry.Build(cfg.DefaultModel, "stub", registry.FromIDs([]string{"gemini-1.5-flash"}, "stub"))
	svc := service.New(cfg)
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv, svc
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

// postWireframe sends POST /response. A nil image omits the file field.
func postWireframe(t *testing.T, base string, image []byte, model, prompt string) (*http.Response, []byte) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if image != nil {
		fw, err := mw.CreateFormFile("image-upload", "wireframe.png")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		_, _ = fw.Write(image)
	}
	_ = mw.WriteField("model", model)
	_ = mw.WriteField("prompt", prompt)
	_ = mw.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, base+"/response", &body)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
