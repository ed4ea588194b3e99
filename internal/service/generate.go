package service

import (
	"context"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"wiregen/pkg/types"
)

// Generate converts a wireframe into HTML. It resolves the model, checks the
// upload, waits for admission, calls the generator and strips code fences
// from the result. Generator errors are returned unchanged.
func (s *Service) Generate(ctx context.Context, req types.GenerateRequest) (string, error) {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()

	if s.gen == nil {
		return "", s.fail(req.Model, outcomeError, ErrDependencyUnavailable("no generator configured"))
	}
	model, err := s.resolveModel(req.Model)
	if err != nil {
		return "", s.fail(req.Model, outcomeInvalid, err)
	}
	req.Model = model

	if len(req.Image) == 0 {
		return "", s.fail(model, outcomeInvalid, ErrInvalidInput("image-upload is empty"))
	}
	uploadBytes.Observe(float64(len(req.Image)))
	mt := mimetype.Detect(req.Image)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", s.fail(model, outcomeInvalid, ErrInvalidInput("image-upload is not an image: "+mt.String()))
	}
	req.MIMEType = mt.String()

	release, err := s.beginGeneration(ctx)
	if err != nil {
		if !IsTooBusy(err) {
			return "", s.fail(model, outcomeCanceled, err)
		}
		s.mu.Lock()
		s.rejected++
		s.mu.Unlock()
		s.observe(model, outcomeRejected, time.Now())
		return "", err
	}
	defer release()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	text, err := s.gen.Generate(ctx, req)
	if err != nil {
		return "", s.fail(model, outcomeError, err)
	}
	s.mu.Lock()
	s.succeeded++
	s.mu.Unlock()
	s.observe(model, outcomeOK, start)
	return CleanMarkup(text), nil
}

// resolveModel applies the default model and, when restricted, the catalog.
func (s *Service) resolveModel(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = s.defaultModel
		if id == "" {
			return "", ErrModelNotFound("(unspecified)")
		}
	}
	if s.restrictModels && !s.known[id] {
		return "", ErrModelNotFound(id)
	}
	return id, nil
}

func (s *Service) fail(model, outcome string, err error) error {
	s.mu.Lock()
	s.failed++
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.observe(model, outcome, time.Now())
	return err
}
