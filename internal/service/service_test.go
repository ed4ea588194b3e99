package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiregen/internal/registry"
	"wiregen/pkg/types"
)

func newTestService(gen *fakeGenerator, mutate func(*Config)) *Service {
	cfg := Config{
		Generator:    gen,
		Models:       registry.Build("m-default", "fake", registry.FromIDs([]string{"m-other"}, "fake")),
		DefaultModel: "m-default",
		MaxWait:      200 * time.Millisecond,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	if gen == nil {
		cfg.Generator = nil
	}
	return New(cfg)
}

func TestGenerate_StripsFencesAndFillsRequest(t *testing.T) {
	gen := &fakeGenerator{text: "```html\n<main>ok</main>\n```"}
	s := newTestService(gen, nil)
	img := pngBytes(t)

	out, err := s.Generate(context.Background(), types.GenerateRequest{Prompt: "build it", Image: img, MIMEType: "application/octet-stream"})
	require.NoError(t, err)
	assert.Equal(t, "<main>ok</main>", out)

	reqs := gen.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "m-default", reqs[0].Model, "empty model uses default")
	assert.Equal(t, "image/png", reqs[0].MIMEType, "sniffed type wins over the declared one")
	assert.Equal(t, "build it", reqs[0].Prompt)
	assert.Equal(t, img, reqs[0].Image)

	st := s.Status()
	assert.EqualValues(t, 1, st.RequestsTotal)
	assert.EqualValues(t, 1, st.SucceededTotal)
	assert.Equal(t, "ready", st.State)
	assert.Equal(t, "fake", st.Provider)
}

func TestGenerate_UnrestrictedModelPassesThrough(t *testing.T) {
	gen := &fakeGenerator{text: "x"}
	s := newTestService(gen, nil)
	_, err := s.Generate(context.Background(), types.GenerateRequest{Model: "anything-goes", Image: pngBytes(t)})
	require.NoError(t, err)
	assert.Equal(t, "anything-goes", gen.requests()[0].Model)
}

func TestGenerate_RestrictedModel(t *testing.T) {
	gen := &fakeGenerator{text: "x"}
	s := newTestService(gen, func(c *Config) { c.RestrictModels = true })

	_, err := s.Generate(context.Background(), types.GenerateRequest{Model: "m-unknown", Image: pngBytes(t)})
	require.Error(t, err)
	assert.True(t, IsModelNotFound(err))
	assert.Empty(t, gen.requests())

	_, err = s.Generate(context.Background(), types.GenerateRequest{Model: "m-other", Image: pngBytes(t)})
	require.NoError(t, err)
}

func TestGenerate_NoDefaultModel(t *testing.T) {
	s := newTestService(&fakeGenerator{}, func(c *Config) { c.DefaultModel = "" })
	_, err := s.Generate(context.Background(), types.GenerateRequest{Image: pngBytes(t)})
	assert.True(t, IsModelNotFound(err))
}

func TestGenerate_InvalidUploads(t *testing.T) {
	gen := &fakeGenerator{text: "x"}
	s := newTestService(gen, nil)

	_, err := s.Generate(context.Background(), types.GenerateRequest{Model: "m-other"})
	assert.True(t, IsInvalidInput(err), "empty upload")

	_, err = s.Generate(context.Background(), types.GenerateRequest{Model: "m-other", Image: []byte("just some text, not a picture")})
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err), "text upload")
	assert.Contains(t, err.Error(), "text/plain")

	assert.Empty(t, gen.requests())
	st := s.Status()
	assert.EqualValues(t, 2, st.FailedTotal)
	assert.NotEmpty(t, st.LastError)
}

func TestGenerate_GeneratorErrorPropagates(t *testing.T) {
	boom := errors.New("upstream: 500 internal")
	s := newTestService(&fakeGenerator{err: boom}, nil)
	_, err := s.Generate(context.Background(), types.GenerateRequest{Image: pngBytes(t)})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, boom.Error(), s.Status().LastError)
}

func TestGenerate_NoGenerator(t *testing.T) {
	s := newTestService(nil, nil)
	assert.False(t, s.Ready())
	_, err := s.Generate(context.Background(), types.GenerateRequest{Image: pngBytes(t)})
	assert.True(t, IsDependencyUnavailable(err))
	assert.Equal(t, "unavailable", s.Status().State)
}

func TestGenerate_Timeout(t *testing.T) {
	gen := &fakeGenerator{block: make(chan struct{})}
	s := newTestService(gen, func(c *Config) { c.GenerateTimeout = 20 * time.Millisecond })
	_, err := s.Generate(context.Background(), types.GenerateRequest{Image: pngBytes(t)})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerate_TooBusy(t *testing.T) {
	gen := &fakeGenerator{text: "done", block: make(chan struct{})}
	s := newTestService(gen, func(c *Config) {
		c.MaxConcurrent = 1
		c.MaxQueueDepth = 1
		c.MaxWait = 20 * time.Millisecond
	})

	img := pngBytes(t)
	first := make(chan error, 1)
	go func() {
		_, err := s.Generate(context.Background(), types.GenerateRequest{Image: img})
		first <- err
	}()
	require.Eventually(t, func() bool { return len(gen.requests()) == 1 }, time.Second, 5*time.Millisecond)

	_, err := s.Generate(context.Background(), types.GenerateRequest{Image: img})
	require.Error(t, err)
	assert.True(t, IsTooBusy(err))
	assert.EqualValues(t, 1, s.Status().RejectedTotal)
	assert.Equal(t, 1, s.Status().Inflight)

	close(gen.block)
	require.NoError(t, <-first)
	assert.Equal(t, 0, s.Status().Inflight)
	assert.Equal(t, 0, s.Status().QueueLen)
}

func TestGenerate_CanceledWhileQueuedCountsAsFailed(t *testing.T) {
	s := newTestService(&fakeGenerator{text: "x"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Generate(ctx, types.GenerateRequest{Image: pngBytes(t)})
	assert.ErrorIs(t, err, context.Canceled)

	st := s.Status()
	assert.EqualValues(t, 1, st.RequestsTotal)
	assert.EqualValues(t, 1, st.FailedTotal)
	assert.EqualValues(t, 0, st.RejectedTotal)
	assert.Equal(t, st.RequestsTotal, st.SucceededTotal+st.FailedTotal+st.RejectedTotal)
}

func TestBeginGeneration_CancelBeforeQueue(t *testing.T) {
	s := newTestService(&fakeGenerator{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.beginGeneration(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBeginGeneration_CancelWhileWaitingForSlot(t *testing.T) {
	s := newTestService(&fakeGenerator{}, func(c *Config) {
		c.MaxConcurrent = 1
		c.MaxQueueDepth = 2
		c.MaxWait = time.Second
	})
	release, err := s.beginGeneration(context.Background())
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err = s.beginGeneration(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, len(s.queueCh), "queue slot returned after cancel")
}

func TestNew_AppliesDefaults(t *testing.T) {
	s := New(Config{})
	st := s.Status()
	assert.Equal(t, defaultMaxConcurrent, st.MaxConcurrent)
	assert.Equal(t, defaultMaxQueueDepth, st.MaxQueueDepth)
	assert.Equal(t, defaultMaxWait, s.maxWait)
}

func TestListModels_ReturnsCopy(t *testing.T) {
	s := newTestService(&fakeGenerator{}, nil)
	models := s.ListModels()
	require.Len(t, models, 2)
	models[0].ID = "mutated"
	assert.Equal(t, "m-default", s.ListModels()[0].ID)
	assert.Equal(t, "m-default", s.DefaultModel())
}

func TestErrorStatusCodes(t *testing.T) {
	type coded interface{ StatusCode() int }
	cases := map[error]int{
		ErrTooBusy:                    http.StatusTooManyRequests,
		ErrModelNotFound("x"):         http.StatusNotFound,
		ErrInvalidInput("x"):          http.StatusBadRequest,
		ErrDependencyUnavailable("x"): http.StatusServiceUnavailable,
	}
	for err, want := range cases {
		var c coded
		require.True(t, errors.As(err, &c), err.Error())
		assert.Equal(t, want, c.StatusCode(), err.Error())
	}
}
