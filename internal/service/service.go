package service

import (
	"sync"
	"time"

	"wiregen/internal/generator"
	"wiregen/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxConcurrent = 4
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
)

// Config encapsulates all tunables for Service construction.
type Config struct {
	Generator      generator.Generator
	Models         []types.Model
	DefaultModel   string
	RestrictModels bool
	// Admission
	MaxConcurrent int
	MaxQueueDepth int
	MaxWait       time.Duration
	// Per-call deadline for the model; zero disables it.
	GenerateTimeout time.Duration
}

type Service struct {
	gen            generator.Generator
	models         []types.Model
	known          map[string]bool
	defaultModel   string
	restrictModels bool
	timeout        time.Duration

	// Admission primitives
	queueCh chan struct{} // admitted requests (waiting + in-flight)
	genCh   chan struct{} // in-flight model calls
	maxWait time.Duration

	mu        sync.Mutex
	requests  uint64
	succeeded uint64
	failed    uint64
	rejected  uint64
	lastErr   string
	startTime time.Time
}

// New constructs a Service from cfg, applying package defaults.
func New(cfg Config) *Service {
	s := &Service{
		gen:            cfg.Generator,
		models:         append([]types.Model(nil), cfg.Models...),
		known:          make(map[string]bool, len(cfg.Models)),
		defaultModel:   cfg.DefaultModel,
		restrictModels: cfg.RestrictModels,
		timeout:        cfg.GenerateTimeout,
		maxWait:        cfg.MaxWait,
		startTime:      time.Now(),
	}
	for _, m := range cfg.Models {
		s.known[m.ID] = true
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	maxQueue := cfg.MaxQueueDepth
	if maxQueue <= 0 {
		maxQueue = defaultMaxQueueDepth
	}
	if s.maxWait <= 0 {
		s.maxWait = defaultMaxWait
	}
	s.queueCh = make(chan struct{}, maxQueue)
	s.genCh = make(chan struct{}, maxConcurrent)
	return s
}

// Ready reports whether a generator is configured.
func (s *Service) Ready() bool { return s.gen != nil }

// DefaultModel is the model used when a request leaves it empty.
func (s *Service) DefaultModel() string { return s.defaultModel }

// ListModels returns a copy of the catalog.
func (s *Service) ListModels() []types.Model {
	out := make([]types.Model, len(s.models))
	copy(out, s.models)
	return out
}
