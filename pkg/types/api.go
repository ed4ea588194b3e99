package types

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of available models.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: image-upload is required
	Error string `json:"error" example:"image-upload is required"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Provider backing generation (vertex, gemini, openai, stub).
	// example: vertex
	Provider string `json:"provider" example:"vertex"`
	// Overall service state (ready, unavailable).
	// example: ready
	State string `json:"state" example:"ready"`
	// Model used when a request omits one.
	// example: gemini-1.0-pro-vision
	DefaultModel string `json:"default_model" example:"gemini-1.0-pro-vision"`
	// Number of generations currently calling the model.
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Number of admitted requests (in-flight plus waiting).
	// example: 2
	QueueLen int `json:"queue_len" example:"2"`
	// Maximum concurrent model calls.
	// example: 4
	MaxConcurrent int `json:"max_concurrent" example:"4"`
	// Maximum admitted requests before backpressure triggers.
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
	// Total generation requests received.
	// example: 120
	RequestsTotal uint64 `json:"requests_total" example:"120"`
	// Generations that returned text.
	// example: 110
	SucceededTotal uint64 `json:"succeeded_total" example:"110"`
	// Generations that failed upstream or on input checks.
	// example: 7
	FailedTotal uint64 `json:"failed_total" example:"7"`
	// Requests rejected by admission (429).
	// example: 3
	RejectedTotal uint64 `json:"rejected_total" example:"3"`
	// Last error observed (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
