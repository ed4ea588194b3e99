package types

// Model is a generative model the front-end offers for wireframe conversion.
type Model struct {
	// Stable identifier passed to the provider.
	// example: gemini-1.0-pro-vision
	ID string `json:"id" yaml:"id" example:"gemini-1.0-pro-vision"`
	// Human-friendly name shown on the home page.
	// example: Gemini 1.0 Pro Vision
	Name string `json:"name" yaml:"name" example:"Gemini 1.0 Pro Vision"`
	// Optional family (e.g., gemini, gpt).
	// example: gemini
	Family string `json:"family,omitempty" yaml:"family,omitempty" example:"gemini"`
	// Provider serving this model.
	// example: vertex
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty" example:"vertex"`
	// True for the model used when a request leaves the model field empty.
	Default bool `json:"default,omitempty" yaml:"default,omitempty"`
}

// GenerateRequest is a single wireframe conversion request.
type GenerateRequest struct {
	// Model identifier. Empty selects the server default.
	Model string
	// Prompt sent to the model after the wireframe.
	Prompt string
	// Raw wireframe image bytes.
	Image []byte
	// MIME type of Image, set by the service from the sniffed content.
	MIMEType string
}
