//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

const swaggerTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "basePath": "{{.BasePath}}",
  "paths": {
    "/response": {
      "post": {
        "summary": "Convert a wireframe image into HTML",
        "consumes": ["multipart/form-data"],
        "produces": ["text/html"],
        "parameters": [
          {"name": "image-upload", "in": "formData", "type": "file", "required": true},
          {"name": "model", "in": "formData", "type": "string", "required": true},
          {"name": "prompt", "in": "formData", "type": "string", "required": true}
        ],
        "responses": {
          "200": {"description": "Generated HTML"},
          "400": {"description": "Missing or invalid field"},
          "404": {"description": "Unknown model"},
          "413": {"description": "Upload too large"},
          "429": {"description": "Too busy"},
          "500": {"description": "Model call failed"}
        }
      }
    },
    "/models": {"get": {"summary": "List models", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
    "/status": {"get": {"summary": "Service status", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
    "/healthz": {"get": {"summary": "Liveness", "responses": {"200": {"description": "ok"}}}},
    "/readyz": {"get": {"summary": "Readiness", "responses": {"200": {"description": "ready"}, "503": {"description": "unavailable"}}}}
  }
}`

func init() {
	swag.Register(swag.Name, &swag.Spec{
		Version:          "1.0",
		BasePath:         "/",
		Title:            "wiregen API",
		Description:      "Wireframe image to HTML conversion.",
		InfoInstanceName: swag.Name,
		SwaggerTemplate:  swaggerTemplate,
		LeftDelim:        "{{",
		RightDelim:       "}}",
	})
}

// MountSwagger serves the API docs under /swagger/.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
