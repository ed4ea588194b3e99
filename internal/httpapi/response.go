package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/mold/v4/modifiers"

	"wiregen/pkg/types"
)

const (
	fieldImage  = "image-upload"
	fieldModel  = "model"
	fieldPrompt = "prompt"
)

// responseForm holds the text fields of POST /response. The prompt is
// forwarded verbatim.
type responseForm struct {
	Model  string `mod:"trim"`
	Prompt string
}

var conform = modifiers.New()

// errTooLarge marks a body over maxUploadBytes.
var errTooLarge = errors.New("request body too large")

// handleResponse converts the uploaded wireframe into HTML.
func handleResponse(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := readGenerateRequest(w, r)
		if err != nil {
			if errors.Is(err, errTooLarge) {
				writeJSONError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", maxUploadBytes))
				return
			}
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Model == "" {
			req.Model = svc.DefaultModel()
		}

		start := time.Now()
		lvl := requestLogLevel(r)
		logGenerateStart(r, lvl, req.Model, len(req.Image), req.Prompt)

		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(r.Context(), serverBaseCtx)
		defer cancel()
		html, err := svc.Generate(ctx, req)
		if err != nil {
			// Client went away or the server is shutting down.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status, msg := statusFor(err)
			if status == http.StatusTooManyRequests {
				IncrementBackpressure("queue")
			}
			if status >= http.StatusInternalServerError {
				reportError(r, err)
			}
			logGenerateEnd(r, lvl, status, start, 0, err)
			writeJSONError(w, status, msg)
			return
		}

		logGenerateEnd(r, lvl, http.StatusOK, start, len(html), nil)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, html)
	}
}

// readGenerateRequest parses the multipart form. All three fields must be
// present; the model value may be empty.
func readGenerateRequest(w http.ResponseWriter, r *http.Request) (types.GenerateRequest, error) {
	var req types.GenerateRequest
	if r.ContentLength > maxUploadBytes {
		return req, errTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return req, errTooLarge
		}
		return req, fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile(fieldImage)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return req, fmt.Errorf("%s is required", fieldImage)
		}
		return req, fmt.Errorf("read %s: %w", fieldImage, err)
	}
	defer file.Close()

	values := r.MultipartForm.Value
	for _, key := range []string{fieldModel, fieldPrompt} {
		if _, ok := values[key]; !ok {
			return req, fmt.Errorf("%s is required", key)
		}
	}
	form := responseForm{Model: values[fieldModel][0], Prompt: values[fieldPrompt][0]}
	if err := conform.Struct(r.Context(), &form); err != nil {
		return req, fmt.Errorf("normalize form: %w", err)
	}

	image, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("read %s: %w", fieldImage, err)
	}
	req.Model = form.Model
	req.Prompt = form.Prompt
	req.Image = image
	return req, nil
}
