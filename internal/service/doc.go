// Package service coordinates wireframe conversions. It is structured into
// small files by concern:
//
//   - service.go: Service type, constructor, catalog getters.
//   - errors.go: error kinds carrying their HTTP status (StatusCode).
//   - admission.go: bounded queue and in-flight limit in front of the model.
//   - generate.go: Generate entry point (model resolution, upload checks, call).
//   - markup.go: CleanMarkup, fence stripping of model output.
//   - status.go: Status reporting.
//   - metrics.go: Prometheus collectors for generations.
//
// External packages should use the public methods only (New, Generate,
// ListModels, Status, Ready).
package service
