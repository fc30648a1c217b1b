// Package validation turns decoded JSON request bodies into typed domain
// requests.
//
// Bodies arrive as map[string]any so that absent, null, and wrongly typed
// fields can all be told apart and reported uniformly. Every failure is a
// *domain.ValidationError naming the first offending field. After extraction
// the typed value is checked once more with go-playground/validator struct
// tags. The functions are pure and safe for concurrent use.
package validation
