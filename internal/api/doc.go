// Package api implements the HTTP delivery layer: request decoding, handler
// logic for the generation and publish endpoints, and the mapping of error
// kinds onto status codes and response bodies.
//
// The response shapes are a fixed contract with existing clients. Success
// bodies carry a "message" plus the generated payload; error bodies carry
// "error" and, when available, "trace_id".
//
// Subpackages:
//   - middleware: trace IDs, per-IP rate limiting, CORS
//   - shared: context keys, body decoding, response helpers
package api
