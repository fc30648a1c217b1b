// Package groq provides an implementation of generation.Provider backed by an
// OpenAI-compatible chat completions API. Groq serves that API at
// https://api.groq.com/openai/v1; any other compatible endpoint can be used by
// configuring a different base URL.
//
// The client is constructed once from configuration and injected into the
// generation service; it holds no per-request state and is safe for
// concurrent use. Each Generate call performs exactly one HTTP request: SDK
// retries are disabled so a failure is reported to the caller as-is.
package groq
