// Package generation defines the boundary between the application core and
// external AI/LLM text-generation services. The Provider interface accepts a
// role-tagged message sequence and a model identifier and returns the
// generated text or a classified failure; implementations live under
// internal/platform (Groq via the OpenAI-compatible API, Gemini via genai).
package generation
