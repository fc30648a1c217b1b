// Package gemini provides an implementation of the generation.Provider interface
// that uses Google's Gemini API.
//
// This package is an infrastructure adapter: it translates the role-tagged
// domain.Messages into a Gemini request (system messages become the system
// instruction, user messages become content) and maps the response, including
// safety blocks and empty candidates, onto the generation error kinds.
//
// Each Generate call makes a single API request. Retries are left to callers.
package gemini
