// Package service contains the generation use cases.
//
// GenerationService orchestrates one request end to end: build the prompt,
// make exactly one provider call under a per-call deadline, and, for the HTML
// operation, normalize the output. It holds no mutable state between requests
// and is safe for concurrent use.
//
// Failures keep their kind so the API layer can map them with errors.Is:
// provider failures surface as *generation.ProviderError carrying the raw
// provider detail; anything else is wrapped in *GenerationServiceError.
package service
