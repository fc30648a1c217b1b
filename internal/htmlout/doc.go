// Package htmlout post-processes model output for the HTML operation.
//
// Models sometimes ignore the "body markup only" instruction: they wrap the
// answer in a Markdown code fence, return Markdown instead of HTML, or emit a
// full document. Normalizer undoes those deviations and, when enabled,
// sanitizes the markup. Inspect reports structural counts so callers can
// compare them with what was requested. Neither ever rejects output.
package htmlout
