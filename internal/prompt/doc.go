// Package prompt builds the role-tagged messages sent to the language model.
//
// Prompts are rendered from text/template files embedded in the binary. The
// builder is pure: the same request always yields byte-identical messages, so
// prompts can be asserted on directly in tests. The HTML instructions come in
// two variants selected by configuration ("tailwind" and "semantic"); both
// state the section count as a strict requirement, list every image URL with
// its credit, and place the article text after all structural instructions.
package prompt
