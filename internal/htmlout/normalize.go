package htmlout

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/phrazzld/scriptor-api/internal/config"
	"github.com/yuin/goldmark"
)

var (
	fencePattern    = regexp.MustCompile("(?s)^```[A-Za-z]*[ \t]*\r?\n(.*?)\r?\n?```$")
	elementPattern  = regexp.MustCompile(`<[A-Za-z][A-Za-z0-9-]*(\s[^>]*)?/?>`)
	documentPattern = regexp.MustCompile(`(?i)<(html|body|head)[\s>]`)
)

// layoutStyles are the CSS properties kept on any element when sanitizing.
var layoutStyles = []string{
	"display",
	"margin", "margin-top", "margin-bottom", "margin-left", "margin-right",
	"max-width", "width", "height",
	"text-align",
}

// Normalizer turns raw model output into body markup.
type Normalizer struct {
	sanitize bool
	policy   *bluemonday.Policy
	markdown goldmark.Markdown
}

// NewNormalizer builds a Normalizer from the HTML settings.
func NewNormalizer(cfg config.HTMLConfig) *Normalizer {
	return &Normalizer{
		sanitize: cfg.Sanitize,
		policy:   newPolicy(),
		markdown: goldmark.New(),
	}
}

// newPolicy keeps the structure and styling hooks generated articles rely on
// while dropping scripts and event handlers.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "header", "footer", "main", "div", "span", "figure", "figcaption")
	p.AllowAttrs("class", "id").Globally()
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	// Inline layout the HTML prompts ask for: centred images and captions.
	p.AllowStyles(layoutStyles...).Globally()
	return p
}

// Normalize strips fences, renders Markdown, unwraps documents, and sanitizes
// when enabled. Whitespace-only input yields an empty string.
func (n *Normalizer) Normalize(raw string) (string, error) {
	out := StripCodeFence(strings.TrimSpace(raw))
	if out == "" {
		return "", nil
	}

	if !elementPattern.MatchString(out) {
		var buf bytes.Buffer
		if err := n.markdown.Convert([]byte(out), &buf); err != nil {
			return "", fmt.Errorf("failed to render markdown output: %w", err)
		}
		out = buf.String()
	}

	if documentPattern.MatchString(out) {
		body, err := unwrapBody(out)
		if err != nil {
			return "", err
		}
		out = body
	}

	if n.sanitize {
		out = n.policy.Sanitize(out)
	}

	return strings.TrimSpace(out), nil
}

// StripCodeFence removes one surrounding Markdown code fence, if present.
func StripCodeFence(s string) string {
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

func unwrapBody(doc string) (string, error) {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("failed to parse html output: %w", err)
	}
	body, err := parsed.Find("body").First().Html()
	if err != nil {
		return "", fmt.Errorf("failed to render html body: %w", err)
	}
	return body, nil
}
