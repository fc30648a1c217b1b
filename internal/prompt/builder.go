package prompt

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/scriptor-api/internal/config"
	"github.com/phrazzld/scriptor-api/internal/domain"
)

// HTML instruction variants.
const (
	VariantTailwind = "tailwind"
	VariantSemantic = "semantic"
)

// OutputDirective is repeated around the article body so the model returns
// body markup only.
const OutputDirective = "!!!CRITICAL: OUTPUT MUST BE PURE HTML CODE THAT IS INSIDE <body> tag ONLY " +
	"AND DO NOT GIVE <body> tag. NO INTRODUCTORY TEXT, NO COMMENTARY!!!"

// missingCredit stands in for an image supplied without a credit.
const missingCredit = "not provided"

// ErrUnknownVariant is returned when the configured HTML variant has no template.
var ErrUnknownVariant = errors.New("unknown html prompt variant")

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

var variantTemplates = map[string]string{
	VariantTailwind: "html_tailwind.tmpl",
	VariantSemantic: "html_semantic.tmpl",
}

type articleData struct {
	Topic string
}

type htmlData struct {
	Directive       string
	MainArticle     string
	Sections        int
	WordsPerSection int
	ImageCount      int
	ImageURLs       string
	ImageCredits    string
}

// Builder renders prompts for both generation operations.
type Builder struct {
	htmlTemplate   string
	articlePersona string
	htmlPersona    string
}

// NewBuilder validates the variant and captures the personas.
func NewBuilder(cfg config.PromptConfig) (*Builder, error) {
	variant := cfg.HTMLVariant
	if variant == "" {
		variant = VariantTailwind
	}
	name, ok := variantTemplates[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, cfg.HTMLVariant)
	}
	return &Builder{
		htmlTemplate:   name,
		articlePersona: cfg.ArticlePersona,
		htmlPersona:    cfg.HTMLPersona,
	}, nil
}

// ArticleMessages returns the persona (when configured) followed by the
// article instruction.
func (b *Builder) ArticleMessages(req domain.ArticleRequest) (domain.Messages, error) {
	text, err := b.RenderArticle(req)
	if err != nil {
		return nil, err
	}
	return withPersona(b.articlePersona, text), nil
}

// HTMLMessages returns the persona (when configured) followed by the HTML
// formatting instruction for the configured variant.
func (b *Builder) HTMLMessages(req domain.ArticleHTMLRequest) (domain.Messages, error) {
	text, err := b.RenderHTML(req)
	if err != nil {
		return nil, err
	}
	return withPersona(b.htmlPersona, text), nil
}

// RenderArticle returns the article instruction alone.
func (b *Builder) RenderArticle(req domain.ArticleRequest) (string, error) {
	return render("article.tmpl", articleData{Topic: req.Topic})
}

// RenderHTML returns the HTML instruction alone.
func (b *Builder) RenderHTML(req domain.ArticleHTMLRequest) (string, error) {
	return render(b.htmlTemplate, htmlData{
		Directive:       OutputDirective,
		MainArticle:     req.MainArticle,
		Sections:        req.NumberOfSections,
		WordsPerSection: req.WordsPerSection,
		ImageCount:      len(req.Images),
		ImageURLs:       strings.Join(req.ImageURLs(), ", "),
		ImageCredits:    strings.Join(CreditPairs(req.Images), ", "),
	})
}

// CreditPairs formats each image as "URL (Credit: X)" in request order.
func CreditPairs(images []domain.ImageRef) []string {
	pairs := make([]string, 0, len(images))
	for _, img := range images {
		credit := img.Credit
		if credit == "" {
			credit = missingCredit
		}
		pairs = append(pairs, fmt.Sprintf("%s (Credit: %s)", img.URL, credit))
	}
	return pairs
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func withPersona(persona, prompt string) domain.Messages {
	if persona == "" {
		return domain.Messages{domain.UserMessage(prompt)}
	}
	return domain.Messages{domain.SystemMessage(persona), domain.UserMessage(prompt)}
}
