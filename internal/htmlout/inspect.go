package htmlout

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Stats counts the structural elements of a generated article.
type Stats struct {
	// Sections counts <section> elements, or <h2> headings when the markup
	// uses none.
	Sections int
	Images   int
}

// Inspect parses markup and counts its sections and images.
func Inspect(markup string) (Stats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Stats{}, fmt.Errorf("failed to parse html: %w", err)
	}

	sections := doc.Find("section").Length()
	if sections == 0 {
		sections = doc.Find("h2").Length()
	}

	return Stats{
		Sections: sections,
		Images:   doc.Find("img").Length(),
	}, nil
}
