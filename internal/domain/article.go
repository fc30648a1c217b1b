package domain

// ImageRef is one image the generated HTML must embed. Its position in the
// request is its identity: images are listed in the prompt, and expected in
// the output, in request order.
type ImageRef struct {
	URL    string `json:"image"  validate:"required"`
	Credit string `json:"credit"`
}

// ArticleRequest asks for an article written about a topic.
type ArticleRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// ArticleHTMLRequest asks for a styled HTML rendition of an existing article.
type ArticleHTMLRequest struct {
	MainArticle      string     `json:"main_article"       validate:"required"`
	NumberOfSections int        `json:"number_of_sections" validate:"required,gt=0"`
	WordsPerSection  int        `json:"words_per_section"  validate:"required,gt=0"`
	Images           []ImageRef `json:"image_urls"         validate:"required,min=1,dive"`
}

// ImageURLs returns the raw image URLs in request order.
func (r ArticleHTMLRequest) ImageURLs() []string {
	urls := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

// GenerationResult is the complete text produced by one generation call.
// Generation is atomic: there is no partial result.
type GenerationResult struct {
	Text string
}
