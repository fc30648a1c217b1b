package domain

// PublishRequest carries a finished article to the downstream content
// management endpoint. It is forwarded verbatim.
type PublishRequest struct {
	Title        string `json:"title"         validate:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
	HTMLContent  string `json:"html_string"   validate:"required"`
}
