package api

// Fixed response messages.
const (
	MsgArticleGenerated = "Article generated"
	MsgHTMLGenerated    = "HTML generated"

	MsgTopicRequired      = "Topic is required"
	MsgMissingParameters  = "Missing required input parameters"
	MsgPublishUnavailable = "Publishing is not configured"
	MsgBodyTooLarge       = "Request body too large"

	internalErrorPrefix = "Internal Server Error: "
	networkErrorPrefix  = "Network error: "
)

// ArticleResponse is the success body of POST /generate-article.
type ArticleResponse struct {
	Message string `json:"message"`
	Article string `json:"article"`
}

// ArticleHTMLResponse is the success body of POST /generate-article-html.
type ArticleHTMLResponse struct {
	Message    string `json:"message"`
	HTMLOutput string `json:"html_output"`
}
