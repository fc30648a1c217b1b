package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scriptor-api/internal/domain"
)

// Field names as they appear in request bodies.
const (
	FieldTopic            = "topic"
	FieldMainArticle      = "main_article"
	FieldNumberOfSections = "number_of_sections"
	FieldWordsPerSection  = "words_per_section"
	FieldImageURLs        = "image_urls"
	FieldTitle            = "title"
	FieldThumbnailURL     = "thumbnail_url"
	FieldHTMLString       = "html_string"
)

var validate = newValidator()

// newValidator reports struct fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseArticleRequest extracts the topic for article generation.
func ParseArticleRequest(raw map[string]any) (domain.ArticleRequest, error) {
	topic, err := presentString(raw, FieldTopic)
	if err != nil {
		return domain.ArticleRequest{}, err
	}

	req := domain.ArticleRequest{Topic: topic}
	if err := checkStruct(req); err != nil {
		return domain.ArticleRequest{}, err
	}
	return req, nil
}

// ParseArticleHTMLRequest extracts the HTML formatting parameters. Fields are
// checked in a fixed order and the first failure is reported.
func ParseArticleHTMLRequest(raw map[string]any) (domain.ArticleHTMLRequest, error) {
	var req domain.ArticleHTMLRequest
	var err error

	if req.MainArticle, err = presentString(raw, FieldMainArticle); err != nil {
		return domain.ArticleHTMLRequest{}, err
	}
	if req.NumberOfSections, err = positiveInt(raw, FieldNumberOfSections); err != nil {
		return domain.ArticleHTMLRequest{}, err
	}
	if req.WordsPerSection, err = positiveInt(raw, FieldWordsPerSection); err != nil {
		return domain.ArticleHTMLRequest{}, err
	}
	if req.Images, err = imageRefs(raw, FieldImageURLs); err != nil {
		return domain.ArticleHTMLRequest{}, err
	}

	if err := checkStruct(req); err != nil {
		return domain.ArticleHTMLRequest{}, err
	}
	return req, nil
}

// ParsePublishRequest extracts the article to forward downstream.
func ParsePublishRequest(raw map[string]any) (domain.PublishRequest, error) {
	var req domain.PublishRequest
	var err error

	if req.Title, err = requiredString(raw, FieldTitle); err != nil {
		return domain.PublishRequest{}, err
	}
	if req.ThumbnailURL, err = optionalString(raw, FieldThumbnailURL); err != nil {
		return domain.PublishRequest{}, err
	}
	if req.HTMLContent, err = requiredString(raw, FieldHTMLString); err != nil {
		return domain.PublishRequest{}, err
	}

	if err := checkStruct(req); err != nil {
		return domain.PublishRequest{}, err
	}
	return req, nil
}

// presentString requires a non-empty string. Whitespace counts as content.
func presentString(raw map[string]any, field string) (string, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return "", domain.NewValidationError(field, "is required", nil)
	}
	s, ok := value.(string)
	if !ok {
		return "", domain.NewValidationError(field, "must be a string", nil)
	}
	if s == "" {
		return "", domain.NewValidationError(field, "is required", nil)
	}
	return s, nil
}

// requiredString requires a string with at least one non-space character.
func requiredString(raw map[string]any, field string) (string, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return "", domain.NewValidationError(field, "is required", nil)
	}
	s, ok := value.(string)
	if !ok {
		return "", domain.NewValidationError(field, "must be a string", nil)
	}
	if strings.TrimSpace(s) == "" {
		return "", domain.NewValidationError(field, "is required", nil)
	}
	return s, nil
}

func optionalString(raw map[string]any, field string) (string, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", domain.NewValidationError(field, "must be a string", nil)
	}
	return s, nil
}

// positiveInt accepts a JSON number or a numeric string holding a positive
// integer.
func positiveInt(raw map[string]any, field string) (int, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return 0, domain.NewValidationError(field, "is required", nil)
	}

	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, domain.NewValidationError(field, "must be a positive integer", nil)
		}
		n = f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, domain.NewValidationError(field, "is required", nil)
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, domain.NewValidationError(field, "must be a positive integer", nil)
		}
		n = float64(i)
	case bool:
		if !v {
			return 0, domain.NewValidationError(field, "is required", nil)
		}
		return 0, domain.NewValidationError(field, "must be a positive integer", nil)
	default:
		return 0, domain.NewValidationError(field, "must be a positive integer", nil)
	}

	if n == 0 {
		return 0, domain.NewValidationError(field, "is required", nil)
	}
	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, domain.NewValidationError(field, "must be a positive integer", nil)
	}
	return int(n), nil
}

// imageRefs accepts a non-empty array whose items are either {image, credit}
// objects or bare URL strings.
func imageRefs(raw map[string]any, field string) ([]domain.ImageRef, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return nil, domain.NewValidationError(field, "is required", nil)
	}
	items, ok := value.([]any)
	if !ok {
		return nil, domain.NewValidationError(field, "must be an array", nil)
	}
	if len(items) == 0 {
		return nil, domain.NewValidationError(field, "is required", nil)
	}

	refs := make([]domain.ImageRef, 0, len(items))
	for i, item := range items {
		itemField := fmt.Sprintf("%s[%d]", field, i)

		switch v := item.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return nil, domain.NewValidationError(itemField+".image", "is required", nil)
			}
			refs = append(refs, domain.ImageRef{URL: v})
		case map[string]any:
			url, err := requiredString(v, "image")
			if err != nil {
				return nil, prefixField(err, itemField)
			}
			credit, err := optionalString(v, "credit")
			if err != nil {
				return nil, prefixField(err, itemField)
			}
			refs = append(refs, domain.ImageRef{URL: url, Credit: credit})
		default:
			return nil, domain.NewValidationError(itemField, "must be an object or a string", nil)
		}
	}
	return refs, nil
}

func prefixField(err error, prefix string) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return domain.NewValidationError(prefix+"."+ve.Field, ve.Message, ve.Err)
	}
	return err
}

// checkStruct applies the struct tags and reports the first failing field.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.SplitN(fe.Namespace(), ".", 2)
		name := fe.Field()
		if len(field) == 2 {
			name = field[1]
		}
		return domain.NewValidationError(name, fmt.Sprintf("failed on the '%s' rule", fe.Tag()), err)
	}
	return domain.NewValidationError("request", "is invalid", err)
}
