package domain

import (
	"errors"
	"testing"
)

func TestMessagesValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msgs    Messages
		wantErr bool
	}{
		{name: "single user message", msgs: Messages{UserMessage("write")}},
		{name: "system then user", msgs: Messages{SystemMessage("persona"), UserMessage("write")}},
		{name: "empty", msgs: nil, wantErr: true},
		{name: "ends with system", msgs: Messages{UserMessage("write"), SystemMessage("persona")}, wantErr: true},
		{name: "unknown role", msgs: Messages{{Role: "assistant", Content: "x"}, UserMessage("write")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.msgs.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMessages) {
					t.Fatalf("expected ErrInvalidMessages, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestMessagesPrompt(t *testing.T) {
	t.Parallel()

	msgs := Messages{SystemMessage("persona"), UserMessage("the task")}
	if got := msgs.Prompt(); got != "the task" {
		t.Errorf("expected last user content, got %q", got)
	}
	if got := Messages(nil).Prompt(); got != "" {
		t.Errorf("expected empty prompt for no messages, got %q", got)
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("topic", "is required", nil)
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
	if err.Error() != "topic is required" {
		t.Errorf("unexpected message %q", err.Error())
	}

	cause := errors.New("not a number")
	wrapped := NewValidationError("words_per_section", "must be a positive integer", cause)
	if !errors.Is(wrapped, ErrValidation) || !errors.Is(wrapped, cause) {
		t.Error("ValidationError should match both ErrValidation and its cause")
	}

	var ve *ValidationError
	if !errors.As(error(wrapped), &ve) || ve.Field != "words_per_section" {
		t.Errorf("expected to extract field name, got %+v", ve)
	}
}

func TestArticleHTMLRequestImageURLs(t *testing.T) {
	t.Parallel()

	req := ArticleHTMLRequest{Images: []ImageRef{{URL: "a.jpg", Credit: "X"}, {URL: "b.jpg"}}}
	got := req.ImageURLs()
	if len(got) != 2 || got[0] != "a.jpg" || got[1] != "b.jpg" {
		t.Errorf("unexpected urls %v", got)
	}
}
