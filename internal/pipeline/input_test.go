package pipeline

import (
	"errors"
	"testing"

	"github.com/claimlens/claimlens/internal/model"
)

func TestInputValidate(t *testing.T) {
	cases := []struct {
		name    string
		in      Input
		wantErr bool
	}{
		{"text only", Input{Text: "a claim"}, false},
		{"url only", Input{URL: "https://example.com/article"}, false},
		{"image https", Input{ImageURL: "https://example.com/img.png"}, false},
		{"image data url", Input{ImageURL: "data:image/png;base64,iVBORw0KGgo="}, false},
		{"nothing set", Input{}, true},
		{"whitespace only", Input{Text: "   "}, true},
		{"text and url", Input{Text: "a", URL: "https://example.com"}, true},
		{"url and image", Input{URL: "https://example.com", ImageURL: "https://example.com/i.png"}, true},
		{"all three", Input{Text: "a", URL: "https://example.com", ImageURL: "https://example.com/i.png"}, true},
		{"relative url", Input{URL: "/local/path"}, true},
		{"ftp url", Input{URL: "ftp://example.com/file"}, true},
		{"bare image path", Input{ImageURL: "image.png"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.wantErr {
				if !errors.Is(err, model.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
