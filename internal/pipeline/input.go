package pipeline

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Input is one verification request. Exactly one of the three fields must
// be set; validation happens before any stage runs or any network call is
// made.
type Input struct {
	Text     string // Raw claim or article text
	URL      string // Article URL to fetch and extract
	ImageURL string // Image URL or data URL for vision-capable providers
}

// Validate checks the request shape. It returns an error wrapping
// model.ErrInvalidInput when the shape is wrong; such errors never reach
// the pipeline stages.
func (in Input) Validate() error {
	set := 0
	if strings.TrimSpace(in.Text) != "" {
		set++
	}
	if strings.TrimSpace(in.URL) != "" {
		set++
	}
	if strings.TrimSpace(in.ImageURL) != "" {
		set++
	}

	switch {
	case set == 0:
		return fmt.Errorf("%w: one of text, url or image is required", model.ErrInvalidInput)
	case set > 1:
		return fmt.Errorf("%w: text, url and image are mutually exclusive", model.ErrInvalidInput)
	}

	if in.URL != "" {
		parsed, err := url.Parse(strings.TrimSpace(in.URL))
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("%w: url must be absolute http or https", model.ErrInvalidInput)
		}
	}

	if in.ImageURL != "" {
		img := strings.TrimSpace(in.ImageURL)
		if !strings.HasPrefix(img, "http://") && !strings.HasPrefix(img, "https://") && !strings.HasPrefix(img, "data:image/") {
			return fmt.Errorf("%w: image must be an http(s) URL or a data URL", model.ErrInvalidInput)
		}
	}

	return nil
}
