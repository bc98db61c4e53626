package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
)

// stubChecker validates the input like the real pipeline, then returns a
// canned result or error.
type stubChecker struct {
	result *model.VerificationResult
	err    error
	lastIn pipeline.Input
}

func (s *stubChecker) Check(ctx context.Context, in pipeline.Input) (*model.VerificationResult, error) {
	s.lastIn = in
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func sampleResult() *model.VerificationResult {
	return &model.VerificationResult{
		Verdict:    model.VerdictLikelyTrue,
		Confidence: 0.81,
		MainClaim:  "water boils at 100C",
		KeyFacts:   []string{},
		Context:    model.ContextSummary{MissingContext: []string{}},
		Timeline:   []model.TimelineEntry{},
		Evidence: model.EvidenceBreakdown{
			DirectEvidence:     []model.EvidenceItem{},
			ExistingFactChecks: []model.EvidenceItem{},
		},
	}
}

func doRequest(t *testing.T, checker Checker, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	srv := NewServer(checker, nil)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestCheckText_OK(t *testing.T) {
	checker := &stubChecker{result: sampleResult()}

	rec := doRequest(t, checker, http.MethodPost, "/api/factcheck/text", `{"text": "water boils at 100C"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if checker.lastIn.Text != "water boils at 100C" {
		t.Errorf("checker got input %+v", checker.lastIn)
	}

	var result model.VerificationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if result.Verdict != model.VerdictLikelyTrue || result.Confidence != 0.81 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestCheckURL_OK(t *testing.T) {
	checker := &stubChecker{result: sampleResult()}

	rec := doRequest(t, checker, http.MethodPost, "/api/factcheck/url", `{"url": "https://example.com/article"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if checker.lastIn.URL != "https://example.com/article" {
		t.Errorf("checker got input %+v", checker.lastIn)
	}
}

func TestCheckImage_OK(t *testing.T) {
	checker := &stubChecker{result: sampleResult()}

	rec := doRequest(t, checker, http.MethodPost, "/api/factcheck/image", `{"image_url": "https://example.com/img.png"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if checker.lastIn.ImageURL != "https://example.com/img.png" {
		t.Errorf("checker got input %+v", checker.lastIn)
	}
}

func TestCheckImage_MultipartUpload(t *testing.T) {
	checker := &stubChecker{result: sampleResult()}
	srv := NewServer(checker, nil)

	// Minimal valid PNG header so content sniffing sees an image
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "claim.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(png); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/factcheck/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(checker.lastIn.ImageURL, "data:image/png;base64,") {
		t.Errorf("expected data URL input, got %.40q", checker.lastIn.ImageURL)
	}
}

func TestCheckImage_MultipartNonImageRejected(t *testing.T) {
	checker := &stubChecker{result: sampleResult()}
	srv := NewServer(checker, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("plain text, not an image")); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/factcheck/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCheckText_EmptyBodyIsBadRequest(t *testing.T) {
	checker := &stubChecker{result: sampleResult()}

	rec := doRequest(t, checker, http.MethodPost, "/api/factcheck/text", `{"text": ""}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error message in response")
	}
}

func TestCheckText_MalformedJSONIsBadRequest(t *testing.T) {
	checker := &stubChecker{result: sampleResult()}

	rec := doRequest(t, checker, http.MethodPost, "/api/factcheck/text", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCheckText_UpstreamFailureIsBadGateway(t *testing.T) {
	checker := &stubChecker{err: model.ErrUpstream}

	rec := doRequest(t, checker, http.MethodPost, "/api/factcheck/text", `{"text": "a claim"}`)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, &stubChecker{}, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected health body: %s", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doRequest(t, &stubChecker{}, http.MethodGet, "/metrics", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
