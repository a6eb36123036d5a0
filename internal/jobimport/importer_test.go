package jobimport

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"resumind-backend/internal/ai"
)

type stubFetcher struct {
	content string
	err     error
}

func (s *stubFetcher) PageContent(ctx context.Context, rawURL string) (string, error) {
	return s.content, s.err
}

type scriptedChat struct {
	replies []string
	errs    []error
	calls   int
}

func (s *scriptedChat) Chat(ctx context.Context, prompt string, opts ai.ChatOptions) (*ai.Response, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	reply := ""
	if i < len(s.replies) {
		reply = s.replies[i]
	}
	return &ai.Response{Message: ai.Message{Role: "assistant", Content: reply}}, nil
}

func (s *scriptedChat) Feedback(ctx context.Context, resumeKey, instructions string, opts ai.ChatOptions) (*ai.Response, error) {
	return nil, errors.New("not implemented")
}

func TestImportHappyPath(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		`{"companyName": " Acme ", "jobTitle": "Backend Engineer", "jobDescription": "Build services in Go."}`,
	}}
	im := NewImporter(&stubFetcher{content: "Acme is hiring a Backend Engineer"}, chat, "gpt-4o-mini")

	got, err := im.Import(context.Background(), "https://jobs.example.com/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CompanyName != "Acme" {
		t.Fatalf("company not trimmed: %q", got.CompanyName)
	}
	if got.JobTitle != "Backend Engineer" || got.JobDescription != "Build services in Go." {
		t.Fatalf("unexpected result: %+v", got)
	}
	if chat.calls != 1 {
		t.Fatalf("expected 1 model call, got %d", chat.calls)
	}
}

func TestImportRetriesThenSucceeds(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"not json at all",
		`{"companyName": "Acme", "jobTitle": "", "jobDescription": "desc"}`,
		`{"companyName": "Acme", "jobTitle": "SRE", "jobDescription": "Keep it running."}`,
	}}
	im := NewImporter(&stubFetcher{content: "posting"}, chat, "gpt-4o-mini")

	got, err := im.Import(context.Background(), "https://jobs.example.com/2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.JobTitle != "SRE" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if chat.calls != 3 {
		t.Fatalf("expected 3 model calls, got %d", chat.calls)
	}
}

func TestImportBoundedAttemptsSurfaceLastError(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"garbage one",
		"garbage two",
		"garbage three",
		"never reached",
	}}
	im := NewImporter(&stubFetcher{content: "posting"}, chat, "gpt-4o-mini")

	_, err := im.Import(context.Background(), "https://jobs.example.com/3")
	if err == nil {
		t.Fatal("expected error after exhausted attempts")
	}
	if chat.calls != maxAttempts {
		t.Fatalf("expected exactly %d model calls, got %d", maxAttempts, chat.calls)
	}
	if !strings.Contains(err.Error(), "parse model response as json") {
		t.Fatalf("expected last parse error to surface, got %v", err)
	}
}

func TestImportMissingFieldsError(t *testing.T) {
	reply := `{"companyName": "Acme", "jobTitle": "Dev", "jobDescription": ""}`
	chat := &scriptedChat{replies: []string{reply, reply, reply}}
	im := NewImporter(&stubFetcher{content: "posting"}, chat, "gpt-4o-mini")

	_, err := im.Import(context.Background(), "https://jobs.example.com/4")
	if err == nil || !strings.Contains(err.Error(), "missing required job details") {
		t.Fatalf("expected missing-details error, got %v", err)
	}
}

func TestImportFetchErrorShortCircuits(t *testing.T) {
	chat := &scriptedChat{}
	im := NewImporter(&stubFetcher{err: ErrInvalidURL}, chat, "gpt-4o-mini")

	_, err := im.Import(context.Background(), "nope")
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
	if chat.calls != 0 {
		t.Fatalf("model must not be called when fetch fails, got %d calls", chat.calls)
	}
}

func TestBuildExtractionPromptTruncates(t *testing.T) {
	long := strings.Repeat("Q", maxPromptChars+100)
	prompt := buildExtractionPrompt(long)
	if got := strings.Count(prompt, "Q"); got != maxPromptChars {
		t.Fatalf("expected content truncated to %d chars, got %d", maxPromptChars, got)
	}
	if !strings.Contains(prompt, `"companyName"`) {
		t.Fatal("prompt must describe the expected fields")
	}
}

func TestBuildExtractionPromptKeepsRunesWhole(t *testing.T) {
	long := strings.Repeat("é", maxPromptChars)
	prompt := buildExtractionPrompt(long)
	if !utf8.ValidString(prompt) {
		t.Fatal("truncation must not split a multi-byte rune")
	}
}
