package jobimport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resumind-backend/internal/ai"
	"resumind-backend/internal/shared/telemetry"
)

const (
	maxPromptChars = 8000
	maxAttempts    = 3
)

// Result is the structured job posting extracted from a page.
type Result struct {
	CompanyName    string `json:"companyName"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
}

// PageFetcher is satisfied by Fetcher; tests swap in fakes.
type PageFetcher interface {
	PageContent(ctx context.Context, rawURL string) (string, error)
}

// Importer turns a job posting URL into a Result.
type Importer struct {
	fetcher PageFetcher
	chat    ai.Client
	model   string
}

func NewImporter(fetcher PageFetcher, chat ai.Client, model string) *Importer {
	return &Importer{fetcher: fetcher, chat: chat, model: model}
}

// Import fetches the page and extracts the job details with a bounded
// number of model attempts. A candidate is accepted only when all three
// fields normalize non-empty; otherwise the attempt's error is carried
// and the last one is surfaced after the final attempt.
func (im *Importer) Import(ctx context.Context, rawURL string) (*Result, error) {
	pageContent, err := im.fetcher.PageContent(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if pageContent == "" {
		return nil, errors.New("no content found at the provided url")
	}

	prompt := buildExtractionPrompt(pageContent)
	temperature := 0.0

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := im.chat.Chat(ctx, prompt, ai.ChatOptions{
			Model:       im.model,
			Temperature: &temperature,
		})
		if err != nil {
			lastErr = err
			continue
		}

		content := ai.MessageText(resp.Message.Content)
		if content == "" {
			lastErr = errors.New("model response content is empty")
			continue
		}

		var candidate map[string]any
		if err := json.Unmarshal([]byte(content), &candidate); err != nil {
			lastErr = fmt.Errorf("parse model response as json: %w", err)
			continue
		}

		result := Result{
			CompanyName:    NormalizeField(candidate["companyName"]),
			JobTitle:       NormalizeField(candidate["jobTitle"]),
			JobDescription: NormalizeField(candidate["jobDescription"]),
		}
		if result.CompanyName == "" || result.JobTitle == "" || result.JobDescription == "" {
			lastErr = errors.New("extracted data missing required job details")
			continue
		}

		telemetry.Info("jobimport.extracted", map[string]any{
			"url":     rawURL,
			"attempt": attempt,
			"company": result.CompanyName,
		})
		return &result, nil
	}

	if lastErr == nil {
		lastErr = errors.New("failed to extract job details after multiple attempts")
	}
	return nil, lastErr
}

func buildExtractionPrompt(pageContent string) string {
	pageContent = truncateRunes(pageContent, maxPromptChars)
	var b strings.Builder
	b.WriteString(`You are a job posting parser. Extract the following information from the provided job posting content and return ONLY a valid JSON object with these exact fields:
{
  "companyName": "the company name",
  "jobTitle": "the job title/position",
  "jobDescription": "the full job description including responsibilities and requirements"
}

If any field cannot be determined, use an empty string for that field.
Return ONLY the JSON object, no additional text or explanation.

Job Posting Content:
`)
	b.WriteString(pageContent)
	return b.String()
}
