// Package jobimport fetches a job posting URL, strips it down to
// readable text and asks a chat model to extract the structured job
// details used to prefill the analysis form.
package jobimport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ErrInvalidURL is returned when the supplied job posting URL cannot
// be parsed or uses an unsupported scheme.
var ErrInvalidURL = errors.New("invalid job posting url")

const (
	fetchUserAgent    = "ResumindJobFetcher/1.0"
	fetchAccept       = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	maxFetchedChars   = 20000
	defaultMirrorBase = "https://r.jina.ai/"
)

// strippedSelectors are removed before text extraction. Chrome and
// embedded assets carry no job content.
const strippedSelectors = "script, style, noscript, iframe, svg, canvas, header nav, footer, aside"

var (
	spaceBeforeNewline = regexp.MustCompile(`\s+\n`)
	excessBlankLines   = regexp.MustCompile(`\n{3,}`)
)

// Fetcher downloads job posting pages. When the original host refuses
// or blocks the request it retries through a public reader mirror.
type Fetcher struct {
	httpClient *http.Client
	mirrorBase string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		mirrorBase: defaultMirrorBase,
	}
}

// PageContent fetches rawURL and returns cleaned readable text,
// truncated to a bounded length. The original URL is tried first, then
// the r.jina.ai mirror with the original scheme preserved. The error
// from the last failed attempt is surfaced.
func (f *Fetcher) PageContent(ctx context.Context, rawURL string) (string, error) {
	candidates, err := candidateURLs(rawURL, f.mirrorBase)
	if err != nil {
		return "", err
	}

	var lastErr error
	for _, attemptURL := range candidates {
		text, err := f.fetchOnce(ctx, attemptURL)
		if err != nil {
			lastErr = err
			continue
		}
		return text, nil
	}
	if lastErr == nil {
		lastErr = errors.New("unable to fetch the job posting")
	}
	return "", lastErr
}

// candidateURLs returns the fetch attempts in order: the original URL,
// then the reader mirror with the original scheme preserved.
func candidateURLs(rawURL, mirrorBase string) ([]string, error) {
	target, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, ErrInvalidURL
	}

	mirror := strings.TrimSuffix(mirrorBase, "/") + "/" + target.Scheme + "://" +
		target.Host + target.Path + queryPart(target)
	return []string{target.String(), mirror}, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, attemptURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, attemptURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", fetchAccept)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch failed: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse job posting html: %w", err)
	}
	doc.Find(strippedSelectors).Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	cleaned := cleanText(text)
	if cleaned == "" {
		return "", errors.New("the page did not contain readable content")
	}
	return truncateRunes(cleaned, maxFetchedChars), nil
}

// truncateRunes cuts s to at most max bytes without splitting a
// multi-byte rune.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func cleanText(raw string) string {
	cleaned := strings.ReplaceAll(raw, " ", " ")
	cleaned = spaceBeforeNewline.ReplaceAllString(cleaned, "\n")
	cleaned = excessBlankLines.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

func queryPart(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}
	return "?" + u.RawQuery
}
