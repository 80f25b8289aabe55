package corpus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/japaniel/lexisent/pkg/document"
)

// Read content with size limit to prevent OOM from untrusted URLs
const maxBodySize = 10 * 1024 * 1024 // 10 MB limit for HTML content

// IsURL reports whether input should be fetched over HTTP instead of read from
// disk.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// fetchArticle downloads rawURL and extracts its main text. The text is scored
// verbatim, like a CSV row.
func (ig *Ingestor) fetchArticle(ctx context.Context, rawURL string) (document.Document, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return document.Document{}, &InputError{Path: rawURL, Reason: "invalid URL", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return document.Document{}, &InputError{Path: rawURL, Reason: "failed to create request", Err: err}
	}
	// Some sites refuse obvious bots (403 or a challenge page).
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := ig.httpClient().Do(req)
	if err != nil {
		return document.Document{}, &InputError{Path: rawURL, Reason: "failed to fetch URL", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return document.Document{}, &InputError{Path: rawURL, Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	if resp.ContentLength > int64(maxBodySize) {
		return document.Document{}, &InputError{Path: rawURL, Reason: fmt.Sprintf("content length %d exceeds limit of %d bytes", resp.ContentLength, maxBodySize)}
	}

	// Read one byte past the limit so a body of exactly maxBodySize is accepted.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return document.Document{}, &InputError{Path: rawURL, Reason: "failed to read response body", Err: err}
	}
	if len(body) > maxBodySize {
		return document.Document{}, &InputError{Path: rawURL, Reason: fmt.Sprintf("response body exceeded %d bytes", maxBodySize)}
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return document.Document{}, &InputError{Path: rawURL, Reason: "failed to extract article", Err: err}
	}

	ig.logger().Debug("fetched article", "url", rawURL, "title", article.Title, "chars", len(article.TextContent))
	return document.Document{
		ID:     rawURL,
		Text:   article.TextContent,
		Source: document.SourceURL,
	}, nil
}
