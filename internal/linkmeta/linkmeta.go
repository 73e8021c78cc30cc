// Package linkmeta scrapes the title, channel, description and duration of a
// video page so a new video form can start pre-filled.
//
// Fetch performs the request. Parse is pure and only depends on the page HTML.
package linkmeta

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultUserAgent is sent when the fetcher has none configured.
const DefaultUserAgent = "archivewit/1.0"

// maxPageBytes bounds how much of a page is read.
const maxPageBytes = 4 << 20

// Metadata is what could be recovered from a video page. Missing values are
// left empty.
type Metadata struct {
	Title       string
	Channel     string
	Description string
	Duration    time.Duration
}

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Fetcher retrieves video pages.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewFetcher returns a Fetcher whose client times out after timeout.
func NewFetcher(userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
	}
}

// Fetch downloads pageURL and parses it.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (Metadata, error) {
	if strings.TrimSpace(pageURL) == "" {
		return Metadata{}, errors.New("fetch link metadata: empty url")
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("build request: %w", err)
	}
	agent := f.UserAgent
	if agent == "" {
		agent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", agent)

	resp, err := client.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Metadata{}, &HTTPStatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return Metadata{}, fmt.Errorf("read %s: %w", pageURL, err)
	}
	return Parse(body)
}

// Parse extracts metadata from page HTML. Open Graph tags win over the plain
// <title> and description meta tags.
func Parse(html []byte) (Metadata, error) {
	if len(html) == 0 {
		return Metadata{}, errors.New("parse link metadata: empty page")
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return Metadata{}, fmt.Errorf("parse link metadata: %w", err)
	}

	var meta Metadata
	meta.Title = firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		normSpace(doc.Find("title").First().Text()),
	)
	meta.Description = firstNonEmpty(
		metaContent(doc, `meta[property="og:description"]`),
		metaContent(doc, `meta[name="description"]`),
	)
	meta.Channel = firstNonEmpty(
		metaContent(doc, `[itemprop="author"] [itemprop="name"]`),
		metaContent(doc, `meta[property="og:site_name"]`),
	)
	if raw := metaContent(doc, `meta[itemprop="duration"]`); raw != "" {
		if d, err := parseISODuration(raw); err == nil {
			meta.Duration = d
		}
	}
	return meta, nil
}

// metaContent returns the content attribute of the first match, falling back
// to its text.
func metaContent(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	if content, ok := sel.Attr("content"); ok {
		return normSpace(content)
	}
	return normSpace(sel.Text())
}

var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)

// parseISODuration handles the PT#H#M#S subset used by video pages.
func parseISODuration(value string) (time.Duration, error) {
	m := isoDuration.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(value)))
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, fmt.Errorf("unsupported duration %q", value)
	}
	var total time.Duration
	if m[1] != "" {
		h, _ := strconv.Atoi(m[1])
		total += time.Duration(h) * time.Hour
	}
	if m[2] != "" {
		mins, _ := strconv.Atoi(m[2])
		total += time.Duration(mins) * time.Minute
	}
	if m[3] != "" {
		secs, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return 0, fmt.Errorf("duration seconds %q: %w", m[3], err)
		}
		total += time.Duration(secs * float64(time.Second))
	}
	return total, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func normSpace(s string) string { return strings.Join(strings.Fields(s), " ") }
