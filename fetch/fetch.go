package fetch

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// EmbeddedImage is a fetched image packaged for direct inclusion in a vector
// document: raw bytes plus their content type.
type EmbeddedImage struct {
	ContentType string
	Data        []byte
}

// DataURI returns the payload as a base64 data URI.
func (e *EmbeddedImage) DataURI() string {
	return "data:" + e.ContentType + ";base64," + base64.StdEncoding.EncodeToString(e.Data)
}

// Fetcher retrieves remote images over HTTP. No caching, no retries.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 10 * time.Second}}
}

// FetchAndEmbed performs a single GET and returns the body as an embeddable
// payload. Any transport error, non-2xx status or body read error is a fetch
// failure; callers must not proceed with the render.
func (f *Fetcher) FetchAndEmbed(url string) (*EmbeddedImage, error) {
	if url == "" {
		return nil, fmt.Errorf("fetch: empty image URL")
	}
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch: request %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: %s returned status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body of %s: %w", url, err)
	}
	return &EmbeddedImage{ContentType: contentType(resp), Data: body}, nil
}

// contentType extracts the media type from the response, defaulting to
// image/jpeg when the header is absent or malformed.
func contentType(resp *http.Response) string {
	raw := resp.Header.Get("Content-Type")
	if raw == "" {
		return "image/jpeg"
	}
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return "image/jpeg"
	}
	return mt
}
