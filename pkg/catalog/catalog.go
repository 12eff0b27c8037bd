// Package catalog fetches reference models from a web catalog: an HTML
// index page listing downloadable STL files. Downloads go through a
// local content-addressed cache so repeated benchmark runs do not
// re-fetch the corpus.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/gabigabogabu/stl-bench/pkg/logging"
)

// Thing is one downloadable model in the catalog.
type Thing struct {
	Name    string `json:"name"`
	FileURL string `json:"fileUrl"`
}

// Client scrapes a catalog index and downloads model files.
type Client struct {
	BaseURL  string
	CacheDir string
	HTTP     *http.Client
}

// NewClient creates a catalog client. An empty cacheDir disables
// caching.
func NewClient(baseURL, cacheDir string) *Client {
	return &Client{
		BaseURL:  baseURL,
		CacheDir: cacheDir,
		HTTP:     &http.Client{Timeout: 60 * time.Second},
	}
}

// ListThings fetches the index page and returns every linked STL file.
// Link text becomes the thing name; links without text fall back to
// the file name.
func (c *Client) ListThings(ctx context.Context) ([]Thing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: building index request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetching index: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: index returned %s", resp.Status)
	}

	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: bad base URL: %w", err)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: parsing index: %w", err)
	}

	var things []Thing
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if t, ok := thingFromAnchor(n, base); ok {
				things = append(things, t)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	logging.Debug("catalog: %d models listed at %s", len(things), c.BaseURL)
	return things, nil
}

// thingFromAnchor extracts a Thing from an <a> node whose href points
// at an STL file.
func thingFromAnchor(n *html.Node, base *url.URL) (Thing, bool) {
	var href string
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = attr.Val
			break
		}
	}
	if !strings.HasSuffix(strings.ToLower(href), ".stl") {
		return Thing{}, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return Thing{}, false
	}
	resolved := base.ResolveReference(ref)

	name := strings.TrimSpace(anchorText(n))
	if name == "" {
		name = strings.TrimSuffix(path.Base(resolved.Path), path.Ext(resolved.Path))
	}
	return Thing{Name: name, FileURL: resolved.String()}, true
}

func anchorText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// FetchModel downloads a model file, consulting the cache first.
func (c *Client) FetchModel(ctx context.Context, fileURL string) ([]byte, error) {
	ck := c.cacheKey(fileURL)
	if ck != nil {
		var data []byte
		if ck.Load(&data) {
			logging.Debug("catalog: cache hit for %s", fileURL)
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: building model request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetching %s: %w", fileURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: %s returned %s", fileURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", fileURL, err)
	}

	if ck != nil {
		ck.Save(data)
	}
	return data, nil
}

func (c *Client) cacheKey(fileURL string) *cacheKey {
	if c.CacheDir == "" {
		return nil
	}
	return makeCacheKey(c.CacheDir, fileURL)
}
