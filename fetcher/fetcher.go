// Package fetcher retrieves pages and the robots.txt/sitemap.xml side files
// that some checks depend on. Side lookups never fail an analysis: any
// timeout, network error or non-200 response is reported as "absent".
package fetcher

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

const (
	userAgent     = "AioliAnalyzer/1.0"
	lookupTimeout = 10 * time.Second

	// Side files larger than this are truncated; robots.txt and sitemaps
	// beyond a couple of MB are pathological.
	maxSideFileBytes = 2 << 20
)

// Client fetches documents over HTTP with a pooled transport.
type Client struct {
	client *http.Client
	log    *logrus.Logger
}

// New creates a fetcher Client.
func New(log *logrus.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		log: log,
	}
}

// FetchDocument retrieves and parses the page at rawURL. Unlike the side
// lookups, a failure here is fatal to the whole analysis and is returned
// as an error.
func (c *Client) FetchDocument(ctx context.Context, rawURL string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	parsed, err := url.Parse(finalURL)
	if err != nil {
		return nil, fmt.Errorf("parsing final URL %s: %w", finalURL, err)
	}

	return &Document{
		FinalURL:   finalURL,
		URL:        parsed,
		HTML:       buf.String(),
		Doc:        doc,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}, nil
}

// FetchRobots retrieves and parses <origin>/robots.txt. Returns nil when the
// file is absent or unreachable.
func (c *Client) FetchRobots(ctx context.Context, pageURL *url.URL) *Robots {
	body, ok := c.fetchSideFile(ctx, pageURL, "/robots.txt")
	if !ok {
		return nil
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"host":  pageURL.Host,
			"error": err,
		}).Debug("robots.txt unparseable, treating as absent")
		return nil
	}

	return &Robots{Raw: string(body), Data: data}
}

type sitemapURLSet struct {
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// FetchSitemap retrieves <origin>/sitemap.xml and returns its URL list.
// Returns nil when the sitemap is absent, unreachable or unparseable.
func (c *Client) FetchSitemap(ctx context.Context, pageURL *url.URL) []string {
	body, ok := c.fetchSideFile(ctx, pageURL, "/sitemap.xml")
	if !ok {
		return nil
	}

	var set sitemapURLSet
	if err := xml.Unmarshal(body, &set); err != nil {
		c.log.WithFields(logrus.Fields{
			"host":  pageURL.Host,
			"error": err,
		}).Debug("sitemap.xml unparseable, treating as absent")
		return nil
	}

	urls := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		if loc := strings.TrimSpace(u.Loc); loc != "" {
			urls = append(urls, loc)
		}
	}
	if len(urls) == 0 {
		return nil
	}
	return urls
}

// fetchSideFile gets an origin-relative file with the bounded side-lookup
// timeout. ok is false for any failure or non-200 status.
func (c *Client) fetchSideFile(ctx context.Context, pageURL *url.URL, path string) (body []byte, ok bool) {
	target := pageURL.Scheme + "://" + pageURL.Host + path

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxSideFileBytes))
	if err != nil {
		return nil, false
	}
	return body, true
}
