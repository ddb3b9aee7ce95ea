package fetcher

import (
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/temoto/robotstxt"
)

// Document is the parsed result of fetching a single page. It is immutable
// once built; evaluators only read from it.
type Document struct {
	FinalURL   string
	URL        *url.URL
	HTML       string
	Doc        *goquery.Document
	StatusCode int
	Header     http.Header
}

// Robots holds a site's robots.txt, both raw and parsed.
type Robots struct {
	Raw  string
	Data *robotstxt.RobotsData
}

// Allowed reports whether the given user agent may fetch the given path.
// A nil Robots means no robots.txt exists, which allows everything.
func (r *Robots) Allowed(agent, path string) bool {
	if r == nil || r.Data == nil {
		return true
	}
	return r.Data.FindGroup(agent).Test(path)
}
