package seo

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/aioli-app/backend/fetcher"
)

func docFromHTML(t *testing.T, pageURL, html string) *fetcher.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		t.Fatalf("parsing fixture URL: %v", err)
	}
	return &fetcher.Document{
		FinalURL:   pageURL,
		URL:        u,
		HTML:       html,
		Doc:        doc,
		StatusCode: 200,
	}
}

func TestCheckTitleMissing(t *testing.T) {
	doc := docFromHTML(t, "https://example.com", "<html><head></head><body></body></html>")
	got := checkTitle(doc)

	if got.Score != 0 {
		t.Errorf("score = %d, want 0", got.Score)
	}
	want := []string{"No title tag found"}
	if diff := cmp.Diff(want, got.Issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckTitleLengths(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		wantScore int
	}{
		{"ideal", 55, 100},
		{"short", 12, 70},
		{"long", 80, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := fmt.Sprintf("<html><head><title>%s</title></head><body></body></html>",
				strings.Repeat("x", tt.length))
			got := checkTitle(docFromHTML(t, "https://example.com", html))
			if got.Score != tt.wantScore {
				t.Errorf("score for length %d = %d, want %d", tt.length, got.Score, tt.wantScore)
			}
			if got.Length != tt.length {
				t.Errorf("length = %d, want %d", got.Length, tt.length)
			}
		})
	}
}

func TestCheckDescription(t *testing.T) {
	missing := checkDescription(docFromHTML(t, "https://example.com", "<html><head></head></html>"))
	if missing.Score != 0 {
		t.Errorf("missing description score = %d, want 0", missing.Score)
	}

	html := fmt.Sprintf(`<html><head><meta name="description" content="%s"></head></html>`,
		strings.Repeat("d", 155))
	ideal := checkDescription(docFromHTML(t, "https://example.com", html))
	if ideal.Score != 100 {
		t.Errorf("ideal description score = %d, want 100", ideal.Score)
	}
}

func TestCheckHeadings(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantScore int
	}{
		{"one h1 one h2", "<body><h1>A</h1><h2>B</h2></body>", 100},
		{"no h1", "<body><h2>B</h2></body>", 60},
		{"two h1", "<body><h1>A</h1><h1>B</h1><h2>C</h2></body>", 80},
		{"no h1 no h2", "<body><p>text</p></body>", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkHeadings(docFromHTML(t, "https://example.com", tt.html))
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d (issues: %v)", got.Score, tt.wantScore, got.Issues)
			}
		})
	}
}

func TestCheckImagesMissingAlt(t *testing.T) {
	var b strings.Builder
	b.WriteString("<body>")
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&b, `<img src="i%d.png" alt="image %d">`, i, i)
	}
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, `<img src="m%d.png">`, i)
	}
	b.WriteString("</body>")

	got := checkImages(docFromHTML(t, "https://example.com", b.String()))
	if got.Score != 70 {
		t.Errorf("score = %d, want 70", got.Score)
	}
	if got.Total != 10 || got.MissingAlt != 3 {
		t.Errorf("counts = %d/%d, want 3/10 missing", got.MissingAlt, got.Total)
	}
	want := "3 of 10 images missing alt text (30%)"
	if len(got.Issues) != 1 || got.Issues[0] != want {
		t.Errorf("issues = %v, want [%q]", got.Issues, want)
	}
}

func TestCheckImagesPenaltyFloor(t *testing.T) {
	var b strings.Builder
	b.WriteString("<body>")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, `<img src="m%d.png">`, i)
	}
	b.WriteString("</body>")

	got := checkImages(docFromHTML(t, "https://example.com", b.String()))
	// Penalty caps at 50 no matter how many images lack alt text.
	if got.Score != 50 {
		t.Errorf("score = %d, want 50", got.Score)
	}
}

func TestCheckImagesNone(t *testing.T) {
	got := checkImages(docFromHTML(t, "https://example.com", "<body><p>no images</p></body>"))
	if got.Score != 100 {
		t.Errorf("score = %d, want 100 for zero images", got.Score)
	}
	if len(got.Issues) != 0 {
		t.Errorf("issues = %v, want none", got.Issues)
	}
}

func TestCheckLinksClassification(t *testing.T) {
	html := `<body>
		<a href="/about">About</a>
		<a href="https://example.com/pricing">Pricing</a>
		<a href="https://other.com" rel="nofollow">Other</a>
		<a href="/empty"></a>
	</body>`
	got := checkLinks(docFromHTML(t, "https://example.com/page", html))

	if got.Internal != 3 {
		t.Errorf("internal = %d, want 3", got.Internal)
	}
	if got.External != 1 {
		t.Errorf("external = %d, want 1", got.External)
	}
	if got.Nofollow != 1 {
		t.Errorf("nofollow = %d, want 1", got.Nofollow)
	}
	if got.EmptyAnchors != 1 {
		t.Errorf("emptyAnchors = %d, want 1", got.EmptyAnchors)
	}
	if got.Score != 95 {
		t.Errorf("score = %d, want 95", got.Score)
	}
}

func TestCheckLinksNoInternal(t *testing.T) {
	got := checkLinks(docFromHTML(t, "https://example.com", `<body><a href="https://other.com">x</a></body>`))
	if got.Score != 90 {
		t.Errorf("score = %d, want 90", got.Score)
	}
}

func TestCheckTechnicalAllGood(t *testing.T) {
	html := `<html><head>
		<link rel="canonical" href="https://example.com/">
		<meta name="viewport" content="width=device-width, initial-scale=1">
	</head><body></body></html>`
	got := checkTechnical(docFromHTML(t, "https://example.com", html), SiteProbe{HasRobotsTxt: true, HasSitemap: true})
	if got.Score != 100 {
		t.Errorf("score = %d, want 100 (issues: %v)", got.Score, got.Issues)
	}
}

func TestCheckTechnicalPenalties(t *testing.T) {
	got := checkTechnical(docFromHTML(t, "http://example.com", "<html><body></body></html>"), SiteProbe{})
	// -30 http, -10 canonical, -20 viewport, -10 robots, -10 sitemap
	if got.Score != 20 {
		t.Errorf("score = %d, want 20 (issues: %v)", got.Score, got.Issues)
	}
	if len(got.Issues) != 5 {
		t.Errorf("issues = %d, want 5", len(got.Issues))
	}
}

func TestCheckSocial(t *testing.T) {
	html := `<head>
		<meta property="og:title" content="T">
		<meta property="og:description" content="D">
		<meta property="og:image" content="https://example.com/i.png">
		<meta name="twitter:card" content="summary">
	</head>`
	got := checkSocial(docFromHTML(t, "https://example.com", html))
	if got.Score != 100 {
		t.Errorf("score = %d, want 100", got.Score)
	}

	bare := checkSocial(docFromHTML(t, "https://example.com", "<head></head>"))
	if bare.Score != 30 {
		t.Errorf("bare score = %d, want 30", bare.Score)
	}
}

func TestCheckContentThin(t *testing.T) {
	got := checkContent(docFromHTML(t, "https://example.com", "<body><p>just a few words here</p></body>"))
	if got.WordCount != 5 {
		t.Errorf("wordCount = %d, want 5", got.WordCount)
	}
	found := false
	for _, issue := range got.Issues {
		if strings.Contains(issue, "Thin content") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a thin-content issue, got %v", got.Issues)
	}
}

func TestCheckContentH1TitleMismatch(t *testing.T) {
	mismatch := `<html><head><title>Winter Gardening Guide</title></head>
		<body><h1>Completely Unrelated</h1></body></html>`
	got := checkContent(docFromHTML(t, "https://example.com", mismatch))
	found := false
	for _, issue := range got.Issues {
		if strings.Contains(issue, "does not reflect") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an H1/title mismatch issue, got %v", got.Issues)
	}

	match := `<html><head><title>Winter Gardening Guide</title></head>
		<body><h1>The Gardening Handbook</h1></body></html>`
	got = checkContent(docFromHTML(t, "https://example.com", match))
	for _, issue := range got.Issues {
		if strings.Contains(issue, "does not reflect") {
			t.Errorf("unexpected mismatch issue for shared token: %v", got.Issues)
		}
	}
}

func TestCheckContentStripsScripts(t *testing.T) {
	html := `<body><script>var x = "many many words inside script";</script><p>visible</p></body>`
	got := checkContent(docFromHTML(t, "https://example.com", html))
	if got.WordCount != 1 {
		t.Errorf("wordCount = %d, want 1 (script text must not count)", got.WordCount)
	}
}

func TestCheckAdvanced(t *testing.T) {
	html := `<html lang="en"><head>
		<meta charset="utf-8">
		<link rel="icon" href="/favicon.ico">
		<link rel="apple-touch-icon" href="/touch.png">
		<meta name="theme-color" content="#fff">
	</head><body></body></html>`
	got := checkAdvanced(docFromHTML(t, "https://example.com", html))
	if got.Score != 100 {
		t.Errorf("score = %d, want 100 (issues: %v)", got.Score, got.Issues)
	}

	bare := checkAdvanced(docFromHTML(t, "https://example.com", "<html><head></head></html>"))
	// -15 lang, -10 charset, -10 favicon, -5 touch icon, -5 theme color
	if bare.Score != 55 {
		t.Errorf("bare score = %d, want 55 (issues: %v)", bare.Score, bare.Issues)
	}
}

func TestCheckAdvancedNonUTF8(t *testing.T) {
	html := `<html lang="en"><head><meta charset="iso-8859-1"></head></html>`
	got := checkAdvanced(docFromHTML(t, "https://example.com", html))
	if got.Charset != "iso-8859-1" {
		t.Errorf("charset = %q, want iso-8859-1", got.Charset)
	}
	found := false
	for _, issue := range got.Issues {
		if strings.Contains(issue, "UTF-8 is recommended") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a charset issue, got %v", got.Issues)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	html := `<html lang="en"><head><title>A deterministic page title here</title></head>
		<body><h1>Deterministic page</h1><p>Some body text.</p></body></html>`
	doc := docFromHTML(t, "https://example.com", html)
	probe := SiteProbe{HasRobotsTxt: true}

	first := Evaluate(doc, probe)
	second := Evaluate(doc, probe)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("evaluation is not deterministic (-first +second):\n%s", diff)
	}
}

func TestEvaluateScoreBounds(t *testing.T) {
	docs := []string{
		"",
		"<html></html>",
		"<html><head><title>x</title></head><body><img><img><img><img><img><img></body></html>",
	}
	for _, html := range docs {
		r := Evaluate(docFromHTML(t, "http://example.com", html), SiteProbe{})
		for name, score := range map[string]int{
			"title":       r.Title.Score,
			"description": r.Description.Score,
			"headings":    r.Headings.Score,
			"images":      r.Images.Score,
			"links":       r.Links.Score,
			"technical":   r.Technical.Score,
			"social":      r.Social.Score,
			"content":     r.Content.Score,
			"advanced":    r.Advanced.Score,
		} {
			if score < 0 || score > 100 {
				t.Errorf("%s score %d out of range for %q", name, score, html)
			}
		}
	}
}
