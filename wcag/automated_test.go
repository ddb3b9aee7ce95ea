package wcag

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/aioli-app/backend/fetcher"
)

func docFromHTML(t *testing.T, html string) *fetcher.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	u, _ := url.Parse("https://example.com/page")
	return &fetcher.Document{FinalURL: u.String(), URL: u, HTML: html, Doc: doc, StatusCode: 200}
}

func TestNonTextContent(t *testing.T) {
	cases := []struct {
		name   string
		html   string
		status Status
		issues int
	}{
		{"no images", "<body><p>text</p></body>", StatusNotApplicable, 0},
		{"all described", `<body><img src="a.png" alt="A chart"><img src="b.png" alt=""></body>`, StatusPassed, 0},
		{"missing alt", `<body><img src="a.png"><img src="b.png" alt="ok"></body>`, StatusFailed, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := checkNonTextContent(docFromHTML(t, tc.html))
			if got.Status != tc.status {
				t.Errorf("status = %s, want %s", got.Status, tc.status)
			}
			if len(got.Issues) != tc.issues {
				t.Errorf("issues = %d, want %d", len(got.Issues), tc.issues)
			}
		})
	}
}

func TestInfoAndRelationships(t *testing.T) {
	labelledForm := `<form>
		<label for="q">Search</label><input id="q" type="text">
		<label>Email <input type="email"></label>
		<input type="submit" value="Go">
	</form>`
	got := checkInfoAndRelationships(docFromHTML(t, labelledForm))
	if got.Status != StatusPassed {
		t.Errorf("status = %s, want passed (issues: %v)", got.Status, got.Issues)
	}

	got = checkInfoAndRelationships(docFromHTML(t, `<form><input type="text"></form>`))
	if got.Status != StatusFailed {
		t.Errorf("status = %s, want failed for an unlabelled input", got.Status)
	}

	got = checkInfoAndRelationships(docFromHTML(t, "<body><p>no forms</p></body>"))
	if got.Status != StatusNotApplicable {
		t.Errorf("status = %s, want not-applicable", got.Status)
	}
}

func TestBypassBlocks(t *testing.T) {
	if got := checkBypassBlocks(docFromHTML(t, "<body><main>content</main></body>")); got.Status != StatusPassed {
		t.Errorf("main landmark: status = %s, want passed", got.Status)
	}
	if got := checkBypassBlocks(docFromHTML(t, `<body><a href="#content">Skip to content</a></body>`)); got.Status != StatusPassed {
		t.Errorf("skip link: status = %s, want passed", got.Status)
	}
	if got := checkBypassBlocks(docFromHTML(t, "<body><div>content</div></body>")); got.Status != StatusFailed {
		t.Errorf("neither: status = %s, want failed", got.Status)
	}
}

func TestPageTitled(t *testing.T) {
	if got := checkPageTitled(docFromHTML(t, "<head><title>About Us</title></head>")); got.Status != StatusPassed {
		t.Errorf("status = %s, want passed", got.Status)
	}
	got := checkPageTitled(docFromHTML(t, "<head><title>  </title></head>"))
	if got.Status != StatusFailed {
		t.Errorf("whitespace title: status = %s, want failed", got.Status)
	}
	if len(got.Issues) != 1 || got.Issues[0].Severity != SeverityCritical {
		t.Errorf("expected one critical issue, got %v", got.Issues)
	}
}

func TestLinkPurpose(t *testing.T) {
	html := `<body>
		<a href="/a">Read the report</a>
		<a href="/b" aria-label="Open settings"></a>
		<a href="/c"><img src="logo.png" alt="Home"></a>
		<a href="/d"><img src="icon.png" alt=""></a>
	</body>`
	got := checkLinkPurpose(docFromHTML(t, html))
	if got.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", got.Status)
	}
	if len(got.Issues) != 1 {
		t.Errorf("issues = %d, want 1 (only the decorative-image link)", len(got.Issues))
	}
}

func TestLanguageOfPage(t *testing.T) {
	if got := checkLanguageOfPage(docFromHTML(t, `<html lang="en-GB"><body></body></html>`)); got.Status != StatusPassed {
		t.Errorf("status = %s, want passed", got.Status)
	}
	if got := checkLanguageOfPage(docFromHTML(t, "<html><body></body></html>")); got.Status != StatusFailed {
		t.Errorf("status = %s, want failed without lang", got.Status)
	}
}

func TestParsingDuplicateIDs(t *testing.T) {
	if got := checkParsing(docFromHTML(t, `<div id="a"></div><div id="b"></div>`)); got.Status != StatusPassed {
		t.Errorf("status = %s, want passed", got.Status)
	}
	got := checkParsing(docFromHTML(t, `<div id="a"></div><span id="a"></span><p id="a"></p>`))
	if got.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", got.Status)
	}
	if len(got.Issues) != 1 {
		t.Errorf("issues = %d, want 1 per duplicated ID", len(got.Issues))
	}
}

func TestNameRoleValue(t *testing.T) {
	html := `<body>
		<button>Save</button>
		<input type="submit" value="Send">
		<div role="button" aria-label="Close"></div>
	</body>`
	if got := checkNameRoleValue(docFromHTML(t, html)); got.Status != StatusPassed {
		t.Errorf("status = %s, want passed (issues: %v)", got.Status, got.Issues)
	}

	got := checkNameRoleValue(docFromHTML(t, "<body><button></button></body>"))
	if got.Status != StatusFailed {
		t.Errorf("status = %s, want failed for a nameless button", got.Status)
	}

	if got := checkNameRoleValue(docFromHTML(t, "<body><p>static</p></body>")); got.Status != StatusNotApplicable {
		t.Errorf("status = %s, want not-applicable", got.Status)
	}
}
