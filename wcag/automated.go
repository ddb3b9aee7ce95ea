package wcag

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aioli-app/backend/fetcher"
)

// automatedOutcome is what one automated check produces before the router
// wraps it into a TestResult.
type automatedOutcome struct {
	Status       Status
	Issues       []Issue
	Observations string
}

// automatedConfidence applies to every automated check: static HTML
// analysis is reliable but cannot see rendered state.
const automatedConfidence = 0.9

// automatedChecks maps criterion IDs to their static-HTML checks. A
// criterion typed automated but missing here routes to needs-manual.
var automatedChecks = map[string]func(doc *fetcher.Document) automatedOutcome{
	"1.1.1": checkNonTextContent,
	"1.3.1": checkInfoAndRelationships,
	"2.4.1": checkBypassBlocks,
	"2.4.2": checkPageTitled,
	"2.4.4": checkLinkPurpose,
	"3.1.1": checkLanguageOfPage,
	"4.1.1": checkParsing,
	"4.1.2": checkNameRoleValue,
}

// snippet renders an element's opening markup, truncated for report use.
func snippet(s *goquery.Selection) string {
	html, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	html = strings.Join(strings.Fields(html), " ")
	if len(html) > 120 {
		html = html[:120] + "…"
	}
	return html
}

func checkNonTextContent(doc *fetcher.Document) automatedOutcome {
	imgs := doc.Doc.Find("img")
	if imgs.Length() == 0 {
		return automatedOutcome{Status: StatusNotApplicable, Observations: "No images on the page."}
	}

	var issues []Issue
	imgs.Each(func(_ int, s *goquery.Selection) {
		// alt="" is a valid decorative marker; only a missing attribute fails.
		if _, exists := s.Attr("alt"); !exists {
			issues = append(issues, Issue{
				Element:     snippet(s),
				Description: "Image has no alt attribute",
				Severity:    SeveritySerious,
				Fix:         "Add an alt attribute describing the image, or alt=\"\" if it is decorative",
			})
		}
	})

	if len(issues) > 0 {
		return automatedOutcome{Status: StatusFailed, Issues: issues}
	}
	return automatedOutcome{
		Status:       StatusPassed,
		Observations: fmt.Sprintf("All %d images carry an alt attribute.", imgs.Length()),
	}
}

// labelled reports whether a form control has any programmatic label.
func labelled(doc *fetcher.Document, s *goquery.Selection) bool {
	if v, ok := s.Attr("aria-label"); ok && strings.TrimSpace(v) != "" {
		return true
	}
	if v, ok := s.Attr("aria-labelledby"); ok && strings.TrimSpace(v) != "" {
		return true
	}
	if v, ok := s.Attr("title"); ok && strings.TrimSpace(v) != "" {
		return true
	}
	if id, ok := s.Attr("id"); ok && id != "" {
		if doc.Doc.Find(fmt.Sprintf("label[for='%s']", id)).Length() > 0 {
			return true
		}
	}
	return s.ParentsFiltered("label").Length() > 0
}

func checkInfoAndRelationships(doc *fetcher.Document) automatedOutcome {
	controls := doc.Doc.Find("select, textarea, input").FilterFunction(func(_ int, s *goquery.Selection) bool {
		t, _ := s.Attr("type")
		switch strings.ToLower(t) {
		case "hidden", "submit", "button", "reset", "image":
			return false
		}
		return true
	})
	if controls.Length() == 0 {
		return automatedOutcome{Status: StatusNotApplicable, Observations: "No form controls on the page."}
	}

	var issues []Issue
	controls.Each(func(_ int, s *goquery.Selection) {
		if !labelled(doc, s) {
			issues = append(issues, Issue{
				Element:     snippet(s),
				Description: "Form control has no programmatic label",
				Severity:    SeveritySerious,
				Fix:         "Associate a <label for=…>, or add aria-label/aria-labelledby",
			})
		}
	})

	if len(issues) > 0 {
		return automatedOutcome{Status: StatusFailed, Issues: issues}
	}
	return automatedOutcome{Status: StatusPassed, Observations: "All form controls are labelled."}
}

func checkBypassBlocks(doc *fetcher.Document) automatedOutcome {
	if doc.Doc.Find("main, [role='main']").Length() > 0 {
		return automatedOutcome{Status: StatusPassed, Observations: "A main landmark is present."}
	}

	skip := false
	doc.Doc.Find("a[href^='#']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.Text()), "skip") {
			skip = true
			return false
		}
		return true
	})
	if skip {
		return automatedOutcome{Status: StatusPassed, Observations: "A skip link is present."}
	}

	return automatedOutcome{
		Status: StatusFailed,
		Issues: []Issue{{
			Element:     "<body>",
			Description: "No main landmark or skip link to bypass repeated content",
			Severity:    SeverityModerate,
			Fix:         "Wrap primary content in <main> or add a skip-to-content link as the first focusable element",
		}},
	}
}

func checkPageTitled(doc *fetcher.Document) automatedOutcome {
	title := strings.TrimSpace(doc.Doc.Find("title").First().Text())
	if title == "" {
		return automatedOutcome{
			Status: StatusFailed,
			Issues: []Issue{{
				Element:     "<head>",
				Description: "Page has no title",
				Severity:    SeverityCritical,
				Fix:         "Add a <title> element describing the page's topic or purpose",
			}},
		}
	}
	return automatedOutcome{Status: StatusPassed, Observations: fmt.Sprintf("Page title: %q.", title)}
}

// accessibleName reports whether a link or control exposes any text to
// assistive technology.
func accessibleName(s *goquery.Selection) bool {
	if strings.TrimSpace(s.Text()) != "" {
		return true
	}
	if v, ok := s.Attr("aria-label"); ok && strings.TrimSpace(v) != "" {
		return true
	}
	if v, ok := s.Attr("aria-labelledby"); ok && strings.TrimSpace(v) != "" {
		return true
	}
	if v, ok := s.Attr("title"); ok && strings.TrimSpace(v) != "" {
		return true
	}
	name := false
	s.Find("img").Each(func(_ int, img *goquery.Selection) {
		if alt, ok := img.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			name = true
		}
	})
	return name
}

func checkLinkPurpose(doc *fetcher.Document) automatedOutcome {
	links := doc.Doc.Find("a[href]")
	if links.Length() == 0 {
		return automatedOutcome{Status: StatusNotApplicable, Observations: "No links on the page."}
	}

	var issues []Issue
	links.Each(func(_ int, s *goquery.Selection) {
		if !accessibleName(s) {
			issues = append(issues, Issue{
				Element:     snippet(s),
				Description: "Link has no accessible name",
				Severity:    SeveritySerious,
				Fix:         "Give the link visible text, an aria-label, or alt text on its image",
			})
		}
	})

	if len(issues) > 0 {
		return automatedOutcome{Status: StatusFailed, Issues: issues}
	}
	return automatedOutcome{Status: StatusPassed, Observations: "Every link exposes an accessible name."}
}

func checkLanguageOfPage(doc *fetcher.Document) automatedOutcome {
	if lang, ok := doc.Doc.Find("html").Attr("lang"); ok && strings.TrimSpace(lang) != "" {
		return automatedOutcome{Status: StatusPassed, Observations: fmt.Sprintf("Page language: %s.", strings.TrimSpace(lang))}
	}
	return automatedOutcome{
		Status: StatusFailed,
		Issues: []Issue{{
			Element:     "<html>",
			Description: "The html element has no lang attribute",
			Severity:    SeveritySerious,
			Fix:         "Add lang to the html element, e.g. <html lang=\"en\">",
		}},
	}
}

func checkParsing(doc *fetcher.Document) automatedOutcome {
	seen := make(map[string]int)
	doc.Doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		if id, _ := s.Attr("id"); id != "" {
			seen[id]++
		}
	})

	var issues []Issue
	for id, count := range seen {
		if count > 1 {
			issues = append(issues, Issue{
				Element:     fmt.Sprintf("[id=%q]", id),
				Description: fmt.Sprintf("ID %q is used %d times", id, count),
				Severity:    SeverityModerate,
				Fix:         "Make element IDs unique within the page",
			})
		}
	}

	if len(issues) > 0 {
		return automatedOutcome{Status: StatusFailed, Issues: issues}
	}
	return automatedOutcome{Status: StatusPassed, Observations: "No duplicate element IDs."}
}

func checkNameRoleValue(doc *fetcher.Document) automatedOutcome {
	controls := doc.Doc.Find("button, [role='button'], input[type='button'], input[type='submit']")
	if controls.Length() == 0 {
		return automatedOutcome{Status: StatusNotApplicable, Observations: "No interactive controls on the page."}
	}

	var issues []Issue
	controls.Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "input" {
			if v, ok := s.Attr("value"); ok && strings.TrimSpace(v) != "" {
				return
			}
		}
		if !accessibleName(s) {
			issues = append(issues, Issue{
				Element:     snippet(s),
				Description: "Control has no accessible name",
				Severity:    SeveritySerious,
				Fix:         "Add visible text, a value, or an aria-label to the control",
			})
		}
	})

	if len(issues) > 0 {
		return automatedOutcome{Status: StatusFailed, Issues: issues}
	}
	return automatedOutcome{Status: StatusPassed, Observations: "All controls expose accessible names."}
}
