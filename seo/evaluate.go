// Package seo scores a parsed page against the traditional search-engine
// rubric. Each check is a pure function of the document (plus the injected
// side-lookup results) that returns its final 0-100 score directly, so the
// checks can run in any order and be tested in isolation.
package seo

import (
	"fmt"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aioli-app/backend/fetcher"
)

// Evaluate runs all nine checks against doc. It never fails: absent page
// features become scored findings with issue text, not errors.
func Evaluate(doc *fetcher.Document, site SiteProbe) Result {
	return Result{
		Title:       checkTitle(doc),
		Description: checkDescription(doc),
		Headings:    checkHeadings(doc),
		Images:      checkImages(doc),
		Links:       checkLinks(doc),
		Technical:   checkTechnical(doc, site),
		Social:      checkSocial(doc),
		Content:     checkContent(doc),
		Advanced:    checkAdvanced(doc),
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func checkTitle(doc *fetcher.Document) TitleCheck {
	title := strings.TrimSpace(doc.Doc.Find("title").First().Text())
	length := len(title)

	if length == 0 {
		return TitleCheck{Score: 0, Issues: []string{"No title tag found"}}
	}

	score := 100
	var issues []string
	if length < 30 {
		score -= 30
		issues = append(issues, fmt.Sprintf("Title is too short (%d characters, aim for 30-60)", length))
	} else if length > 60 {
		score -= 20
		issues = append(issues, fmt.Sprintf("Title is too long (%d characters, aim for 30-60)", length))
	}

	return TitleCheck{Text: title, Length: length, Score: clamp(score), Issues: issues}
}

func checkDescription(doc *fetcher.Document) DescriptionCheck {
	desc, _ := doc.Doc.Find("meta[name='description']").Attr("content")
	desc = strings.TrimSpace(desc)
	length := len(desc)

	if length == 0 {
		return DescriptionCheck{Score: 0, Issues: []string{"No meta description found"}}
	}

	score := 100
	var issues []string
	if length < 70 {
		score -= 30
		issues = append(issues, fmt.Sprintf("Meta description is too short (%d characters, aim for 70-160)", length))
	} else if length > 160 {
		score -= 20
		issues = append(issues, fmt.Sprintf("Meta description is too long (%d characters, aim for 70-160)", length))
	}

	return DescriptionCheck{Text: desc, Length: length, Score: clamp(score), Issues: issues}
}

func checkHeadings(doc *fetcher.Document) HeadingsCheck {
	check := HeadingsCheck{
		H1Count: doc.Doc.Find("h1").Length(),
		H2Count: doc.Doc.Find("h2").Length(),
	}
	doc.Doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		check.H1Text = append(check.H1Text, strings.TrimSpace(s.Text()))
	})

	// Penalties stack: a page can be missing H2s and have duplicate H1s.
	score := 100
	if check.H1Count == 0 {
		score -= 40
		check.Issues = append(check.Issues, "No H1 heading found")
	} else if check.H1Count > 1 {
		score -= 20
		check.Issues = append(check.Issues, fmt.Sprintf("Multiple H1 headings found (%d), use exactly one", check.H1Count))
	}
	if check.H2Count == 0 {
		score -= 20
		check.Issues = append(check.Issues, "No H2 headings found, structure content with subheadings")
	}

	check.Score = clamp(score)
	return check
}

func checkImages(doc *fetcher.Document) ImagesCheck {
	check := ImagesCheck{}
	doc.Doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		check.Total++
		if alt, exists := s.Attr("alt"); !exists || strings.TrimSpace(alt) == "" {
			check.MissingAlt++
		}
	})

	score := 100
	if check.MissingAlt > 0 {
		penalty := check.MissingAlt * 10
		if penalty > 50 {
			penalty = 50
		}
		score -= penalty
		pct := int(math.Round(float64(check.MissingAlt) / float64(check.Total) * 100))
		check.Issues = append(check.Issues, fmt.Sprintf("%d of %d images missing alt text (%d%%)",
			check.MissingAlt, check.Total, pct))
	}

	check.Score = clamp(score)
	return check
}

func checkLinks(doc *fetcher.Document) LinksCheck {
	check := LinksCheck{}
	host := doc.URL.Hostname()

	doc.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" || strings.HasPrefix(href, "javascript:") {
			return
		}

		resolved, err := doc.URL.Parse(href)
		if err != nil || (resolved.Scheme != "http" && resolved.Scheme != "https") {
			return
		}

		if resolved.Hostname() == host {
			check.Internal++
		} else {
			check.External++
		}

		if rel, _ := s.Attr("rel"); strings.Contains(strings.ToLower(rel), "nofollow") {
			check.Nofollow++
		}
		if strings.TrimSpace(s.Text()) == "" && s.Find("img").Length() == 0 {
			check.EmptyAnchors++
		}
	})

	score := 100
	if check.EmptyAnchors > 0 {
		penalty := check.EmptyAnchors * 5
		if penalty > 20 {
			penalty = 20
		}
		score -= penalty
		check.Issues = append(check.Issues, fmt.Sprintf("%d links have no anchor text", check.EmptyAnchors))
	}
	if check.Internal == 0 {
		score -= 10
		check.Issues = append(check.Issues, "No internal links found")
	}

	check.Score = clamp(score)
	return check
}

func checkTechnical(doc *fetcher.Document, site SiteProbe) TechnicalCheck {
	check := TechnicalCheck{
		HTTPS:        doc.URL.Scheme == "https",
		HasCanonical: doc.Doc.Find("link[rel='canonical']").Length() > 0,
		HasViewport:  doc.Doc.Find("meta[name='viewport']").Length() > 0,
		HasRobotsTxt: site.HasRobotsTxt,
		HasSitemap:   site.HasSitemap,
	}

	score := 100
	if !check.HTTPS {
		score -= 30
		check.Issues = append(check.Issues, "Page is not served over HTTPS")
	}
	if !check.HasCanonical {
		score -= 10
		check.Issues = append(check.Issues, "No canonical link tag found")
	}
	if !check.HasViewport {
		score -= 20
		check.Issues = append(check.Issues, "No viewport meta tag found, page is not mobile-friendly")
	}
	if !check.HasRobotsTxt {
		score -= 10
		check.Issues = append(check.Issues, "No robots.txt found")
	}
	if !check.HasSitemap {
		score -= 10
		check.Issues = append(check.Issues, "No sitemap.xml found")
	}

	check.Score = clamp(score)
	return check
}

func checkSocial(doc *fetcher.Document) SocialCheck {
	check := SocialCheck{
		HasOgTitle:       doc.Doc.Find("meta[property='og:title']").Length() > 0,
		HasOgDescription: doc.Doc.Find("meta[property='og:description']").Length() > 0,
		HasOgImage:       doc.Doc.Find("meta[property='og:image']").Length() > 0,
		HasTwitterCard:   doc.Doc.Find("meta[name='twitter:card']").Length() > 0,
	}

	score := 100
	if !check.HasOgTitle {
		score -= 20
		check.Issues = append(check.Issues, "Missing og:title meta tag")
	}
	if !check.HasOgDescription {
		score -= 15
		check.Issues = append(check.Issues, "Missing og:description meta tag")
	}
	if !check.HasOgImage {
		score -= 25
		check.Issues = append(check.Issues, "Missing og:image meta tag")
	}
	if !check.HasTwitterCard {
		score -= 10
		check.Issues = append(check.Issues, "Missing twitter:card meta tag")
	}

	check.Score = clamp(score)
	return check
}

// visibleText returns the page's body text with scripts and styles removed.
func visibleText(doc *fetcher.Document) string {
	body := doc.Doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	return strings.TrimSpace(body.Text())
}

func checkContent(doc *fetcher.Document) ContentCheck {
	text := visibleText(doc)
	check := ContentCheck{WordCount: len(strings.Fields(text))}
	if len(doc.HTML) > 0 {
		check.TextToHTMLRatio = float64(len(text)) / float64(len(doc.HTML)) * 100
	}

	score := 100
	if check.WordCount < 300 {
		score -= 30
		check.Issues = append(check.Issues, fmt.Sprintf("Thin content: only %d words (aim for at least 300)", check.WordCount))
	} else if check.WordCount < 500 {
		score -= 10
		check.Issues = append(check.Issues, fmt.Sprintf("Content is a bit short (%d words)", check.WordCount))
	}

	if check.TextToHTMLRatio < 10 {
		score -= 20
		check.Issues = append(check.Issues, fmt.Sprintf("Low text-to-HTML ratio (%.1f%%)", check.TextToHTMLRatio))
	}

	// An H1 that shares nothing with the title usually means the page's
	// main heading drifted away from what search results show.
	title := strings.ToLower(strings.TrimSpace(doc.Doc.Find("title").First().Text()))
	h1 := strings.ToLower(strings.TrimSpace(doc.Doc.Find("h1").First().Text()))
	if h1 != "" && title != "" {
		shared := false
		hasToken := false
		for _, token := range strings.Fields(title) {
			if len(token) < 3 {
				continue
			}
			hasToken = true
			if strings.Contains(h1, token) {
				shared = true
				break
			}
		}
		if hasToken && !shared {
			score -= 10
			check.Issues = append(check.Issues, "H1 heading does not reflect the page title")
		}
	}

	check.Score = clamp(score)
	return check
}

func checkAdvanced(doc *fetcher.Document) AdvancedCheck {
	check := AdvancedCheck{
		HasThemeColor: doc.Doc.Find("meta[name='theme-color']").Length() > 0,
	}

	if lang, exists := doc.Doc.Find("html").Attr("lang"); exists && strings.TrimSpace(lang) != "" {
		check.HasLang = true
	}

	if charset, exists := doc.Doc.Find("meta[charset]").Attr("charset"); exists {
		check.Charset = strings.TrimSpace(charset)
	} else if content, ok := doc.Doc.Find("meta[http-equiv='Content-Type']").Attr("content"); ok {
		if i := strings.Index(strings.ToLower(content), "charset="); i >= 0 {
			check.Charset = strings.TrimSpace(content[i+len("charset="):])
		}
	}

	doc.Doc.Find("link[rel]").Each(func(_ int, s *goquery.Selection) {
		rel, _ := s.Attr("rel")
		rel = strings.ToLower(rel)
		switch {
		case strings.Contains(rel, "apple-touch-icon"):
			check.HasTouchIcon = true
		case strings.Contains(rel, "icon"):
			check.HasFavicon = true
		}
	})

	score := 100
	if !check.HasLang {
		score -= 15
		check.Issues = append(check.Issues, "Missing lang attribute on <html>")
	}
	if check.Charset == "" {
		score -= 10
		check.Issues = append(check.Issues, "No charset declared")
	} else if !strings.EqualFold(check.Charset, "utf-8") {
		score -= 5
		check.Issues = append(check.Issues, fmt.Sprintf("Charset is %s, UTF-8 is recommended", check.Charset))
	}
	if !check.HasFavicon {
		score -= 10
		check.Issues = append(check.Issues, "No favicon link found")
	}
	if !check.HasTouchIcon {
		score -= 5
		check.Issues = append(check.Issues, "No apple-touch-icon link found")
	}
	if !check.HasThemeColor {
		score -= 5
		check.Issues = append(check.Issues, "No theme-color meta tag found")
	}

	check.Score = clamp(score)
	return check
}
