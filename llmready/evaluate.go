// Package llmready scores a parsed page on how well large language models
// can crawl, understand and cite it. Same contract as the seo package:
// pure checks, final scores, absence is a finding and never an error.
package llmready

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aioli-app/backend/fetcher"
)

// Schema.org types that materially help LLMs classify and cite a page.
var usefulSchemaTypes = map[string]bool{
	"Article":      true,
	"FAQPage":      true,
	"HowTo":        true,
	"Organization": true,
	"Person":       true,
	"Product":      true,
}

var (
	faqHeadingRe = regexp.MustCompile(`(?i)faq|questions|frequently`)
	percentRe    = regexp.MustCompile(`\d+(?:\.\d+)?\s*%`)
)

// Evaluate runs all five AI-visibility checks. robots may be nil, meaning
// the site has no robots.txt.
func Evaluate(doc *fetcher.Document, robots *fetcher.Robots) Result {
	return Result{
		StructuredData:  checkStructuredData(doc),
		ContentClarity:  checkContentClarity(doc),
		AuthorInfo:      checkAuthorInfo(doc),
		AICrawlerAccess: checkCrawlerAccess(robots),
		Citability:      checkCitability(doc),
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

// jsonLDTypes pulls every @type value out of one decoded JSON-LD document.
// Handles single objects, arrays of objects and @graph containers.
func jsonLDTypes(node interface{}, out *[]string) {
	switch v := node.(type) {
	case map[string]interface{}:
		switch t := v["@type"].(type) {
		case string:
			*out = append(*out, t)
		case []interface{}:
			for _, item := range t {
				if s, ok := item.(string); ok {
					*out = append(*out, s)
				}
			}
		}
		if graph, ok := v["@graph"]; ok {
			jsonLDTypes(graph, out)
		}
	case []interface{}:
		for _, item := range v {
			jsonLDTypes(item, out)
		}
	}
}

func checkStructuredData(doc *fetcher.Document) StructuredDataCheck {
	check := StructuredDataCheck{}

	doc.Doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		var node interface{}
		// Malformed JSON-LD blocks are skipped, not errors.
		if err := json.Unmarshal([]byte(s.Text()), &node); err != nil {
			return
		}
		check.HasJSONLD = true
		jsonLDTypes(node, &check.Types)
	})

	doc.Doc.Find("[itemtype]").Each(func(_ int, s *goquery.Selection) {
		itemtype, _ := s.Attr("itemtype")
		if i := strings.Index(itemtype, "schema.org/"); i >= 0 {
			check.HasMicrodata = true
			if t := strings.TrimSpace(itemtype[i+len("schema.org/"):]); t != "" {
				check.Types = append(check.Types, t)
			}
		}
	})

	if !check.HasJSONLD && !check.HasMicrodata {
		check.Issues = append(check.Issues, "No structured data found (JSON-LD or microdata)")
		return check
	}

	score := 70
	useful := false
	for _, t := range check.Types {
		if usefulSchemaTypes[t] {
			useful = true
			break
		}
	}
	if useful {
		score += 30
	} else {
		check.Issues = append(check.Issues, "Structured data present but no high-value type (Article, FAQPage, HowTo, Organization, Person, Product)")
	}

	check.Score = clamp(score)
	return check
}

func checkContentClarity(doc *fetcher.Document) ContentClarityCheck {
	check := ContentClarityCheck{}

	total := 0
	doc.Doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		check.ParagraphCount++
		total += len(strings.TrimSpace(s.Text()))
	})
	if check.ParagraphCount > 0 {
		check.AvgParagraphLength = float64(total) / float64(check.ParagraphCount)
	}

	score := 50
	switch {
	case check.ParagraphCount == 0:
		score -= 20
		check.Issues = append(check.Issues, "No paragraph elements found, content structure is unclear")
	case check.AvgParagraphLength >= 100 && check.AvgParagraphLength <= 300:
		score += 20
	case check.AvgParagraphLength > 500:
		score -= 10
		check.Issues = append(check.Issues, fmt.Sprintf("Paragraphs are very long on average (%.0f characters), break them up", check.AvgParagraphLength))
	}

	check.HasFAQ = hasFAQ(doc)
	if check.HasFAQ {
		score += 20
	} else {
		check.Issues = append(check.Issues, "No FAQ section found; question-and-answer content is easy for AI to quote")
	}

	check.HasDefinitions = doc.Doc.Find("dl, abbr[title], [role='definition']").Length() > 0
	if check.HasDefinitions {
		score += 10
	}

	check.Score = clamp(score)
	return check
}

func hasFAQ(doc *fetcher.Document) bool {
	if doc.Doc.Find("[itemtype*='FAQPage'], details").Length() > 0 {
		return true
	}
	found := false
	doc.Doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if faqHeadingRe.MatchString(s.Text()) {
			found = true
			return false
		}
		return true
	})
	return found
}

func checkAuthorInfo(doc *fetcher.Document) AuthorInfoCheck {
	check := AuthorInfoCheck{
		HasAuthor: doc.Doc.Find("meta[name='author'], [rel='author'], [itemprop='author'], [itemtype*='schema.org/Person']").Length() > 0,
		HasPublishDate: doc.Doc.Find("meta[property='article:published_time'], [itemprop='datePublished'], time[datetime]").Length() > 0,
		HasModifiedDate: doc.Doc.Find("meta[property='article:modified_time'], [itemprop='dateModified']").Length() > 0,
	}

	score := 30
	if check.HasAuthor {
		score += 30
	} else {
		check.Issues = append(check.Issues, "No author information found; authorship is a key credibility signal")
	}
	if check.HasPublishDate {
		score += 25
	} else {
		check.Issues = append(check.Issues, "No publish date found")
	}
	if check.HasModifiedDate {
		score += 15
	} else {
		check.Issues = append(check.Issues, "No last-modified date found")
	}

	check.Score = clamp(score)
	return check
}

// AI crawler user agents evaluated against robots.txt. The Anthropic pair
// counts as one unit: both agents must be allowed.
const (
	agentGPTBot     = "GPTBot"
	agentAnthropic  = "anthropic-ai"
	agentClaudeWeb  = "Claude-Web"
	agentPerplexity = "PerplexityBot"
)

func checkCrawlerAccess(robots *fetcher.Robots) CrawlerAccessCheck {
	check := CrawlerAccessCheck{RobotsTxtFound: robots != nil}

	if robots == nil {
		check.Score = 100
		check.Issues = append(check.Issues, "No robots.txt found; AI crawlers have full access by default")
		return check
	}

	score := 100
	if !robots.Allowed(agentGPTBot, "/") {
		score -= 25
		check.BlockedBots = append(check.BlockedBots, agentGPTBot)
		check.Issues = append(check.Issues, "GPTBot (OpenAI) is blocked in robots.txt")
	}
	if !robots.Allowed(agentAnthropic, "/") || !robots.Allowed(agentClaudeWeb, "/") {
		score -= 25
		check.BlockedBots = append(check.BlockedBots, agentAnthropic)
		check.Issues = append(check.Issues, "Anthropic crawlers (anthropic-ai, Claude-Web) are blocked in robots.txt")
	}
	if !robots.Allowed(agentPerplexity, "/") {
		score -= 25
		check.BlockedBots = append(check.BlockedBots, agentPerplexity)
		check.Issues = append(check.Issues, "PerplexityBot is blocked in robots.txt")
	}

	check.Score = clamp(score)
	return check
}

func checkCitability(doc *fetcher.Document) CitabilityCheck {
	check := CitabilityCheck{}

	body := doc.Doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	text := body.Text()
	lower := strings.ToLower(text)

	check.HasQuotes = doc.Doc.Find("blockquote").Length() > 0 ||
		(strings.Contains(text, "“") && strings.Contains(text, "”"))
	check.HasStatistics = percentRe.MatchString(text) ||
		strings.Contains(lower, "million") ||
		strings.Contains(lower, "billion") ||
		doc.Doc.Find("table").Length() > 0
	check.HasSources = doc.Doc.Find("a[rel='cite'], cite, sup a").Length() > 0 ||
		strings.Contains(lower, "source") ||
		strings.Contains(lower, "reference")

	score := 30
	if check.HasQuotes {
		score += 20
	} else {
		check.Issues = append(check.Issues, "No quotations found; direct quotes are highly citable")
	}
	if check.HasStatistics {
		score += 30
	} else {
		check.Issues = append(check.Issues, "No statistics or data points found")
	}
	if check.HasSources {
		score += 20
	} else {
		check.Issues = append(check.Issues, "No sources or references found")
	}

	check.Score = clamp(score)
	return check
}
