package wcag

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/aioli-app/backend/fetcher"
)

const auditSystemPrompt = `You are an accessibility auditor reviewing a web page against a single WCAG success criterion.

Respond with only a JSON object, no surrounding prose:
{
  "status": "passed" | "failed" | "not-applicable",
  "confidence": 0.0-1.0,
  "issues": [
    {
      "element": "CSS selector or HTML snippet",
      "description": "what is wrong",
      "severity": "critical" | "serious" | "moderate" | "minor",
      "fix": "actionable remediation"
    }
  ],
  "observations": "short summary of what you examined"
}

Use "not-applicable" when the page has no content the criterion applies to. Report issues only for the criterion under review.`

// specializedGuidance adds per-criterion review hints to the generic prompt.
// Criteria not listed here get the generic template alone.
var specializedGuidance = map[string]string{
	"1.3.2": "Check whether the DOM order of the main content reads sensibly top to bottom. Watch for layout tables and visually repositioned blocks.",
	"1.3.3": "Look for instructions like \"click the green button\" or \"see the box on the right\" that rely on shape, color, size or position alone.",
	"1.4.1": "Look for text or links where color alone carries meaning, e.g. links undistinguishable from body text except by color, or legends keyed only by color.",
	"1.4.5": "Look for img elements whose filenames or context suggest they render text (logos are exempt).",
	"2.4.6": "Judge whether each heading and form label actually describes its section or field. Flag vague headings like \"More\" or \"Info\".",
	"2.5.3": "Compare visible button/link text with aria-label values; the accessible name must contain the visible text.",
	"3.1.2": "Find passages in a language other than the page language and check they carry their own lang attribute.",
	"3.3.1": "Check form validation markup: are error containers present and associated with their fields via aria-describedby or similar?",
	"3.3.2": "Every input that expects a format (dates, phone numbers) should have instructions or an example near the field.",
	"4.1.3": "Look for status or alert regions (role=status, role=alert, aria-live) around dynamic content like cart updates or form feedback.",
}

// defaultPromptContentTokens limits how much page content is embedded in a
// prompt, in approximate tokens (4 characters per token).
const defaultPromptContentTokens = 6000

// buildAuditPrompt renders the user prompt for one AI-assisted criterion:
// criterion metadata, optional specialized guidance, the page converted to
// markdown, and a bounded slice of the raw HTML for markup-level questions.
func buildAuditPrompt(c Criterion, doc *fetcher.Document, contentTokens int) string {
	if contentTokens <= 0 {
		contentTokens = defaultPromptContentTokens
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(doc.HTML)
	if err != nil || strings.TrimSpace(markdown) == "" {
		markdown = "(content could not be converted)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Success criterion: %s %s (Level %s)\n", c.ID, c.Title, c.Level)
	fmt.Fprintf(&b, "Requirement: %s\n", c.Description)
	if guidance, ok := specializedGuidance[c.ID]; ok {
		fmt.Fprintf(&b, "Review focus: %s\n", guidance)
	}
	fmt.Fprintf(&b, "\nPage URL: %s\n", doc.FinalURL)
	fmt.Fprintf(&b, "\nPage content (markdown):\n%s\n", limitTokens(markdown, contentTokens/2))
	fmt.Fprintf(&b, "\nRaw HTML (truncated):\n%s\n", limitTokens(doc.HTML, contentTokens/2))
	return b.String()
}

// limitTokens truncates s to approximately maxTokens tokens, using the
// 4-characters-per-token rule of thumb.
func limitTokens(s string, maxTokens int) string {
	maxChars := maxTokens * 4
	if len(s) <= maxChars {
		return s
	}
	return s[:maxChars] + "…"
}
