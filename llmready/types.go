package llmready

// Result is the complete AI-visibility evaluation of one page. All five
// checks are always present.
type Result struct {
	StructuredData  StructuredDataCheck `json:"structuredData"`
	ContentClarity  ContentClarityCheck `json:"contentClarity"`
	AuthorInfo      AuthorInfoCheck     `json:"authorInfo"`
	AICrawlerAccess CrawlerAccessCheck  `json:"aiCrawlerAccess"`
	Citability      CitabilityCheck     `json:"citability"`
}

type StructuredDataCheck struct {
	HasJSONLD    bool     `json:"hasJsonLd"`
	HasMicrodata bool     `json:"hasMicrodata"`
	Types        []string `json:"types"`
	Score        int      `json:"score"`
	Issues       []string `json:"issues"`
}

type ContentClarityCheck struct {
	ParagraphCount     int      `json:"paragraphCount"`
	AvgParagraphLength float64  `json:"avgParagraphLength"`
	HasFAQ             bool     `json:"hasFaq"`
	HasDefinitions     bool     `json:"hasDefinitions"`
	Score              int      `json:"score"`
	Issues             []string `json:"issues"`
}

type AuthorInfoCheck struct {
	HasAuthor       bool     `json:"hasAuthor"`
	HasPublishDate  bool     `json:"hasPublishDate"`
	HasModifiedDate bool     `json:"hasModifiedDate"`
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
}

type CrawlerAccessCheck struct {
	RobotsTxtFound bool     `json:"robotsTxtFound"`
	BlockedBots    []string `json:"blockedBots"`
	Score          int      `json:"score"`
	Issues         []string `json:"issues"`
}

type CitabilityCheck struct {
	HasQuotes     bool     `json:"hasQuotes"`
	HasStatistics bool     `json:"hasStatistics"`
	HasSources    bool     `json:"hasSources"`
	Score         int      `json:"score"`
	Issues        []string `json:"issues"`
}
