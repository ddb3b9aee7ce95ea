package seo

// Result is the complete SEO evaluation of one page. Every field is always
// populated; a missing page feature yields a scored check with issues, never
// an absent field.
type Result struct {
	Title       TitleCheck       `json:"title"`
	Description DescriptionCheck `json:"description"`
	Headings    HeadingsCheck    `json:"headings"`
	Images      ImagesCheck      `json:"images"`
	Links       LinksCheck       `json:"links"`
	Technical   TechnicalCheck   `json:"technical"`
	Social      SocialCheck      `json:"social"`
	Content     ContentCheck     `json:"content"`
	Advanced    AdvancedCheck    `json:"advanced"`
}

// SiteProbe carries the results of the two origin-level side lookups so the
// evaluator itself stays free of network I/O.
type SiteProbe struct {
	HasRobotsTxt bool `json:"hasRobotsTxt"`
	HasSitemap   bool `json:"hasSitemap"`
}

type TitleCheck struct {
	Text   string   `json:"text"`
	Length int      `json:"length"`
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

type DescriptionCheck struct {
	Text   string   `json:"text"`
	Length int      `json:"length"`
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

type HeadingsCheck struct {
	H1Count int      `json:"h1Count"`
	H2Count int      `json:"h2Count"`
	H1Text  []string `json:"h1Text"`
	Score   int      `json:"score"`
	Issues  []string `json:"issues"`
}

type ImagesCheck struct {
	Total      int      `json:"total"`
	MissingAlt int      `json:"missingAlt"`
	Score      int      `json:"score"`
	Issues     []string `json:"issues"`
}

type LinksCheck struct {
	Internal     int      `json:"internal"`
	External     int      `json:"external"`
	Nofollow     int      `json:"nofollow"`
	EmptyAnchors int      `json:"emptyAnchors"`
	Score        int      `json:"score"`
	Issues       []string `json:"issues"`
}

type TechnicalCheck struct {
	HTTPS        bool     `json:"https"`
	HasCanonical bool     `json:"hasCanonical"`
	HasViewport  bool     `json:"hasViewport"`
	HasRobotsTxt bool     `json:"hasRobotsTxt"`
	HasSitemap   bool     `json:"hasSitemap"`
	Score        int      `json:"score"`
	Issues       []string `json:"issues"`
}

type SocialCheck struct {
	HasOgTitle       bool     `json:"hasOgTitle"`
	HasOgDescription bool     `json:"hasOgDescription"`
	HasOgImage       bool     `json:"hasOgImage"`
	HasTwitterCard   bool     `json:"hasTwitterCard"`
	Score            int      `json:"score"`
	Issues           []string `json:"issues"`
}

type ContentCheck struct {
	WordCount       int      `json:"wordCount"`
	TextToHTMLRatio float64  `json:"textToHtmlRatio"`
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
}

type AdvancedCheck struct {
	HasLang       bool     `json:"hasLang"`
	Charset       string   `json:"charset"`
	HasFavicon    bool     `json:"hasFavicon"`
	HasTouchIcon  bool     `json:"hasTouchIcon"`
	HasThemeColor bool     `json:"hasThemeColor"`
	Score         int      `json:"score"`
	Issues        []string `json:"issues"`
}
