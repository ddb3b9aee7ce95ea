// Package wcag holds the accessibility criteria catalog, the per-criterion
// test router and the POUR score aggregation.
package wcag

import "time"

// Level is a WCAG conformance level.
type Level string

const (
	LevelA   Level = "A"
	LevelAA  Level = "AA"
	LevelAAA Level = "AAA"
)

// Version is a WCAG specification version.
type Version string

const (
	Version21 Version = "2.1"
	Version22 Version = "2.2"
)

// Principle is one of the four POUR principles.
type Principle string

const (
	Perceivable    Principle = "perceivable"
	Operable       Principle = "operable"
	Understandable Principle = "understandable"
	Robust         Principle = "robust"
)

// TestType decides how a criterion is tested during an audit.
type TestType string

const (
	TestAutomated       TestType = "automated"
	TestAIAssisted      TestType = "ai-assisted"
	TestBrowserRequired TestType = "browser-required"
	TestManual          TestType = "manual"
)

// Status is the terminal outcome of testing one criterion.
type Status string

const (
	StatusPassed        Status = "passed"
	StatusFailed        Status = "failed"
	StatusNotApplicable Status = "not-applicable"
	StatusNotChecked    Status = "not-checked"
	StatusNeedsBrowser  Status = "needs-browser"
	StatusNeedsManual   Status = "needs-manual"
)

// Severity grades a single accessibility issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeveritySerious  Severity = "serious"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

// Criterion is one WCAG success criterion. Catalog entries are immutable;
// identity is the ID string. Version is empty for criteria present in both
// 2.1 and 2.2, and "2.2" for the five 2.2-only additions.
type Criterion struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Level          Level     `json:"level"`
	Principle      Principle `json:"principle"`
	Guideline      string    `json:"guideline"`
	GuidelineTitle string    `json:"guidelineTitle"`
	Description    string    `json:"description"`
	TestType       TestType  `json:"testType"`
	W3CURL         string    `json:"w3cUrl"`
	Version        Version   `json:"version,omitempty"`
}

// Issue is a single accessibility finding within a criterion.
type Issue struct {
	Element     string   `json:"element"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Fix         string   `json:"fix"`
}

// TestResult is the write-once outcome of testing one criterion during one
// audit run.
type TestResult struct {
	Criterion    string    `json:"criterion"`
	Status       Status    `json:"status"`
	Confidence   float64   `json:"confidence"`
	Issues       []Issue   `json:"issues"`
	Observations string    `json:"observations,omitempty"`
	TestedAt     time.Time `json:"testedAt"`
}

// PourScores are the per-principle pass percentages plus the count-weighted
// overall score.
type PourScores struct {
	Perceivable    int `json:"perceivable"`
	Operable       int `json:"operable"`
	Understandable int `json:"understandable"`
	Robust         int `json:"robust"`
	Overall        int `json:"overall"`
}

// Summary tallies result statuses over a full audit.
type Summary struct {
	Passed        int `json:"passed"`
	Failed        int `json:"failed"`
	NeedsBrowser  int `json:"needsBrowser"`
	NeedsManual   int `json:"needsManual"`
	NotApplicable int `json:"notApplicable"`
	NotChecked    int `json:"notChecked"`
}
