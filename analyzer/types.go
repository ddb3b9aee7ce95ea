package analyzer

import (
	"time"

	"github.com/aioli-app/backend/llmready"
	"github.com/aioli-app/backend/seo"
	"github.com/aioli-app/backend/wcag"
)

// Analysis is the combined result of analyzing one URL at one point in
// time. Re-analysis produces a new Analysis; nothing is updated in place.
type Analysis struct {
	URL        string          `json:"url"`
	FinalURL   string          `json:"finalUrl"`
	AnalyzedAt time.Time       `json:"analyzedAt"`
	Seo        seo.Result      `json:"seo"`
	SeoScore   int             `json:"seoScore"`
	Llm        llmready.Result `json:"llmReadiness"`
	LlmScore   int             `json:"llmScore"`
}

// AuditReport is the write-once snapshot of one accessibility audit.
type AuditReport struct {
	URL        string                     `json:"url"`
	Level      wcag.Level                 `json:"level"`
	Version    wcag.Version               `json:"version"`
	AuditedAt  time.Time                  `json:"auditedAt"`
	Results    map[string]wcag.TestResult `json:"results"`
	PourScores wcag.PourScores            `json:"pourScores"`
	Summary    wcag.Summary               `json:"summary"`
}
