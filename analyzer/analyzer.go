// Package analyzer orchestrates a full page analysis: one document fetch,
// the robots/sitemap side lookups, the SEO and LLM-readiness evaluators,
// and the WCAG audit flow.
package analyzer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/aioli-app/backend/ai"
	"github.com/aioli-app/backend/fetcher"
	"github.com/aioli-app/backend/llmready"
	"github.com/aioli-app/backend/seo"
	"github.com/aioli-app/backend/stats"
	"github.com/aioli-app/backend/wcag"
)

// Options configure an Analyzer.
type Options struct {
	// CacheTTL is how long analysis results are reused. Defaults to 30m.
	CacheTTL time.Duration
	// Completer reviews AI-assisted WCAG criteria. May be nil, in which
	// case those criteria resolve to not-checked.
	Completer ai.Completer
	// Audit tunes WCAG audit runs.
	Audit wcag.AuditOptions
}

// Analyzer runs analyses and audits. Safe for concurrent use; analyses of
// different URLs share no state beyond the result cache.
type Analyzer struct {
	fetcher   *fetcher.Client
	cache     *cache.Cache
	completer ai.Completer
	auditOpts wcag.AuditOptions
	stats     *stats.Storage
	log       *logrus.Logger
}

// New creates an Analyzer persisting usage counters under dataDir.
func New(dataDir string, log *logrus.Logger, opts Options) (*Analyzer, error) {
	statsStorage, err := stats.NewStorage(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats storage: %w", err)
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &Analyzer{
		fetcher:   fetcher.New(log),
		cache:     cache.New(ttl, 5*time.Minute),
		completer: opts.Completer,
		auditOpts: opts.Audit,
		stats:     statsStorage,
		log:       log,
	}, nil
}

func cacheKey(url string) string {
	hash := md5.Sum([]byte(url))
	return hex.EncodeToString(hash[:])
}

// IsCached reports whether a fresh analysis for url is available.
func (a *Analyzer) IsCached(url string) bool {
	_, found := a.cache.Get(cacheKey(url))
	return found
}

// Analyze fetches url and scores it against both rubrics. Only the initial
// document fetch can fail; robots.txt and sitemap.xml lookups degrade to
// "absent" and every check always yields a score.
func (a *Analyzer) Analyze(ctx context.Context, url string) (*Analysis, error) {
	key := cacheKey(url)
	if cached, found := a.cache.Get(key); found {
		a.stats.TrackAnalysis(true, false)
		return cached.(*Analysis), nil
	}

	doc, err := a.fetcher.FetchDocument(ctx, url)
	if err != nil {
		a.stats.TrackAnalysis(false, true)
		return nil, err
	}

	// The two side lookups are independent of the page checks and of each
	// other; run them while we hold the parsed document.
	var (
		wg      sync.WaitGroup
		robots  *fetcher.Robots
		sitemap []string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		robots = a.fetcher.FetchRobots(ctx, doc.URL)
	}()
	go func() {
		defer wg.Done()
		sitemap = a.fetcher.FetchSitemap(ctx, doc.URL)
	}()
	wg.Wait()

	seoResult := seo.Evaluate(doc, seo.SiteProbe{
		HasRobotsTxt: robots != nil,
		HasSitemap:   len(sitemap) > 0,
	})
	llmResult := llmready.Evaluate(doc, robots)

	analysis := &Analysis{
		URL:        url,
		FinalURL:   doc.FinalURL,
		AnalyzedAt: time.Now().UTC(),
		Seo:        seoResult,
		SeoScore:   seo.Overall(seoResult),
		Llm:        llmResult,
		LlmScore:   llmready.Overall(llmResult),
	}

	a.cache.Set(key, analysis, cache.DefaultExpiration)
	a.stats.TrackAnalysis(false, false)

	a.log.WithFields(logrus.Fields{
		"url":      url,
		"seoScore": analysis.SeoScore,
		"llmScore": analysis.LlmScore,
	}).Info("analysis completed")

	return analysis, nil
}

// Audit fetches url and runs the WCAG audit at the given conformance level
// and spec version. An unknown level or version is a caller error.
func (a *Analyzer) Audit(ctx context.Context, url string, level wcag.Level, version wcag.Version) (*AuditReport, error) {
	switch level {
	case wcag.LevelA, wcag.LevelAA, wcag.LevelAAA:
	default:
		return nil, fmt.Errorf("unknown WCAG level %q", level)
	}
	switch version {
	case wcag.Version21, wcag.Version22:
	default:
		return nil, fmt.Errorf("unknown WCAG version %q", version)
	}

	doc, err := a.fetcher.FetchDocument(ctx, url)
	if err != nil {
		a.stats.TrackAudit(true)
		return nil, err
	}

	criteria := wcag.CriteriaByLevelAndVersion(level, version)
	results := wcag.RunAudit(ctx, criteria, doc, a.completer, a.auditOpts, a.log)

	report := &AuditReport{
		URL:        url,
		Level:      level,
		Version:    version,
		AuditedAt:  time.Now().UTC(),
		Results:    results,
		PourScores: wcag.CalculatePourScores(results, level, version),
		Summary:    wcag.CalculateSummary(results),
	}

	a.stats.TrackAudit(false)

	a.log.WithFields(logrus.Fields{
		"url":     url,
		"level":   level,
		"version": version,
		"overall": report.PourScores.Overall,
	}).Info("accessibility audit completed")

	return report, nil
}

// Stats exposes the usage counter storage.
func (a *Analyzer) Stats() *stats.Storage {
	return a.stats
}

// Shutdown flushes usage counters.
func (a *Analyzer) Shutdown() error {
	if a == nil {
		return nil
	}
	if err := a.stats.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown stats storage: %w", err)
	}
	return nil
}
