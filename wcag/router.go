package wcag

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aioli-app/backend/ai"
	"github.com/aioli-app/backend/fetcher"
)

// AuditOptions tune one audit run.
type AuditOptions struct {
	// MaxParallel bounds concurrent AI calls. Defaults to 4.
	MaxParallel int
	// AITimeout bounds each AI call. Defaults to 30s.
	AITimeout time.Duration
	// ContentTokens is the per-prompt page content budget.
	ContentTokens int
}

func (o AuditOptions) withDefaults() AuditOptions {
	if o.MaxParallel <= 0 {
		o.MaxParallel = 4
	}
	if o.AITimeout <= 0 {
		o.AITimeout = 30 * time.Second
	}
	return o
}

// RunAudit resolves every requested criterion to exactly one terminal
// TestResult. Automated, browser-required and manual criteria resolve
// immediately; AI-assisted ones fan out to the completer with bounded
// parallelism. Per-criterion failures never abort the audit: any AI call or
// parse failure becomes a not-checked result.
func RunAudit(ctx context.Context, criteria []Criterion, doc *fetcher.Document, completer ai.Completer, opts AuditOptions, log *logrus.Logger) map[string]TestResult {
	opts = opts.withDefaults()

	results := make(map[string]TestResult, len(criteria))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxParallel)

	record := func(id string, r TestResult) {
		r.Criterion = id
		r.TestedAt = time.Now().UTC()
		mu.Lock()
		results[id] = r
		mu.Unlock()
	}

	for _, c := range criteria {
		switch {
		case c.TestType == TestAutomated && automatedChecks[c.ID] != nil:
			outcome := automatedChecks[c.ID](doc)
			record(c.ID, TestResult{
				Status:       outcome.Status,
				Confidence:   automatedConfidence,
				Issues:       outcome.Issues,
				Observations: outcome.Observations,
			})

		case c.TestType == TestAIAssisted:
			c := c
			g.Go(func() error {
				record(c.ID, aiAssistedResult(gctx, c, doc, completer, opts, log))
				return nil
			})

		case c.TestType == TestBrowserRequired:
			record(c.ID, TestResult{
				Status:       StatusNeedsBrowser,
				Observations: "This criterion depends on rendered layout or interaction and needs a browser-based check.",
			})

		default:
			// Manual criteria, and automated criteria with no registered
			// check, both end up in human hands.
			record(c.ID, TestResult{
				Status:       StatusNeedsManual,
				Observations: "This criterion requires human judgment and must be reviewed manually.",
			})
		}
	}

	g.Wait()
	return results
}

// aiResponse is the JSON shape the reviewer model is asked to produce.
type aiResponse struct {
	Status       string  `json:"status"`
	Confidence   float64 `json:"confidence"`
	Issues       []Issue `json:"issues"`
	Observations string  `json:"observations"`
}

// aiAssistedResult asks the completer to review one criterion and maps the
// response to a TestResult. Every failure path returns a not-checked result
// with zero confidence.
func aiAssistedResult(ctx context.Context, c Criterion, doc *fetcher.Document, completer ai.Completer, opts AuditOptions, log *logrus.Logger) TestResult {
	notChecked := func(reason string) TestResult {
		return TestResult{Status: StatusNotChecked, Confidence: 0, Observations: reason}
	}

	if completer == nil {
		return notChecked("AI reviewer is not configured.")
	}

	callCtx, cancel := context.WithTimeout(ctx, opts.AITimeout)
	defer cancel()

	raw, err := completer.Complete(callCtx, auditSystemPrompt, buildAuditPrompt(c, doc, opts.ContentTokens))
	if err != nil {
		log.WithFields(logrus.Fields{"criterion": c.ID, "error": err}).Warn("AI review call failed")
		return notChecked("AI review failed; criterion was not checked.")
	}

	payload, err := ai.ExtractJSON(raw)
	if err != nil {
		log.WithFields(logrus.Fields{"criterion": c.ID}).Warn("AI response contained no JSON object")
		return notChecked("AI response could not be parsed; criterion was not checked.")
	}

	var resp aiResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		log.WithFields(logrus.Fields{"criterion": c.ID, "error": err}).Warn("AI response JSON invalid")
		return notChecked("AI response could not be parsed; criterion was not checked.")
	}

	status := Status(strings.ToLower(strings.TrimSpace(resp.Status)))
	switch status {
	case StatusPassed, StatusFailed, StatusNotApplicable:
	default:
		return notChecked("AI response had an unrecognized status; criterion was not checked.")
	}

	confidence := resp.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return TestResult{
		Status:       status,
		Confidence:   confidence,
		Issues:       resp.Issues,
		Observations: resp.Observations,
	}
}
