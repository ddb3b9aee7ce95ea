package wcag

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

// fakeCompleter replays a canned reply or error for every AI call.
type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func mustCriterion(t *testing.T, id string) Criterion {
	t.Helper()
	c, ok := CriterionByID(id)
	if !ok {
		t.Fatalf("criterion %s not in catalog", id)
	}
	return c
}

func TestRunAuditAutomated(t *testing.T) {
	doc := docFromHTML(t, `<html lang="en"><head><title>Home</title></head><body><main>hi</main></body></html>`)
	criteria := []Criterion{mustCriterion(t, "2.4.2"), mustCriterion(t, "3.1.1")}

	results := RunAudit(context.Background(), criteria, doc, nil, AuditOptions{}, quietLogger())

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, id := range []string{"2.4.2", "3.1.1"} {
		r := results[id]
		if r.Status != StatusPassed {
			t.Errorf("%s: status = %s, want passed", id, r.Status)
		}
		if r.Confidence != automatedConfidence {
			t.Errorf("%s: confidence = %v, want %v", id, r.Confidence, automatedConfidence)
		}
		if r.Criterion != id {
			t.Errorf("%s: criterion field = %q", id, r.Criterion)
		}
		if r.TestedAt.IsZero() {
			t.Errorf("%s: testedAt not set", id)
		}
	}
}

func TestRunAuditBrowserAndManual(t *testing.T) {
	doc := docFromHTML(t, "<html><body></body></html>")
	criteria := []Criterion{
		mustCriterion(t, "1.4.3"), // browser-required
		mustCriterion(t, "2.3.1"), // manual
	}

	results := RunAudit(context.Background(), criteria, doc, nil, AuditOptions{}, quietLogger())

	if got := results["1.4.3"].Status; got != StatusNeedsBrowser {
		t.Errorf("1.4.3: status = %s, want needs-browser", got)
	}
	if got := results["2.3.1"].Status; got != StatusNeedsManual {
		t.Errorf("2.3.1: status = %s, want needs-manual", got)
	}
}

func TestRunAuditAutomatedWithoutCheckFallsBack(t *testing.T) {
	doc := docFromHTML(t, "<html><body></body></html>")
	// An automated-typed criterion with no registered check routes to a
	// human reviewer rather than silently passing.
	orphan := Criterion{ID: "9.9.9", Title: "Synthetic", Level: LevelA, TestType: TestAutomated}

	results := RunAudit(context.Background(), []Criterion{orphan}, doc, nil, AuditOptions{}, quietLogger())

	if got := results["9.9.9"].Status; got != StatusNeedsManual {
		t.Errorf("status = %s, want needs-manual", got)
	}
}

func TestRunAuditAIAssistedPassed(t *testing.T) {
	doc := docFromHTML(t, "<html><body><p>content</p></body></html>")
	criteria := []Criterion{mustCriterion(t, "1.3.2")}
	completer := &fakeCompleter{reply: "```json\n" +
		`{"status": "Passed", "confidence": 0.85, "issues": [], "observations": "Reading order follows the DOM."}` +
		"\n```"}

	results := RunAudit(context.Background(), criteria, doc, completer, AuditOptions{}, quietLogger())

	r := results["1.3.2"]
	if r.Status != StatusPassed {
		t.Errorf("status = %s, want passed", r.Status)
	}
	if r.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", r.Confidence)
	}
	if r.Observations == "" {
		t.Error("observations were dropped")
	}
}

func TestRunAuditAIAssistedFailedWithIssues(t *testing.T) {
	doc := docFromHTML(t, "<html><body></body></html>")
	criteria := []Criterion{mustCriterion(t, "1.4.1")}
	completer := &fakeCompleter{reply: `Here is my review.
{"status": "failed", "confidence": 0.7, "issues": [{"element": "<span class=red>", "description": "Error state shown by color alone", "severity": "serious", "fix": "Add an icon or text"}], "observations": ""}`}

	results := RunAudit(context.Background(), criteria, doc, completer, AuditOptions{}, quietLogger())

	r := results["1.4.1"]
	if r.Status != StatusFailed {
		t.Errorf("status = %s, want failed", r.Status)
	}
	if len(r.Issues) != 1 || r.Issues[0].Severity != SeveritySerious {
		t.Errorf("issues = %+v, want one serious issue", r.Issues)
	}
}

func TestRunAuditAIFailuresBecomeNotChecked(t *testing.T) {
	doc := docFromHTML(t, "<html><body></body></html>")
	criteria := []Criterion{mustCriterion(t, "1.3.2")}

	cases := []struct {
		name      string
		completer *fakeCompleter
	}{
		{"call error", &fakeCompleter{err: errors.New("api unreachable")}},
		{"no json", &fakeCompleter{reply: "I cannot review this page."}},
		{"invalid json", &fakeCompleter{reply: `{"status": "passed", "confidence": }`}},
		{"unknown status", &fakeCompleter{reply: `{"status": "maybe", "confidence": 0.5}`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results := RunAudit(context.Background(), criteria, doc, tc.completer, AuditOptions{}, quietLogger())
			r := results["1.3.2"]
			if r.Status != StatusNotChecked {
				t.Errorf("status = %s, want not-checked", r.Status)
			}
			if r.Confidence != 0 {
				t.Errorf("confidence = %v, want 0", r.Confidence)
			}
		})
	}
}

func TestRunAuditNilCompleter(t *testing.T) {
	doc := docFromHTML(t, "<html><body></body></html>")
	criteria := []Criterion{mustCriterion(t, "1.3.2"), mustCriterion(t, "3.3.1")}

	results := RunAudit(context.Background(), criteria, doc, nil, AuditOptions{}, quietLogger())

	for _, id := range []string{"1.3.2", "3.3.1"} {
		if got := results[id].Status; got != StatusNotChecked {
			t.Errorf("%s: status = %s, want not-checked without a completer", id, got)
		}
	}
}

func TestRunAuditConfidenceClamped(t *testing.T) {
	doc := docFromHTML(t, "<html><body></body></html>")
	criteria := []Criterion{mustCriterion(t, "1.3.2")}
	completer := &fakeCompleter{reply: `{"status": "passed", "confidence": 7.5}`}

	results := RunAudit(context.Background(), criteria, doc, completer, AuditOptions{}, quietLogger())

	if got := results["1.3.2"].Confidence; got != 1 {
		t.Errorf("confidence = %v, want clamped to 1", got)
	}
}

func TestRunAuditEveryCriterionResolves(t *testing.T) {
	doc := docFromHTML(t, `<html lang="en"><head><title>T</title></head><body><main></main></body></html>`)
	criteria := CriteriaByLevelAndVersion(LevelAAA, Version22)
	completer := &fakeCompleter{reply: `{"status": "passed", "confidence": 0.8}`}

	results := RunAudit(context.Background(), criteria, doc, completer, AuditOptions{MaxParallel: 8, AITimeout: time.Second}, quietLogger())

	if len(results) != len(criteria) {
		t.Fatalf("%d results for %d criteria", len(results), len(criteria))
	}
	for _, c := range criteria {
		r, ok := results[c.ID]
		if !ok {
			t.Errorf("%s: no result", c.ID)
			continue
		}
		if r.Status == "" {
			t.Errorf("%s: empty status", c.ID)
		}
	}
}
