package wcag

import "math"

// counted reports whether a result participates in POUR percentages.
// Criteria waiting on browser or manual review, or not checked at all,
// are excluded from the denominator; they neither help nor hurt.
func counted(status Status) bool {
	switch status {
	case StatusPassed, StatusFailed, StatusNotApplicable:
		return true
	}
	return false
}

// effectivelyPassed treats not-applicable as a pass within the counted set.
func effectivelyPassed(status Status) bool {
	return status == StatusPassed || status == StatusNotApplicable
}

func percentage(passed, total int) int {
	// A principle with nothing counted scores 100: vacuously compliant.
	// Preserved upstream behavior; see DESIGN.md before changing.
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(passed) / float64(total) * 100))
}

// CalculatePourScores aggregates one audit's results into per-principle
// pass percentages. The overall score is weighted by counted criteria
// across all principles, not an average of the four percentages.
func CalculatePourScores(results map[string]TestResult, level Level, version Version) PourScores {
	passed := make(map[Principle]int)
	total := make(map[Principle]int)

	for _, c := range CriteriaByLevelAndVersion(level, version) {
		r, ok := results[c.ID]
		if !ok || !counted(r.Status) {
			continue
		}
		total[c.Principle]++
		if effectivelyPassed(r.Status) {
			passed[c.Principle]++
		}
	}

	allPassed := passed[Perceivable] + passed[Operable] + passed[Understandable] + passed[Robust]
	allTotal := total[Perceivable] + total[Operable] + total[Understandable] + total[Robust]

	return PourScores{
		Perceivable:    percentage(passed[Perceivable], total[Perceivable]),
		Operable:       percentage(passed[Operable], total[Operable]),
		Understandable: percentage(passed[Understandable], total[Understandable]),
		Robust:         percentage(passed[Robust], total[Robust]),
		Overall:        percentage(allPassed, allTotal),
	}
}

// CalculateSummary tallies statuses over all results, independent of the
// POUR denominator rules. The tallies always sum to len(results).
func CalculateSummary(results map[string]TestResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusNeedsBrowser:
			s.NeedsBrowser++
		case StatusNeedsManual:
			s.NeedsManual++
		case StatusNotApplicable:
			s.NotApplicable++
		default:
			s.NotChecked++
		}
	}
	return s
}
