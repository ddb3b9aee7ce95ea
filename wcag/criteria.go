package wcag

import "strings"

// guidelineTitles maps "X.Y" guideline numbers to their names.
var guidelineTitles = map[string]string{
	"1.1": "Text Alternatives",
	"1.2": "Time-based Media",
	"1.3": "Adaptable",
	"1.4": "Distinguishable",
	"2.1": "Keyboard Accessible",
	"2.2": "Enough Time",
	"2.3": "Seizures and Physical Reactions",
	"2.4": "Navigable",
	"2.5": "Input Modalities",
	"3.1": "Readable",
	"3.2": "Predictable",
	"3.3": "Input Assistance",
	"4.1": "Compatible",
}

var principleByDigit = map[byte]Principle{
	'1': Perceivable,
	'2': Operable,
	'3': Understandable,
	'4': Robust,
}

// criterion builds a catalog entry, deriving principle and guideline from
// the numbering and the W3C URL from the understanding-document slug.
func criterion(id, title string, level Level, testType TestType, slug, description string) Criterion {
	guideline := id[:strings.LastIndex(id, ".")]
	return Criterion{
		ID:             id,
		Title:          title,
		Level:          level,
		Principle:      principleByDigit[id[0]],
		Guideline:      guideline,
		GuidelineTitle: guidelineTitles[guideline],
		Description:    description,
		TestType:       testType,
		W3CURL:         "https://www.w3.org/WAI/WCAG22/Understanding/" + slug,
	}
}

// added22 marks a criterion as new in WCAG 2.2.
func added22(c Criterion) Criterion {
	c.Version = Version22
	return c
}

// catalog is the full set of success criteria the auditor knows about.
// Built once at package load, read-only afterwards.
var catalog = []Criterion{
	// Perceivable
	criterion("1.1.1", "Non-text Content", LevelA, TestAutomated, "non-text-content.html",
		"All non-text content has a text alternative that serves the equivalent purpose."),
	criterion("1.2.1", "Audio-only and Video-only (Prerecorded)", LevelA, TestManual, "audio-only-and-video-only-prerecorded.html",
		"Prerecorded audio-only and video-only media have text or audio alternatives."),
	criterion("1.2.2", "Captions (Prerecorded)", LevelA, TestManual, "captions-prerecorded.html",
		"Captions are provided for all prerecorded audio content in synchronized media."),
	criterion("1.2.3", "Audio Description or Media Alternative (Prerecorded)", LevelA, TestManual, "audio-description-or-media-alternative-prerecorded.html",
		"An alternative for time-based media or audio description is provided for prerecorded video."),
	criterion("1.2.4", "Captions (Live)", LevelAA, TestManual, "captions-live.html",
		"Captions are provided for all live audio content in synchronized media."),
	criterion("1.2.5", "Audio Description (Prerecorded)", LevelAA, TestManual, "audio-description-prerecorded.html",
		"Audio description is provided for all prerecorded video content."),
	criterion("1.3.1", "Info and Relationships", LevelA, TestAutomated, "info-and-relationships.html",
		"Information, structure, and relationships conveyed through presentation can be programmatically determined."),
	criterion("1.3.2", "Meaningful Sequence", LevelA, TestAIAssisted, "meaningful-sequence.html",
		"The reading order of content is logical and can be programmatically determined."),
	criterion("1.3.3", "Sensory Characteristics", LevelA, TestAIAssisted, "sensory-characteristics.html",
		"Instructions do not rely solely on sensory characteristics such as shape, color, or location."),
	criterion("1.3.4", "Orientation", LevelAA, TestBrowserRequired, "orientation.html",
		"Content does not restrict its view to a single display orientation."),
	criterion("1.3.5", "Identify Input Purpose", LevelAA, TestAIAssisted, "identify-input-purpose.html",
		"The purpose of common input fields can be programmatically determined."),
	criterion("1.4.1", "Use of Color", LevelA, TestAIAssisted, "use-of-color.html",
		"Color is not the only visual means of conveying information or distinguishing elements."),
	criterion("1.4.2", "Audio Control", LevelA, TestManual, "audio-control.html",
		"Audio that plays automatically for more than three seconds can be paused, stopped, or muted."),
	criterion("1.4.3", "Contrast (Minimum)", LevelAA, TestBrowserRequired, "contrast-minimum.html",
		"Text has a contrast ratio of at least 4.5:1 (3:1 for large text)."),
	criterion("1.4.4", "Resize Text", LevelAA, TestBrowserRequired, "resize-text.html",
		"Text can be resized up to 200 percent without loss of content or functionality."),
	criterion("1.4.5", "Images of Text", LevelAA, TestAIAssisted, "images-of-text.html",
		"Text is used to convey information rather than images of text."),
	criterion("1.4.6", "Contrast (Enhanced)", LevelAAA, TestBrowserRequired, "contrast-enhanced.html",
		"Text has a contrast ratio of at least 7:1 (4.5:1 for large text)."),
	criterion("1.4.10", "Reflow", LevelAA, TestBrowserRequired, "reflow.html",
		"Content reflows to a single column at 320 CSS pixels without two-dimensional scrolling."),
	criterion("1.4.11", "Non-text Contrast", LevelAA, TestBrowserRequired, "non-text-contrast.html",
		"UI components and graphical objects have a contrast ratio of at least 3:1."),
	criterion("1.4.12", "Text Spacing", LevelAA, TestBrowserRequired, "text-spacing.html",
		"No loss of content when users override text spacing properties."),
	criterion("1.4.13", "Content on Hover or Focus", LevelAA, TestBrowserRequired, "content-on-hover-or-focus.html",
		"Content that appears on hover or focus is dismissible, hoverable, and persistent."),

	// Operable
	criterion("2.1.1", "Keyboard", LevelA, TestBrowserRequired, "keyboard.html",
		"All functionality is operable through a keyboard interface."),
	criterion("2.1.2", "No Keyboard Trap", LevelA, TestBrowserRequired, "no-keyboard-trap.html",
		"Keyboard focus can always be moved away from any component."),
	criterion("2.1.3", "Keyboard (No Exception)", LevelAAA, TestBrowserRequired, "keyboard-no-exception.html",
		"All functionality is operable through a keyboard without exception."),
	criterion("2.1.4", "Character Key Shortcuts", LevelA, TestManual, "character-key-shortcuts.html",
		"Single-character shortcuts can be turned off, remapped, or are only active on focus."),
	criterion("2.2.1", "Timing Adjustable", LevelA, TestManual, "timing-adjustable.html",
		"Users can turn off, adjust, or extend time limits."),
	criterion("2.2.2", "Pause, Stop, Hide", LevelA, TestAIAssisted, "pause-stop-hide.html",
		"Moving, blinking, or auto-updating content can be paused, stopped, or hidden."),
	criterion("2.3.1", "Three Flashes or Below Threshold", LevelA, TestManual, "three-flashes-or-below-threshold.html",
		"Nothing flashes more than three times per second."),
	criterion("2.4.1", "Bypass Blocks", LevelA, TestAutomated, "bypass-blocks.html",
		"A mechanism exists to skip blocks of repeated content."),
	criterion("2.4.2", "Page Titled", LevelA, TestAutomated, "page-titled.html",
		"Pages have titles that describe topic or purpose."),
	criterion("2.4.3", "Focus Order", LevelA, TestBrowserRequired, "focus-order.html",
		"Focusable components receive focus in an order that preserves meaning."),
	criterion("2.4.4", "Link Purpose (In Context)", LevelA, TestAutomated, "link-purpose-in-context.html",
		"The purpose of each link can be determined from its text or context."),
	criterion("2.4.5", "Multiple Ways", LevelAA, TestAIAssisted, "multiple-ways.html",
		"More than one way is available to locate a page within a set of pages."),
	criterion("2.4.6", "Headings and Labels", LevelAA, TestAIAssisted, "headings-and-labels.html",
		"Headings and labels describe topic or purpose."),
	criterion("2.4.7", "Focus Visible", LevelAA, TestBrowserRequired, "focus-visible.html",
		"Keyboard focus indicator is visible."),
	added22(criterion("2.4.11", "Focus Not Obscured (Minimum)", LevelAA, TestBrowserRequired, "focus-not-obscured-minimum.html",
		"Focused components are not entirely hidden by author-created content.")),
	criterion("2.5.1", "Pointer Gestures", LevelA, TestManual, "pointer-gestures.html",
		"Multipoint or path-based gestures have single-pointer alternatives."),
	criterion("2.5.2", "Pointer Cancellation", LevelA, TestManual, "pointer-cancellation.html",
		"Functions triggered by a single pointer can be cancelled."),
	criterion("2.5.3", "Label in Name", LevelA, TestAIAssisted, "label-in-name.html",
		"The accessible name of a component contains its visible label text."),
	criterion("2.5.4", "Motion Actuation", LevelA, TestManual, "motion-actuation.html",
		"Functionality triggered by device motion has a conventional alternative."),
	added22(criterion("2.5.7", "Dragging Movements", LevelAA, TestManual, "dragging-movements.html",
		"Dragging actions have a single-pointer alternative.")),
	added22(criterion("2.5.8", "Target Size (Minimum)", LevelAA, TestBrowserRequired, "target-size-minimum.html",
		"Pointer targets are at least 24 by 24 CSS pixels.")),

	// Understandable
	criterion("3.1.1", "Language of Page", LevelA, TestAutomated, "language-of-page.html",
		"The default human language of the page can be programmatically determined."),
	criterion("3.1.2", "Language of Parts", LevelAA, TestAIAssisted, "language-of-parts.html",
		"The language of passages that differ from the page language can be programmatically determined."),
	criterion("3.1.5", "Reading Level", LevelAAA, TestAIAssisted, "reading-level.html",
		"Content does not require reading ability beyond lower secondary education, or a simpler version exists."),
	criterion("3.2.1", "On Focus", LevelA, TestBrowserRequired, "on-focus.html",
		"Receiving focus does not initiate a change of context."),
	criterion("3.2.2", "On Input", LevelA, TestBrowserRequired, "on-input.html",
		"Changing a setting does not automatically change context unless the user is advised."),
	criterion("3.2.3", "Consistent Navigation", LevelAA, TestAIAssisted, "consistent-navigation.html",
		"Navigation mechanisms are repeated in the same relative order across pages."),
	criterion("3.2.4", "Consistent Identification", LevelAA, TestAIAssisted, "consistent-identification.html",
		"Components with the same functionality are identified consistently."),
	criterion("3.3.1", "Error Identification", LevelA, TestAIAssisted, "error-identification.html",
		"Input errors are identified and described to the user in text."),
	criterion("3.3.2", "Labels or Instructions", LevelA, TestAIAssisted, "labels-or-instructions.html",
		"Labels or instructions are provided when content requires user input."),
	criterion("3.3.3", "Error Suggestion", LevelAA, TestAIAssisted, "error-suggestion.html",
		"Suggestions for correcting input errors are provided when known."),
	criterion("3.3.4", "Error Prevention (Legal, Financial, Data)", LevelAA, TestManual, "error-prevention-legal-financial-data.html",
		"Submissions with legal or financial consequences are reversible, checked, or confirmed."),
	added22(criterion("3.3.7", "Redundant Entry", LevelA, TestManual, "redundant-entry.html",
		"Previously entered information is auto-populated or available for selection.")),
	added22(criterion("3.3.8", "Accessible Authentication (Minimum)", LevelAA, TestAIAssisted, "accessible-authentication-minimum.html",
		"Authentication does not rely on a cognitive function test without alternatives.")),

	// Robust
	criterion("4.1.1", "Parsing", LevelA, TestAutomated, "parsing.html",
		"Markup has complete tags, proper nesting, and no duplicate attributes or IDs."),
	criterion("4.1.2", "Name, Role, Value", LevelA, TestAutomated, "name-role-value.html",
		"UI components expose their name, role, and value to assistive technology."),
	criterion("4.1.3", "Status Messages", LevelAA, TestAIAssisted, "status-messages.html",
		"Status messages can be programmatically determined without receiving focus."),
}

// criteriaByID indexes the catalog. Built once at package load.
var criteriaByID = func() map[string]Criterion {
	m := make(map[string]Criterion, len(catalog))
	for _, c := range catalog {
		m[c.ID] = c
	}
	return m
}()

// AllCriteria returns a copy of the full catalog.
func AllCriteria() []Criterion {
	out := make([]Criterion, len(catalog))
	copy(out, catalog)
	return out
}

// CriterionByID looks up one criterion by its exact ID. The second return
// value is false when the ID is unknown.
func CriterionByID(id string) (Criterion, bool) {
	c, ok := criteriaByID[id]
	return c, ok
}

// levelIncludes reports whether auditing at the requested level covers a
// criterion of the given level. A ⊂ AA ⊂ AAA.
func levelIncludes(requested, criterion Level) bool {
	rank := map[Level]int{LevelA: 1, LevelAA: 2, LevelAAA: 3}
	return rank[criterion] <= rank[requested]
}

// CriteriaByLevelAndVersion selects the criteria audited at the requested
// conformance level and spec version. Criteria introduced in 2.2 are
// excluded when auditing against 2.1.
func CriteriaByLevelAndVersion(level Level, version Version) []Criterion {
	var out []Criterion
	for _, c := range catalog {
		if !levelIncludes(level, c.Level) {
			continue
		}
		if c.Version == Version22 && version == Version21 {
			continue
		}
		out = append(out, c)
	}
	return out
}
