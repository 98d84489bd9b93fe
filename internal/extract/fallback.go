package extract

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/loglens/loglens/internal/analysis"
)

// The fallback extractors are independent line scanners. Each one covers a
// single result field, never fails, and degrades to an empty sequence.

type cueMatch struct {
	cue  string
	rest string
}

// scanCues walks text line by line and reports, per line, the first cue
// (case-insensitive) followed by non-empty trailing text. Matches keep
// document order. Cues are ASCII, so matching lowercases ASCII letters only
// and byte offsets into the original line stay valid.
func scanCues(text string, cues []string) []cueMatch {
	var matches []cueMatch

	for _, line := range strings.Split(text, "\n") {
		lowered := lowerASCII(line)
		for _, cue := range cues {
			idx := strings.Index(lowered, cue)
			if idx == -1 {
				continue
			}
			rest := strings.TrimSpace(line[idx+len(cue):])
			if rest == "" {
				continue
			}
			matches = append(matches, cueMatch{cue: cue, rest: rest})
			break
		}
	}

	return matches
}

func fallbackSummary(text string) string {
	var lines []string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
		if len(lines) == summaryMaxLines {
			break
		}
	}

	if len(lines) == 0 {
		return defaultSummary
	}

	return clip(strings.Join(lines, " "), summaryMaxChars)
}

func fallbackErrors(text string, now time.Time) []analysis.ErrorEntry {
	seen := now.UTC().Format(time.RFC3339)

	var entries []analysis.ErrorEntry
	for _, m := range scanCues(text, []string{"error:"}) {
		entries = append(entries, analysis.ErrorEntry{
			ErrorType: fallbackErrorType,
			Message:   m.rest,
			Severity:  defaultErrorSeverity,
			FirstSeen: seen,
			Count:     1,
		})
	}

	return entries
}

var insightCues = []string{"pattern:", "anomaly:", "correlation:"}

var insightCategories = map[string]analysis.Category{
	"pattern:":     analysis.CategoryPattern,
	"anomaly:":     analysis.CategoryAnomaly,
	"correlation:": analysis.CategoryCorrelation,
}

func fallbackInsights(text string) []analysis.Insight {
	var insights []analysis.Insight
	for _, m := range scanCues(text, insightCues) {
		insights = append(insights, analysis.Insight{
			Title:       clip(m.rest, insightTitleMax),
			Description: m.rest,
			Category:    insightCategories[m.cue],
			Confidence:  defaultConfidence,
		})
	}

	return insights
}

func fallbackRootCauses(text string) []analysis.RootCause {
	// "root cause:" is checked first so plain "cause:" does not win on the
	// same line.
	var causes []analysis.RootCause
	for _, m := range scanCues(text, []string{"root cause:", "cause:"}) {
		causes = append(causes, analysis.RootCause{
			Title:       clip(m.rest, titleMax),
			Description: m.rest,
			Confidence:  defaultConfidence,
		})
	}

	return causes
}

func fallbackRecommendations(text string) []analysis.Recommendation {
	var recs []analysis.Recommendation
	for _, m := range scanCues(text, []string{"recommend:", "suggestion:", "fix:"}) {
		recs = append(recs, analysis.Recommendation{
			Title:           clip(m.rest, titleMax),
			Description:     m.rest,
			Priority:        defaultPriority,
			EstimatedImpact: defaultImpact,
		})
	}

	return recs
}

// lowerASCII lowercases ASCII letters only. Unlike strings.ToLower it never
// changes the byte length of the input.
func lowerASCII(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			if b == nil {
				b = []byte(s)
			}
			b[i] = c + ('a' - 'A')
		}
	}
	if b == nil {
		return s
	}
	return string(b)
}

// clip truncates s to at most maxLen bytes without splitting a rune.
func clip(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut])
}
