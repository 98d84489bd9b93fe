package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/loglens/loglens/internal/analysis"
)

// assemble merges the decoded payload (possibly nil) with the fallback
// extractors into one Result. Decoded fields win; a nil decoded field falls
// through to its fallback. Out-of-domain enum values are coerced to the
// defaults table, never rejected. Every code path produces a value.
func assemble(raw string, dec *decodedResult, now time.Time) *analysis.Result {
	res := &analysis.Result{RawText: raw}
	warn := func(format string, args ...any) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(format, args...))
	}

	if dec == nil {
		dec = &decodedResult{}
	}

	if dec.Summary != nil && strings.TrimSpace(*dec.Summary) != "" {
		res.Summary = *dec.Summary
	} else {
		res.Summary = fallbackSummary(raw)
	}

	if dec.Timeline != nil {
		res.Timeline = coerceTimeline(dec.Timeline, warn)
	}

	if dec.Errors != nil {
		res.Errors = coerceErrors(dec.Errors, warn)
	} else {
		res.Errors = fallbackErrors(raw, now)
	}

	if dec.Insights != nil {
		res.Insights = coerceInsights(dec.Insights, warn)
	} else {
		res.Insights = fallbackInsights(raw)
	}

	if dec.RootCauses != nil {
		res.RootCauses = coerceRootCauses(dec.RootCauses, warn)
	} else {
		res.RootCauses = fallbackRootCauses(raw)
	}

	if dec.Recommendations != nil {
		res.Recommendations = coerceRecommendations(dec.Recommendations, warn)
	} else {
		res.Recommendations = fallbackRecommendations(raw)
	}

	res.Normalize()

	return res
}

func coerceTimeline(entries []decodedTimelineEntry, warn func(string, ...any)) []analysis.TimelineEntry {
	result := make([]analysis.TimelineEntry, 0, len(entries))
	for _, e := range entries {
		sev := analysis.Severity(normalizeEnum(e.Severity))
		if !sev.IsValid() {
			warn("timeline severity %q coerced to %q", e.Severity, defaultTimelineSeverity)
			sev = defaultTimelineSeverity
		}
		result = append(result, analysis.TimelineEntry{
			Timestamp: e.Timestamp,
			Severity:  sev,
			Message:   e.Message,
			Context:   e.Context,
		})
	}
	return result
}

func coerceErrors(entries []decodedErrorEntry, warn func(string, ...any)) []analysis.ErrorEntry {
	result := make([]analysis.ErrorEntry, 0, len(entries))
	for _, e := range entries {
		sev := analysis.ErrorSeverity(normalizeEnum(e.Severity))
		if !sev.IsValid() {
			warn("error severity %q coerced to %q", e.Severity, defaultErrorSeverity)
			sev = defaultErrorSeverity
		}

		count := e.Count
		if count < 1 {
			count = 1
		}

		result = append(result, analysis.ErrorEntry{
			ErrorType:  e.ErrorType,
			Message:    e.Message,
			Severity:   sev,
			FirstSeen:  e.FirstSeen,
			Count:      count,
			StackTrace: e.StackTrace,
		})
	}
	return result
}

func coerceInsights(entries []decodedInsight, warn func(string, ...any)) []analysis.Insight {
	result := make([]analysis.Insight, 0, len(entries))
	for _, e := range entries {
		cat := analysis.Category(normalizeEnum(e.Category))
		if !cat.IsValid() {
			warn("insight category %q coerced to %q", e.Category, defaultCategory)
			cat = defaultCategory
		}

		conf := analysis.Confidence(normalizeEnum(e.Confidence))
		if !conf.IsValid() {
			warn("insight confidence %q coerced to %q", e.Confidence, defaultConfidence)
			conf = defaultConfidence
		}

		result = append(result, analysis.Insight{
			Title:       e.Title,
			Description: e.Description,
			Category:    cat,
			Confidence:  conf,
		})
	}
	return result
}

func coerceRootCauses(entries []decodedRootCause, warn func(string, ...any)) []analysis.RootCause {
	result := make([]analysis.RootCause, 0, len(entries))
	for _, e := range entries {
		conf := analysis.Confidence(normalizeEnum(e.Confidence))
		if !conf.IsValid() {
			warn("root cause confidence %q coerced to %q", e.Confidence, defaultConfidence)
			conf = defaultConfidence
		}

		result = append(result, analysis.RootCause{
			Title:             e.Title,
			Description:       e.Description,
			Evidence:          e.Evidence,
			Confidence:        conf,
			RelatedErrorTypes: e.RelatedErrorTypes,
		})
	}
	return result
}

func coerceRecommendations(entries []decodedRecommendation, warn func(string, ...any)) []analysis.Recommendation {
	result := make([]analysis.Recommendation, 0, len(entries))
	for _, e := range entries {
		prio := analysis.Priority(normalizeEnum(e.Priority))
		if !prio.IsValid() {
			warn("recommendation priority %q coerced to %q", e.Priority, defaultPriority)
			prio = defaultPriority
		}

		impact := e.EstimatedImpact
		if strings.TrimSpace(impact) == "" {
			impact = defaultImpact
		}

		result = append(result, analysis.Recommendation{
			Title:           e.Title,
			Description:     e.Description,
			Priority:        prio,
			ActionSteps:     e.ActionSteps,
			EstimatedImpact: impact,
		})
	}
	return result
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
