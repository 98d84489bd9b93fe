package analysis

import (
	"sort"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

var ValidSeverities = map[Severity]struct{}{
	SeverityInfo:     {},
	SeverityWarning:  {},
	SeverityError:    {},
	SeverityCritical: {},
}

func (s Severity) IsValid() bool {
	_, ok := ValidSeverities[s]
	return ok
}

type ErrorSeverity string

const (
	ErrorSeverityLow      ErrorSeverity = "low"
	ErrorSeverityMedium   ErrorSeverity = "medium"
	ErrorSeverityHigh     ErrorSeverity = "high"
	ErrorSeverityCritical ErrorSeverity = "critical"
)

var ValidErrorSeverities = map[ErrorSeverity]struct{}{
	ErrorSeverityLow:      {},
	ErrorSeverityMedium:   {},
	ErrorSeverityHigh:     {},
	ErrorSeverityCritical: {},
}

func (s ErrorSeverity) IsValid() bool {
	_, ok := ValidErrorSeverities[s]
	return ok
}

type Category string

const (
	CategoryPattern     Category = "pattern"
	CategoryAnomaly     Category = "anomaly"
	CategoryCorrelation Category = "correlation"
	CategoryMetric      Category = "metric"
)

var ValidCategories = map[Category]struct{}{
	CategoryPattern:     {},
	CategoryAnomaly:     {},
	CategoryCorrelation: {},
	CategoryMetric:      {},
}

func (c Category) IsValid() bool {
	_, ok := ValidCategories[c]
	return ok
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

var ValidConfidences = map[Confidence]struct{}{
	ConfidenceLow:    {},
	ConfidenceMedium: {},
	ConfidenceHigh:   {},
}

func (c Confidence) IsValid() bool {
	_, ok := ValidConfidences[c]
	return ok
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var priorityRank = map[Priority]int{
	PriorityCritical: 3,
	PriorityHigh:     2,
	PriorityMedium:   1,
	PriorityLow:      0,
}

func (p Priority) IsValid() bool {
	_, ok := priorityRank[p]
	return ok
}

func (p Priority) Rank() int {
	return priorityRank[p]
}

// Collection caps. Truncation keeps the earliest entries in extraction
// order, it is not a ranked selection.
const (
	MaxTimelineEntries = 50
	MaxErrorEntries    = 10
	MaxInsights        = 5
	MaxRootCauses      = 3
	MaxRecommendations = 5
)

type TimelineEntry struct {
	Timestamp string   `json:"timestamp"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Context   string   `json:"context,omitempty"`
}

type ErrorEntry struct {
	ErrorType  string        `json:"errorType"`
	Message    string        `json:"message"`
	Severity   ErrorSeverity `json:"severity"`
	FirstSeen  string        `json:"firstSeen"`
	Count      int           `json:"count"`
	StackTrace string        `json:"stackTrace,omitempty"`
}

type Insight struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Confidence  Confidence `json:"confidence"`
}

type RootCause struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Evidence          []string   `json:"evidence"`
	Confidence        Confidence `json:"confidence"`
	RelatedErrorTypes []string   `json:"relatedErrorTypes"`
}

type Recommendation struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Priority        Priority `json:"priority"`
	ActionSteps     []string `json:"actionSteps"`
	EstimatedImpact string   `json:"estimatedImpact"`
}

// Result is the assembled analysis record for one agent response. It is
// built once, immediately after the response is available, and not mutated
// afterwards. Recommendations keeps extraction order; consumers wanting
// priority order use RecommendationsByPriority.
type Result struct {
	Summary         string           `json:"summary"`
	Timeline        []TimelineEntry  `json:"timeline"`
	Errors          []ErrorEntry     `json:"errors"`
	Insights        []Insight        `json:"insights"`
	RootCauses      []RootCause      `json:"rootCauses"`
	Recommendations []Recommendation `json:"recommendations"`
	Warnings        []string         `json:"warnings,omitempty"`
	RawText         string           `json:"rawText"`
}

// Normalize truncates every capped collection in place, keeping the first
// N entries.
func (r *Result) Normalize() {
	if len(r.Timeline) > MaxTimelineEntries {
		r.Timeline = r.Timeline[:MaxTimelineEntries]
	}
	if len(r.Errors) > MaxErrorEntries {
		r.Errors = r.Errors[:MaxErrorEntries]
	}
	if len(r.Insights) > MaxInsights {
		r.Insights = r.Insights[:MaxInsights]
	}
	if len(r.RootCauses) > MaxRootCauses {
		r.RootCauses = r.RootCauses[:MaxRootCauses]
	}
	if len(r.Recommendations) > MaxRecommendations {
		r.Recommendations = r.Recommendations[:MaxRecommendations]
	}
}

// RecommendationsByPriority returns the recommendations ordered critical
// first, with ties keeping their extraction order. The underlying slice is
// not modified.
func (r *Result) RecommendationsByPriority() []Recommendation {
	sorted := make([]Recommendation, len(r.Recommendations))
	copy(sorted, r.Recommendations)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() > sorted[j].Priority.Rank()
	})

	return sorted
}
