package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodedResult mirrors the JSON object the agent is asked to produce.
// Pointer and slice fields distinguish absent from empty: a nil field was
// not present in the block and falls through to its fallback extractor.
// Enum-valued fields stay plain strings here; domain validation happens at
// assembly.
type decodedResult struct {
	Summary         *string                 `json:"summary"`
	Timeline        []decodedTimelineEntry  `json:"timeline"`
	Errors          []decodedErrorEntry     `json:"errors"`
	Insights        []decodedInsight        `json:"insights"`
	RootCauses      []decodedRootCause      `json:"rootCauses"`
	Recommendations []decodedRecommendation `json:"recommendations"`
}

type decodedTimelineEntry struct {
	Timestamp string `json:"timestamp"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Context   string `json:"context"`
}

type decodedErrorEntry struct {
	ErrorType  string `json:"errorType"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	FirstSeen  string `json:"firstSeen"`
	Count      int    `json:"count"`
	StackTrace string `json:"stackTrace"`
}

type decodedInsight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Confidence  string `json:"confidence"`
}

type decodedRootCause struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Evidence          []string `json:"evidence"`
	Confidence        string   `json:"confidence"`
	RelatedErrorTypes []string `json:"relatedErrorTypes"`
}

type decodedRecommendation struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Priority        string   `json:"priority"`
	ActionSteps     []string `json:"actionSteps"`
	EstimatedImpact string   `json:"estimatedImpact"`
}

// decodeBlock parses a fenced-block payload into a decodedResult. Unknown
// fields are ignored. Any syntax error, type mismatch, or non-object
// payload fails the whole block; a malformed block is never partially
// trusted.
func decodeBlock(content string) (*decodedResult, error) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, fmt.Errorf("payload is not a JSON object")
	}

	var dec decodedResult
	if err := json.Unmarshal([]byte(trimmed), &dec); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	return &dec, nil
}
