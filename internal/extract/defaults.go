package extract

import (
	"github.com/loglens/loglens/internal/analysis"
)

// Every default applied anywhere in the pipeline lives here.
const (
	defaultSummary = "No summary could be extracted from the analysis output."
	defaultImpact  = "Impact not estimated."

	fallbackErrorType = "extracted"

	summaryMaxLines = 3
	summaryMaxChars = 300
	insightTitleMax = 50
	titleMax        = 60
)

var (
	defaultTimelineSeverity = analysis.SeverityInfo
	defaultErrorSeverity    = analysis.ErrorSeverityMedium
	defaultCategory         = analysis.CategoryPattern
	defaultConfidence       = analysis.ConfidenceMedium
	defaultPriority         = analysis.PriorityMedium
)
