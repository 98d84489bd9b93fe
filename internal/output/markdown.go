package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/loglens/loglens/internal/analysis"
)

type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) *Generator {
	return &Generator{
		outputDir: outputDir,
	}
}

// Write renders the analysis to a markdown report and returns the file
// path. Recommendations are rendered in priority order; the raw agent
// output is appended verbatim for audit.
func (g *Generator) Write(res *analysis.Result, source string, createdAt time.Time) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(g.outputDir, fmt.Sprintf("analysis-%s-%s.md", sanitizeFilename(source), createdAt.Format("20060102-150405")))

	if err := os.WriteFile(filename, []byte(Render(res, source, createdAt)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return filename, nil
}

func Render(res *analysis.Result, source string, createdAt time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Log Analysis: %s\n\n", source))
	sb.WriteString(fmt.Sprintf("**Analyzed:** %s\n\n", createdAt.Format("2006-01-02 15:04:05")))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(res.Summary)
	sb.WriteString("\n")

	if len(res.Timeline) > 0 {
		sb.WriteString("\n## Timeline\n\n")
		sb.WriteString("| Timestamp | Severity | Message |\n")
		sb.WriteString("|---|---|---|\n")
		for _, e := range res.Timeline {
			msg := e.Message
			if e.Context != "" {
				msg = fmt.Sprintf("%s (%s)", msg, e.Context)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", e.Timestamp, e.Severity, escapeCell(msg)))
		}
	}

	if len(res.Errors) > 0 {
		sb.WriteString("\n## Errors\n\n")
		for _, e := range res.Errors {
			sb.WriteString(fmt.Sprintf("- **%s** (%s, x%d, first seen %s): %s\n", e.ErrorType, e.Severity, e.Count, e.FirstSeen, e.Message))
			if e.StackTrace != "" {
				sb.WriteString(fmt.Sprintf("\n  ```\n%s\n  ```\n", indent(e.StackTrace, "  ")))
			}
		}
	}

	if len(res.Insights) > 0 {
		sb.WriteString("\n## Insights\n\n")
		for _, ins := range res.Insights {
			sb.WriteString(fmt.Sprintf("- **%s** [%s, confidence %s]: %s\n", ins.Title, ins.Category, ins.Confidence, ins.Description))
		}
	}

	if len(res.RootCauses) > 0 {
		sb.WriteString("\n## Root Causes\n\n")
		for _, c := range res.RootCauses {
			sb.WriteString(fmt.Sprintf("### %s\n\n", c.Title))
			sb.WriteString(fmt.Sprintf("%s (confidence: %s)\n", c.Description, c.Confidence))
			if len(c.Evidence) > 0 {
				sb.WriteString("\nEvidence:\n")
				for _, ev := range c.Evidence {
					sb.WriteString(fmt.Sprintf("- %s\n", ev))
				}
			}
			if len(c.RelatedErrorTypes) > 0 {
				sb.WriteString(fmt.Sprintf("\nRelated error types: %s\n", strings.Join(c.RelatedErrorTypes, ", ")))
			}
		}
	}

	if recs := res.RecommendationsByPriority(); len(recs) > 0 {
		sb.WriteString("\n## Recommendations\n\n")
		for i, r := range recs {
			sb.WriteString(fmt.Sprintf("%d. **%s** [%s]: %s\n", i+1, r.Title, r.Priority, r.Description))
			for _, step := range r.ActionSteps {
				sb.WriteString(fmt.Sprintf("   - %s\n", step))
			}
			sb.WriteString(fmt.Sprintf("   - Estimated impact: %s\n", r.EstimatedImpact))
		}
	}

	if len(res.Warnings) > 0 {
		sb.WriteString("\n## Extraction Warnings\n\n")
		for _, w := range res.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	sb.WriteString("\n## Raw Agent Output\n\n")
	// Four-backtick fence so fenced blocks inside the raw reply survive.
	sb.WriteString("````\n")
	sb.WriteString(res.RawText)
	if !strings.HasSuffix(res.RawText, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("````\n")

	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func sanitizeFilename(s string) string {
	s = filepath.Base(s)
	reg := regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	result := reg.ReplaceAllString(s, "-")
	result = strings.Trim(result, "-")
	if len(result) > 50 {
		result = result[:50]
	}
	if result == "" {
		result = "unnamed"
	}
	return strings.ToLower(result)
}
