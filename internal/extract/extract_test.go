package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/loglens/loglens/internal/analysis"
)

func TestRunTotality(t *testing.T) {
	inputs := []string{
		"",
		"plain prose with no structure at all",
		"```json\n{\"summary\":\"ok\"}\n```",
		"```json\n{broken\n```",
		"```json\n[1,2]\n```",
		strings.Repeat("Error: boom\n", 1000),
		"\x00\xff not even valid utf-8 \xfe",
		"ȾȾȾȾȾȾerror:x",
		"İİİİERROR: mixed-width case folding",
	}

	for i, input := range inputs {
		res := Run(input, testNow)
		if res == nil {
			t.Fatalf("Run() returned nil for input %d", i)
		}
		if res.Summary == "" {
			t.Errorf("input %d: summary is empty", i)
		}
		if res.RawText != input {
			t.Errorf("input %d: raw text not preserved", i)
		}
	}
}

func TestRunStrictPrecedence(t *testing.T) {
	// The prose around the block would match several fallback cues; the
	// decoded fields must win anyway.
	input := `Error: this prose error must be ignored
Recommend: this prose recommendation must be ignored

` + "```json\n" + `{
  "summary": "decoded summary",
  "errors": [{"errorType":"oom","message":"heap exhausted","severity":"high","firstSeen":"2026-08-29T10:00:00Z","count":3}],
  "recommendations": [{"title":"bump heap","description":"raise -Xmx","priority":"critical","actionSteps":["edit config"],"estimatedImpact":"fewer crashes"}]
}` + "\n```\n"

	res := Run(input, testNow)

	if res.Summary != "decoded summary" {
		t.Errorf("Summary = %q, want decoded value", res.Summary)
	}
	if len(res.Errors) != 1 || res.Errors[0].Message != "heap exhausted" {
		t.Errorf("Errors = %+v, want the decoded entry only", res.Errors)
	}
	if res.Errors[0].Count != 3 || res.Errors[0].Severity != analysis.ErrorSeverityHigh {
		t.Errorf("decoded error not used verbatim: %+v", res.Errors[0])
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0].Title != "bump heap" {
		t.Errorf("Recommendations = %+v, want the decoded entry only", res.Recommendations)
	}
}

func TestRunDecodedEmptyCollectionWins(t *testing.T) {
	input := "Error: prose error\n```json\n{\"summary\":\"ok\",\"errors\":[]}\n```\n"
	res := Run(input, testNow)

	if res.Summary != "ok" {
		t.Errorf("Summary = %q, want ok", res.Summary)
	}
	// errors was present and empty in the block, so the fallback must not run.
	if len(res.Errors) != 0 {
		t.Errorf("Errors = %+v, want empty", res.Errors)
	}
}

func TestRunPartialDecodeUsesFallbackForMissing(t *testing.T) {
	input := "Recommend: restart the worker\n```json\n{\"summary\":\"decoded\"}\n```\n"
	res := Run(input, testNow)

	if res.Summary != "decoded" {
		t.Errorf("Summary = %q", res.Summary)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0].Title != "restart the worker" {
		t.Errorf("missing field should fall back to cue scan, got %+v", res.Recommendations)
	}
}

func TestRunMalformedBlockFallsBackCompletely(t *testing.T) {
	// A truncated block is treated as fully absent, not partially trusted.
	input := "Error: disk full\nRoot cause: bad disk\n```json\n{\"summary\":\"half written\",\"errors\":[\n```\n"
	res := Run(input, testNow)

	if res.Summary == "half written" {
		t.Error("summary taken from a malformed block")
	}
	if len(res.Errors) != 1 || res.Errors[0].Message != "disk full" {
		t.Errorf("Errors = %+v, want fallback entry", res.Errors)
	}
	if len(res.RootCauses) != 1 || res.RootCauses[0].Description != "bad disk" {
		t.Errorf("RootCauses = %+v, want fallback entry", res.RootCauses)
	}
}

func TestRunNoBlockPlainProse(t *testing.T) {
	input := "Error: disk full\nError: disk full\nWarning: low memory"
	res := Run(input, testNow)

	if len(res.Errors) != 2 {
		t.Fatalf("Errors = %d, want 2", len(res.Errors))
	}
	for i, e := range res.Errors {
		if e.Message != "disk full" || e.Count != 1 {
			t.Errorf("Errors[%d] = %+v", i, e)
		}
	}
	if len(res.Timeline) != 0 {
		t.Errorf("Timeline = %+v, want empty (no fallback vocabulary)", res.Timeline)
	}
}

func TestRunEmptyInput(t *testing.T) {
	res := Run("", testNow)

	if res.Summary != defaultSummary {
		t.Errorf("Summary = %q, want generic default", res.Summary)
	}
	if len(res.Timeline)+len(res.Errors)+len(res.Insights)+len(res.RootCauses)+len(res.Recommendations) != 0 {
		t.Error("collections not empty for empty input")
	}
	if res.RawText != "" {
		t.Errorf("RawText = %q, want empty", res.RawText)
	}
}

func TestRunCapInvariant(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&sb, "Recommend: step %d\n", i)
	}
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&sb, "Error: failure %d\n", i)
	}
	for i := 0; i < 9; i++ {
		fmt.Fprintf(&sb, "Pattern: pattern %d\n", i)
	}
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&sb, "Root cause: cause %d\n", i)
	}

	res := Run(sb.String(), testNow)

	if len(res.Recommendations) != analysis.MaxRecommendations {
		t.Errorf("recommendations = %d, want %d", len(res.Recommendations), analysis.MaxRecommendations)
	}
	if len(res.Errors) != analysis.MaxErrorEntries {
		t.Errorf("errors = %d, want %d", len(res.Errors), analysis.MaxErrorEntries)
	}
	if len(res.Insights) != analysis.MaxInsights {
		t.Errorf("insights = %d, want %d", len(res.Insights), analysis.MaxInsights)
	}
	if len(res.RootCauses) != analysis.MaxRootCauses {
		t.Errorf("root causes = %d, want %d", len(res.RootCauses), analysis.MaxRootCauses)
	}

	// Stable truncation: the first N in document order survive.
	for i, rec := range res.Recommendations {
		if want := fmt.Sprintf("step %d", i); rec.Title != want {
			t.Errorf("Recommendations[%d].Title = %q, want %q", i, rec.Title, want)
		}
		if rec.Priority != analysis.PriorityMedium {
			t.Errorf("Recommendations[%d].Priority = %q, want medium", i, rec.Priority)
		}
	}
	for i, e := range res.Errors {
		if want := fmt.Sprintf("failure %d", i); e.Message != want {
			t.Errorf("Errors[%d].Message = %q, want %q", i, e.Message, want)
		}
	}
}

func TestRunCapAppliesToDecodedFields(t *testing.T) {
	var entries []string
	for i := 0; i < 12; i++ {
		entries = append(entries, fmt.Sprintf(`{"errorType":"e%d","message":"m%d","severity":"low","firstSeen":"x","count":1}`, i, i))
	}
	input := "```json\n{\"errors\":[" + strings.Join(entries, ",") + "]}\n```"

	res := Run(input, testNow)

	if len(res.Errors) != analysis.MaxErrorEntries {
		t.Fatalf("errors = %d, want %d", len(res.Errors), analysis.MaxErrorEntries)
	}
	if res.Errors[0].ErrorType != "e0" || res.Errors[9].ErrorType != "e9" {
		t.Errorf("truncation not stable: first=%q last=%q", res.Errors[0].ErrorType, res.Errors[9].ErrorType)
	}
}

func TestRunEnumCoercion(t *testing.T) {
	input := "```json\n" + `{
  "timeline": [{"timestamp":"t1","severity":"catastrophic","message":"m1"}],
  "errors": [{"errorType":"oom","message":"m","severity":"apocalyptic","firstSeen":"t","count":2}],
  "insights": [{"title":"a","description":"b","category":"trend","confidence":"certain"}],
  "rootCauses": [{"title":"c","description":"d","confidence":"HIGH"}],
  "recommendations": [{"title":"e","description":"f","priority":"Urgent"}]
}` + "\n```"

	res := Run(input, testNow)

	if res.Timeline[0].Severity != analysis.SeverityInfo {
		t.Errorf("timeline severity = %q, want coerced default", res.Timeline[0].Severity)
	}
	// The entry is retained, only the enum is substituted.
	if res.Errors[0].Severity != analysis.ErrorSeverityMedium || res.Errors[0].Count != 2 {
		t.Errorf("error entry = %+v, want severity coerced and count kept", res.Errors[0])
	}
	if res.Insights[0].Category != analysis.CategoryPattern || res.Insights[0].Confidence != analysis.ConfidenceMedium {
		t.Errorf("insight = %+v, want category and confidence coerced", res.Insights[0])
	}
	// Case drift alone is normalized, not a coercion.
	if res.RootCauses[0].Confidence != analysis.ConfidenceHigh {
		t.Errorf("root cause confidence = %q, want high", res.RootCauses[0].Confidence)
	}
	if res.Recommendations[0].Priority != analysis.PriorityMedium {
		t.Errorf("recommendation priority = %q, want coerced default", res.Recommendations[0].Priority)
	}

	if len(res.Warnings) == 0 {
		t.Error("coercions should be recorded as warnings")
	}
	for _, w := range res.Warnings {
		if strings.Contains(w, "HIGH") {
			t.Errorf("case normalization should not warn: %q", w)
		}
	}
}

func TestRunCountFloor(t *testing.T) {
	input := "```json\n{\"errors\":[{\"errorType\":\"x\",\"message\":\"m\",\"severity\":\"low\",\"firstSeen\":\"t\",\"count\":0}]}\n```"
	res := Run(input, testNow)

	if res.Errors[0].Count != 1 {
		t.Errorf("Count = %d, want floored to 1", res.Errors[0].Count)
	}
}

func TestRunTimelineOrderPreserved(t *testing.T) {
	input := "```json\n" + `{"timeline":[
  {"timestamp":"2026-08-29T10:02:00Z","severity":"error","message":"second"},
  {"timestamp":"2026-08-29T10:01:00Z","severity":"info","message":"first"}
]}` + "\n```"

	res := Run(input, testNow)

	// Insertion order is the chronology the source claims; never re-sorted.
	if res.Timeline[0].Message != "second" || res.Timeline[1].Message != "first" {
		t.Errorf("timeline reordered: %+v", res.Timeline)
	}
}

func TestRunIdempotence(t *testing.T) {
	inputs := []string{
		"",
		"Error: disk full\nRecommend: replace disk\nPattern: hourly spikes",
		"```json\n{\"summary\":\"ok\",\"errors\":[{\"errorType\":\"a\",\"message\":\"b\",\"severity\":\"weird\",\"firstSeen\":\"t\",\"count\":1}]}\n```",
		"```json\n{broken\n```\nRoot cause: bit rot",
	}

	for i, input := range inputs {
		first := Run(input, testNow)
		second := Run(input, testNow)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("input %d: runs differ (-first +second):\n%s", i, diff)
		}
	}
}

func TestRunScenarioTwoBlocks(t *testing.T) {
	input := "```json\n{\"summary\":\"ok\",\"errors\":[]}\n```\nsome prose\n```json\n{\"not\":\"json\"\n```\n"
	res := Run(input, testNow)

	if res.Summary != "ok" {
		t.Errorf("Summary = %q, want ok", res.Summary)
	}
	if len(res.Errors) != 0 {
		t.Errorf("Errors = %+v, want empty", res.Errors)
	}
}
