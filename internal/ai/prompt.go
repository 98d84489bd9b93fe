package ai

import (
	"fmt"
)

const systemPrompt = `You are a site reliability engineer analyzing application logs. Return your analysis as a single JSON object inside one fenced code block tagged json.`

func BuildPrompt(logText string) (string, string) {
	userPrompt := fmt.Sprintf(`Analyze the following application log and report what happened.

Log:
%s

Rules:
- Respond with exactly one fenced code block tagged json, containing one JSON object with this schema:
  {
    "summary": "short overview of the log",
    "timeline": [{"timestamp":"...","severity":"info|warning|error|critical","message":"...","context":"optional"}],
    "errors": [{"errorType":"...","message":"...","severity":"low|medium|high|critical","firstSeen":"...","count":1,"stackTrace":"optional"}],
    "insights": [{"title":"...","description":"...","category":"pattern|anomaly|correlation|metric","confidence":"low|medium|high"}],
    "rootCauses": [{"title":"...","description":"...","evidence":["..."],"confidence":"low|medium|high","relatedErrorTypes":["..."]}],
    "recommendations": [{"title":"...","description":"...","priority":"low|medium|high|critical","actionSteps":["..."],"estimatedImpact":"..."}]
  }
- Keep the timeline in the order events occurred.
- List distinct error conditions separately; use count for repeats of the same condition.
- Omit a field only when you have nothing to report for it.
- Do not put any text outside the fenced block.
`, logText)

	return systemPrompt, userPrompt
}
