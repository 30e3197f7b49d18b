package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"docchat-backend/internal/llm"
	"docchat-backend/internal/shared/telemetry"
	"docchat-backend/internal/shared/util"
)

// maxAnalysisChars bounds how much document text is sent per analysis
// request. Truncation is a prefix cut.
const maxAnalysisChars = 15000

// Analyzer turns extracted document text into a structured Analysis by
// calling a completion service and defensively parsing its reply.
type Analyzer struct {
	LLM llm.Client
}

// NewAnalyzer constructs an Analyzer.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{LLM: client}
}

// Analyze produces an Analysis for the given text. It never fails: empty
// input skips the service call entirely, and every service or parse failure
// is absorbed into a placeholder record.
func (a *Analyzer) Analyze(ctx context.Context, text string) Analysis {
	result := Default()

	if strings.TrimSpace(text) == "" {
		result.Summary = SummaryNoText
		return result
	}

	reply, err := a.LLM.Complete(ctx, buildAnalysisPrompt(util.Truncate(text, maxAnalysisChars)))
	if err != nil {
		telemetry.Warn("analysis.failed", map[string]any{"err": err.Error()})
		result.Summary = SummaryFailed
		return result
	}

	parsed, err := parseReply(reply)
	if err != nil {
		telemetry.Warn("analysis.parse_failed", map[string]any{"err": err.Error()})
		result.Summary = SummaryFailed
		return result
	}
	return parsed
}

func buildAnalysisPrompt(text string) string {
	return fmt.Sprintf(`Analyze the following document content properly.
Document Content (truncated): %q

Return a valid JSON object with the following structure:
{
  "summary": "A brief but comprehensive summary of the document (max 3 sentences)",
  "key_topics": ["Topic 1", "Topic 2", "Topic 3", "Topic 4"],
  "important_findings": ["Finding 1", "Finding 2"],
  "recommendations": ["Recommendation 1"]
}`, text)
}

// parseReply strips the code fences models frequently wrap JSON in, then
// parses the remainder tolerantly: missing fields keep their defaults.
func parseReply(reply string) (Analysis, error) {
	cleaned := strings.ReplaceAll(reply, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	result := Default()
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return Analysis{}, fmt.Errorf("analysis reply parse: %w", err)
	}
	result.normalize()
	return result, nil
}
