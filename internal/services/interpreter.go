package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"careercraft/resume-generator/internal/models"
)

// InterpretAtsResult parses the model's ATS scoring output. The model is not
// guaranteed to return pure JSON, so parsing is two-stage: a direct parse of
// the fence-stripped text, then a parse of the outermost {...} span. Missing
// fields stay at their zero values. When neither stage yields JSON the error
// wraps ErrUnparsableResult and the caller surfaces the raw text verbatim.
func InterpretAtsResult(raw string) (*models.AtsScoreResult, error) {
	text := stripFences(raw)

	var result models.AtsScoreResult
	if err := json.Unmarshal([]byte(text), &result); err == nil {
		return &result, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &result); err == nil {
			return &result, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnparsableResult, strings.TrimSpace(raw))
}

// stripFences removes markdown code fences the model tends to wrap JSON in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
