package backlog

import (
	"encoding/json"
	"regexp"
	"strings"

	"susafchat/internal/models"
)

var trailingComma = regexp.MustCompile(`,\s*([\]}])`)

// parseItems decodes a model completion into backlog items. raw is the
// pre-seeded "[" concatenated with the returned text. A clean parse is
// accepted as-is; otherwise one repair pass handles the common format
// deviations (markdown fences, trailing commas, missing closing bracket)
// before the final attempt. There is no partial recovery.
func parseItems(raw string) ([]models.BacklogItem, error) {
	var items []models.BacklogItem
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items, nil
	}
	repaired := repairArray(raw)
	if err := json.Unmarshal([]byte(repaired), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// repairArray normalizes a near-JSON completion into an array literal.
func repairArray(raw string) string {
	s := strings.TrimSpace(raw)
	// drop the seeded bracket, then re-anchor on whatever the model emitted
	s = strings.TrimPrefix(s, "[")
	s = stripFences(s)
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") {
		s = "[" + s
	}
	s = trailingComma.ReplaceAllString(s, "$1")
	if !strings.HasSuffix(s, "]") {
		s += "]"
	}
	return s
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}
