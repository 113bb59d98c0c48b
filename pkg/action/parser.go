package action

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Parse recovers a structured ActionResult from raw LLM output. The
// model is asked for a bare JSON object but routinely wraps it in prose
// or a code fence, so extraction is tried strategy by strategy, most
// precise first. Parse never fails: when no strategy yields a valid
// object, the raw text becomes the plot of a synthetic fallback result
// so the caller always has something to display.
func Parse(raw string) *ActionResult {
	text := strings.TrimSpace(raw)

	// A fenced code block, when present, replaces the candidate text.
	if inner, ok := extractCodeFence(text); ok {
		text = inner
	}

	if strings.HasPrefix(text, "{") {
		if result, ok := parseCandidate(text); ok {
			return result
		}
	}

	// Extraction strategies, tried in order. Each returns a candidate
	// substring or reports failure; the first candidate that parses as
	// a well-formed object wins.
	strategies := []func(string) (string, bool){
		extractNaiveSlice,
		extractBalancedBraces,
		extractLineScan,
	}
	for _, strategy := range strategies {
		candidate, ok := strategy(text)
		if !ok {
			continue
		}
		if result, ok := parseCandidate(candidate); ok {
			return result
		}
	}

	return fallbackResult(raw)
}

// ExtractJSON recovers JSON object text from raw model output using
// the same strategy chain as Parse. It serves responses that carry a
// different schema than ActionResult, like character generation.
func ExtractJSON(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if inner, ok := extractCodeFence(text); ok {
		text = inner
	}
	if strings.HasPrefix(text, "{") && json.Valid([]byte(text)) {
		return text, true
	}
	strategies := []func(string) (string, bool){
		extractNaiveSlice,
		extractBalancedBraces,
		extractLineScan,
	}
	for _, strategy := range strategies {
		if candidate, ok := strategy(text); ok && json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

var codeFenceRe = []*regexp.Regexp{
	regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```"),
	regexp.MustCompile("(?s)```\\s*(.*?)\\s*```"),
}

// extractCodeFence returns the interior of the first fenced code block.
func extractCodeFence(text string) (string, bool) {
	for _, re := range codeFenceRe {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// extractNaiveSlice takes the first "{" through the last "}".
func extractNaiveSlice(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// extractBalancedBraces scans from the first "{" to its matching "}"
// by brace depth. Braces inside JSON strings can fool the count, which
// is why this is one strategy among several rather than the only one.
func extractBalancedBraces(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// extractLineScan finds the first line starting with "{" and takes
// everything through the last "}" in the remaining text.
func extractLineScan(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "{") {
			continue
		}
		rest := strings.Join(lines[i:], "\n")
		if end := strings.LastIndex(rest, "}"); end != -1 {
			return rest[:end+1], true
		}
	}
	return "", false
}

// parseCandidate attempts to decode candidate text as a response
// object and normalize it to the full field set.
func parseCandidate(text string) (*ActionResult, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}
	return normalize(raw), true
}

// defaultSuggestions is used whenever the model omits or malforms the
// suggested action list.
var defaultSuggestions = []string{"继续探索", "查看状态", "休息"}

// normalize fills the ten required fields, substituting a
// type-appropriate default for anything missing or malformed.
func normalize(raw map[string]json.RawMessage) *ActionResult {
	result := &ActionResult{
		CurrentCharacter: decodeString(raw["currentCharacter"]),
		TimeLocation:     decodeString(raw["timeLocation"]),
		Environment:      decodeString(raw["environment"]),
		Plot:             decodeString(raw["plot"]),
		Dialogue:         decodeDialogue(raw["dialogue"]),
		CharacterStatus:  decodeString(raw["characterStatus"]),
		NumericChanges:   decodeNumericChanges(raw["numericChanges"]),
		SuggestedActions: decodeSuggestions(raw["suggestedActions"]),
		ImagePrompt:      decodeString(raw["imagePrompt"]),
	}
	if data, ok := raw["gameState"]; ok {
		// Decode errors leave an empty delta, never fail the parse.
		_ = json.Unmarshal(data, &result.GameState)
	}
	return result
}

func decodeString(data json.RawMessage) string {
	if data == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ""
	}
	return s
}

// decodeDialogue accepts either a plain string or the occasional
// speaker/line list the model produces despite the contract.
func decodeDialogue(data json.RawMessage) string {
	if data == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var lines []struct {
		Speaker string `json:"speaker"`
		Line    string `json:"line"`
	}
	if err := json.Unmarshal(data, &lines); err == nil {
		parts := make([]string, 0, len(lines))
		for _, l := range lines {
			if l.Speaker != "" {
				parts = append(parts, l.Speaker+"："+l.Line)
			} else {
				parts = append(parts, l.Line)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

// decodeNumericChanges accepts an object, or an object serialized as
// an embedded JSON string. Anything else coerces to empty.
func decodeNumericChanges(data json.RawMessage) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	var changes map[string]any
	if err := json.Unmarshal(data, &changes); err == nil && changes != nil {
		return changes
	}
	var embedded string
	if err := json.Unmarshal(data, &embedded); err == nil {
		if err := json.Unmarshal([]byte(embedded), &changes); err == nil && changes != nil {
			return changes
		}
	}
	return map[string]any{}
}

func decodeSuggestions(data json.RawMessage) []string {
	if data == nil {
		return append([]string(nil), defaultSuggestions...)
	}
	var actions []string
	if err := json.Unmarshal(data, &actions); err != nil || len(actions) == 0 {
		return append([]string(nil), defaultSuggestions...)
	}
	return actions
}

// fallbackResult is returned when no strategy recovers an object. The
// raw text is preserved as the plot so the narrative log never loses
// the model's output.
func fallbackResult(raw string) *ActionResult {
	plot := raw
	if strings.TrimSpace(plot) == "" {
		plot = "响应解析失败，但游戏继续进行。"
	}
	return &ActionResult{
		CurrentCharacter: "系统",
		TimeLocation:     "未知时间地点",
		Environment:      "系统正在处理您的请求...",
		Plot:             plot,
		CharacterStatus:  "正常",
		NumericChanges:   map[string]any{},
		SuggestedActions: []string{"继续探索", "查看状态", "重试"},
		ImagePrompt:      "fantasy RPG scene",
	}
}
