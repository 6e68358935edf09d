package extraction

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseJSON recovers a JSON object from model output. It tries, in order: the
// trimmed text, the content of the first fenced block, and the span from the
// first '{' to the last '}'. Only an object is returned; a top-level array or
// scalar fails unless that span holds an object.
func ParseJSON(text string) (map[string]any, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, &ParseError{Message: "Gemini returned an empty response. Please try again."}
	}

	if obj, ok := decodeObject(t); ok {
		return obj, nil
	}

	if m := fencePattern.FindStringSubmatch(t); m != nil {
		t = strings.TrimSpace(m[1])
		if obj, ok := decodeObject(t); ok {
			return obj, nil
		}
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start != -1 && end > start {
		if obj, ok := decodeObject(t[start : end+1]); ok {
			return obj, nil
		}
	}

	return nil, &ParseError{Message: "Gemini did not return a valid JSON object. Try a clearer image."}
}

func decodeObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
