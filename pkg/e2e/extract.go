package e2e

import (
	"encoding/json"
	"fmt"
)

// E2E deployments are not uniform: some serving stacks return OpenAI-style
// "choices", others a single top-level field whose name varies. Extraction is
// an ordered rule list so the priority stays explicit and testable. The
// choices shape always wins over a coincidentally named top-level field, and
// the probe order of textFields reflects observed endpoint variance — do not
// reorder it.

// textFields are probed in order after the choices shape.
var textFields = []string{
	"response", "text", "generated_text", "output",
	"completion", "answer", "result",
}

type extractRule func(map[string]any) (string, bool)

var extractRules = buildExtractRules()

func buildExtractRules() []extractRule {
	rules := []extractRule{extractChoices}
	for _, f := range textFields {
		rules = append(rules, extractField(f))
	}
	return rules
}

// ExtractText pulls the generated text out of a decoded response object.
// The second return reports whether a known shape matched. When it is false
// the returned string is the JSON form of the whole object — a soft signal
// of an unrecognized endpoint, not a hard failure.
func ExtractText(result map[string]any) (string, bool) {
	for _, rule := range extractRules {
		if text, ok := rule(result); ok {
			return text, true
		}
	}
	return coerceString(result), false
}

// extractChoices handles the OpenAI-style choices array: the first element's
// "text" field, or failing that its "message.content".
func extractChoices(result map[string]any) (string, bool) {
	raw, ok := result["choices"]
	if !ok {
		return "", false
	}

	choices, ok := raw.([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}

	choice, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}

	if text, ok := choice["text"]; ok {
		return coerceString(text), true
	}

	if msg, ok := choice["message"].(map[string]any); ok {
		if content, ok := msg["content"]; ok {
			return coerceString(content), true
		}
	}

	return "", false
}

// extractField returns a rule that matches a single top-level field.
func extractField(name string) extractRule {
	return func(result map[string]any) (string, bool) {
		v, ok := result[name]
		if !ok {
			return "", false
		}
		return coerceString(v), true
	}
}

// coerceString renders a decoded JSON value as text: strings pass through,
// everything else is re-encoded as compact JSON.
func coerceString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(b)
}
