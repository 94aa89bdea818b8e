// Package gemini implements locator inference using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/locpick"
	"google.golang.org/genai"
)

// Ensure Inferrer implements locpick.Inferrer at compile time.
var _ locpick.Inferrer = (*Inferrer)(nil)

// Inferrer implements locpick.Inferrer using the Gemini API. The model is
// asked for a JSON object mapping each requested field to an XPath
// expression, with null marking fields it found no locator for.
type Inferrer struct {
	client *genai.Client
	model  string
}

// NewInferrer creates a new Inferrer using the given model.
func NewInferrer(client *genai.Client, model string) *Inferrer {
	return &Inferrer{client: client, model: model}
}

// Infer requests locators for the named fields.
func (inf *Inferrer) Infer(ctx context.Context, digest string, fields []string) (locpick.Inference, error) {
	if len(fields) == 0 {
		return nil, locpick.Errorf(locpick.EINVALID, "at least one field required")
	}

	prompt := BuildUserPrompt(digest, fields)
	config := BuildConfig()

	result, err := inf.client.Models.GenerateContent(ctx, inf.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, locpick.Errorf(locpick.EINFERENCE, "model call: %v", err)
	}
	if result == nil {
		return nil, locpick.Errorf(locpick.EINFERENCE, "model returned nil result")
	}

	return ParseInference(result.Text(), fields)
}

// BuildConfig returns the GenerateContentConfig for locator inference.
// Low temperature keeps expressions stable across runs.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an expert web page analyst who derives XPath selectors from DOM structure.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the user prompt containing the structural digest
// and the fields to locate.
func BuildUserPrompt(digest string, fields []string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following HTML structure and derive a precise XPath selector for each requested element.\n\n")
	sb.WriteString("HTML structure summary:\n")
	sb.WriteString(digest)
	sb.WriteString("\n\nElements to locate: ")
	sb.WriteString(strings.Join(fields, ", "))
	sb.WriteString("\n\nReturn a single JSON object mapping each element name to its XPath expression, ")
	sb.WriteString("using null for elements you cannot locate:\n")
	sb.WriteString("{\n    \"element name\": \"xpath expression\",\n    ...\n}\n\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString("1. Prefer stable attributes such as id and class.\n")
	sb.WriteString("2. Avoid absolute position paths.\n")
	sb.WriteString("3. Consider the semantics and context of each element.\n\n")
	sb.WriteString("Return only the JSON object, no other text.")
	return sb.String()
}

// ParseInference parses the model response into a typed Inference.
// Requested fields absent from the response, or mapped to null, are left
// out of the result. A field that appears more than once with different
// expressions is marked as a conflict rather than picking a winner.
// Responses whose shape does not match a field-to-string object return
// EINFERENCE.
func ParseInference(text string, fields []string) (locpick.Inference, error) {
	payload := strings.TrimSpace(text)
	if payload == "" {
		return nil, locpick.Errorf(locpick.EINFERENCE, "empty model response")
	}

	entries, err := decodeObject(payload)
	if err != nil {
		// The model sometimes wraps the object in prose or fences; try
		// the outermost brace-delimited substring before giving up.
		start := strings.Index(payload, "{")
		end := strings.LastIndex(payload, "}")
		if start < 0 || end <= start {
			return nil, err
		}
		entries, err = decodeObject(payload[start : end+1])
		if err != nil {
			return nil, err
		}
	}

	requested := make(map[string]bool, len(fields))
	for _, f := range fields {
		requested[f] = true
	}

	inference := make(locpick.Inference)
	seen := make(map[string]string)
	for _, e := range entries {
		if !requested[e.field] {
			continue
		}
		if prev, ok := seen[e.field]; ok {
			if prev != e.expr {
				inference[e.field] = locpick.InferredLocator{Conflict: true}
			}
			continue
		}
		seen[e.field] = e.expr
		if e.expr == "" {
			// Explicit "no locator found" marker; leave the field absent.
			continue
		}
		inference[e.field] = locpick.InferredLocator{Expr: e.expr}
	}
	return inference, nil
}

// entry is one key/value pair of the response object, in document order.
// Order and duplicates matter for conflict detection, so the object is
// walked token by token instead of decoded into a map.
type entry struct {
	field string
	expr  string
}

func decodeObject(payload string) ([]entry, error) {
	dec := json.NewDecoder(strings.NewReader(payload))

	tok, err := dec.Token()
	if err != nil {
		return nil, locpick.Errorf(locpick.EINFERENCE, "malformed model response: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, locpick.Errorf(locpick.EINFERENCE, "model response is not a JSON object")
	}

	var entries []entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, locpick.Errorf(locpick.EINFERENCE, "malformed model response: %v", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, locpick.Errorf(locpick.EINFERENCE, "malformed model response: non-string key")
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, locpick.Errorf(locpick.EINFERENCE, "malformed model response: %v", err)
		}
		switch val := valTok.(type) {
		case string:
			entries = append(entries, entry{field: key, expr: strings.TrimSpace(val)})
		case nil:
			entries = append(entries, entry{field: key})
		default:
			return nil, locpick.Errorf(locpick.EINFERENCE,
				"unexpected value of type %T for field %q", val, key)
		}
	}

	// Consume the closing brace so truncated responses are rejected.
	if _, err := dec.Token(); err != nil {
		return nil, locpick.Errorf(locpick.EINFERENCE, "malformed model response: %v", err)
	}
	return entries, nil
}
