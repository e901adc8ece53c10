package persona

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNotJSON reports that a model reply contains no parseable JSON object.
var ErrNotJSON = errors.New("model reply is not valid JSON")

// FieldError reports a required field that is absent or mistyped in an
// otherwise valid JSON reply.
type FieldError struct {
	Path string
	Want string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("model reply field %q is missing or not %s", e.Path, e.Want)
}

// DecodeIdentification parses stage-1 model output. An isCar=true reply with
// an empty candidate list is not a shape error; the orchestrator treats it as
// "no car identified".
func DecodeIdentification(raw string) (Identification, error) {
	obj, ok := extractObject(raw)
	if !ok || !gjson.Valid(obj) {
		return Identification{}, fmt.Errorf("identification: %w", ErrNotJSON)
	}

	parsed := gjson.Parse(obj)
	isCar := parsed.Get("isCar")
	if isCar.Type != gjson.True && isCar.Type != gjson.False {
		return Identification{}, &FieldError{Path: "isCar", Want: "a boolean"}
	}

	ident := Identification{IsCar: isCar.Bool()}
	if !ident.IsCar {
		return ident, nil
	}

	if cands := parsed.Get("candidates"); cands.Exists() && cands.Type != gjson.Null && !cands.IsArray() {
		return Identification{}, &FieldError{Path: "candidates", Want: "an array"}
	}

	if first := parsed.Get("candidates.0"); first.Exists() {
		if m := first.Get("model"); m.Type != gjson.String || strings.TrimSpace(m.String()) == "" {
			return Identification{}, &FieldError{Path: "candidates.0.model", Want: "a non-empty string"}
		}
		if c := first.Get("confidence"); c.Type != gjson.Number {
			return Identification{}, &FieldError{Path: "candidates.0.confidence", Want: "a number"}
		}
	}

	for _, c := range parsed.Get("candidates").Array() {
		ident.Candidates = append(ident.Candidates, CarCandidate{
			Model:         c.Get("model").String(),
			Confidence:    int(c.Get("confidence").Int()),
			PriceRange:    c.Get("priceRange").String(),
			ReleasePeriod: c.Get("releasePeriod").String(),
			Features:      c.Get("features").String(),
		})
	}
	return ident, nil
}

// DecodePersona parses stage-2 model output, checking that every section the
// contract promises is actually present before the typed decode.
func DecodePersona(raw string) (Persona, error) {
	obj, ok := extractObject(raw)
	if !ok || !gjson.Valid(obj) {
		return Persona{}, fmt.Errorf("persona: %w", ErrNotJSON)
	}

	parsed := gjson.Parse(obj)
	for _, path := range []string{"verdict", "lifestyle", "vibe", "memeIndex"} {
		if sec := parsed.Get(path); !sec.IsObject() {
			return Persona{}, &FieldError{Path: path, Want: "an object"}
		}
	}

	scores := parsed.Get("memeIndex")
	for _, key := range []string{"showOff", "reckless", "jealousy", "success", "family"} {
		if v := scores.Get(key); v.Type != gjson.Number {
			return Persona{}, &FieldError{Path: "memeIndex." + key, Want: "a number"}
		}
	}

	var sections struct {
		Verdict   Verdict   `json:"verdict"`
		Lifestyle Lifestyle `json:"lifestyle"`
		Vibe      Vibe      `json:"vibe"`
	}
	if err := json.Unmarshal([]byte(obj), &sections); err != nil {
		return Persona{}, fmt.Errorf("persona: %w", err)
	}

	return Persona{
		Verdict:   sections.Verdict,
		Lifestyle: sections.Lifestyle,
		Vibe:      sections.Vibe,
		MemeIndex: MemeIndex{
			ShowOff:  int(scores.Get("showOff").Int()),
			Reckless: int(scores.Get("reckless").Int()),
			Jealousy: int(scores.Get("jealousy").Int()),
			Success:  int(scores.Get("success").Int()),
			Family:   int(scores.Get("family").Int()),
		},
	}, nil
}

// extractObject returns the first balanced JSON object embedded in s. JSON
// response mode usually yields a bare object, but prose and markdown fences
// still slip through.
func extractObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1]), true
			}
		}
	}
	return "", false
}
