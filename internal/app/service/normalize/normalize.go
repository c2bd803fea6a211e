package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/careerpilot/backend/pkg/types"
)

// ErrMalformedContent indicates generated output that cannot be repaired:
// empty text, unparseable JSON, or JSON missing its required structure.
var ErrMalformedContent = errors.New("malformed generated content")

type ShapeKind int

const (
	// ShapeKindHTML expects an HTML fragment carrying a container element
	// with a known class. Absence of the marker is repaired by wrapping.
	ShapeKindHTML ShapeKind = iota
	// ShapeKindJSON expects a JSON object with a required top-level key.
	// Violations are not repairable and fail hard.
	ShapeKindJSON
)

// ShapeSpec is the structural contract a generated section must satisfy.
type ShapeSpec struct {
	Kind ShapeKind
	// ContainerClass is the class of the required container (HTML shapes).
	ContainerClass string
	// RequiredKey is the required top-level JSON key (JSON shapes).
	RequiredKey string
}

var (
	ShapeCareerPathsHTML = ShapeSpec{Kind: ShapeKindHTML, ContainerClass: "career-paths-container"}
	ShapeRoadmapHTML     = ShapeSpec{Kind: ShapeKindHTML, ContainerClass: "learning-roadmap"}
	ShapeCareerPathsJSON = ShapeSpec{Kind: ShapeKindJSON, RequiredKey: "career_paths"}
	ShapeRoadmapJSON     = ShapeSpec{Kind: ShapeKindJSON, RequiredKey: "learning_roadmap"}
)

// Result is a normalized section. Exactly one of HTML or Doc is populated,
// matching the shape it was validated against.
type Result struct {
	// Wrapped marks degraded success: the raw text lacked the required
	// container and was deterministically wrapped instead of rejected.
	Wrapped bool
	HTML    string
	Doc     *types.GuideDocument
}

// Normalize validates raw model output against the expected shape and
// returns a value guaranteed to satisfy the minimal structural contract.
// HTML shapes degrade gracefully (fallback wrap); JSON shapes fail with
// ErrMalformedContent, since a structurally broken document cannot feed the
// PDF walker.
func Normalize(raw string, shape ShapeSpec) (*Result, error) {
	text := StripFences(raw)
	if text == "" {
		return nil, fmt.Errorf("empty output: %w", ErrMalformedContent)
	}

	switch shape.Kind {
	case ShapeKindJSON:
		doc, err := parseDocument(text, shape.RequiredKey)
		if err != nil {
			return nil, err
		}
		return &Result{Doc: doc}, nil
	default:
		marker := fmt.Sprintf("class=%q", shape.ContainerClass)
		if strings.Contains(text, marker) {
			return &Result{HTML: text}, nil
		}
		// Model output format compliance is unreliable; a wrapped but
		// unstyled section beats a hard failure in a user-facing flow.
		wrapped := fmt.Sprintf("<div class=%q>\n<div class=\"fallback-content\">\n%s\n</div>\n</div>", shape.ContainerClass, text)
		return &Result{Wrapped: true, HTML: wrapped}, nil
	}
}

func parseDocument(text, requiredKey string) (*types.GuideDocument, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", ErrMalformedContent)
	}
	if _, ok := keys[requiredKey]; !ok {
		return nil, fmt.Errorf("missing required key %q: %w", requiredKey, ErrMalformedContent)
	}

	var doc types.GuideDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("unexpected JSON structure: %w", ErrMalformedContent)
	}

	switch requiredKey {
	case "career_paths":
		if len(doc.CareerPaths) == 0 {
			return nil, fmt.Errorf("career_paths must be a non-empty sequence: %w", ErrMalformedContent)
		}
	case "learning_roadmap":
		var rm map[string]json.RawMessage
		if err := json.Unmarshal(keys["learning_roadmap"], &rm); err != nil {
			return nil, fmt.Errorf("learning_roadmap must be an object: %w", ErrMalformedContent)
		}
	}
	return &doc, nil
}

// StripFences removes markdown code-fence markers the model may have wrapped
// its output in (```json ... ``` and friends).
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
