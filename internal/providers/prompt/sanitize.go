package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/webshunter/animemacker/internal/domain"
)

var (
	// ErrEmptyResponse is returned by Sanitize for blank model output.
	ErrEmptyResponse = errors.New("empty response")
	// ErrNoObject is returned when the output holds no JSON object.
	ErrNoObject = errors.New("no json object in response")
	// ErrMissingFields is returned when a required key is absent, not a
	// string, or blank.
	ErrMissingFields = errors.New("missing scene fields")
)

var sceneKeys = []string{"title", "image_prompt", "video_prompt"}

// Sanitize extracts a SceneOutput from raw model output. It prefers a ```json
// fenced block, then any fenced block, then the whole text, and decodes the
// outermost JSON object found there. Raw control characters inside string
// literals are escaped so multi-line values survive, and every other control
// character is dropped, including ones spelled as \u escapes. Extra keys are
// ignored.
func Sanitize(raw string) (domain.SceneOutput, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return domain.SceneOutput{}, ErrEmptyResponse
	}
	obj := outermostObject(fencedBlock(text))
	if obj == "" {
		return domain.SceneOutput{}, ErrNoObject
	}

	if hasControl(obj) {
		obj = repairControl(obj)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return domain.SceneOutput{}, fmt.Errorf("decode scene: %w", err)
	}

	values := make(map[string]string, len(sceneKeys))
	for _, key := range sceneKeys {
		rawValue, ok := fields[key]
		if !ok {
			return domain.SceneOutput{}, fmt.Errorf("%w: %s absent", ErrMissingFields, key)
		}
		var s string
		if err := json.Unmarshal(rawValue, &s); err != nil {
			return domain.SceneOutput{}, fmt.Errorf("%w: %s is not a string", ErrMissingFields, key)
		}
		s = strings.TrimSpace(strings.Map(dropControl, s))
		if s == "" {
			return domain.SceneOutput{}, fmt.Errorf("%w: %s is empty", ErrMissingFields, key)
		}
		values[key] = s
	}
	return domain.SceneOutput{
		Title:       values["title"],
		ImagePrompt: values["image_prompt"],
		VideoPrompt: values["video_prompt"],
	}, nil
}

// fallbackReason maps a Sanitize error to its reason string.
func fallbackReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyResponse):
		return ReasonEmptyResponse
	case errors.Is(err, ErrMissingFields):
		return ReasonMissingFields
	default:
		return ReasonParsePayload
	}
}

const fence = "```"

func fencedBlock(text string) string {
	if idx := jsonFence(text); idx >= 0 {
		return fenceBody(text[idx+len(fence)+len("json"):])
	}
	if idx := strings.Index(text, fence); idx >= 0 {
		rest := text[idx+len(fence):]
		// Skip an info string such as ```javascript.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.ContainsAny(rest[:nl], "{") {
			rest = rest[nl+1:]
		}
		return fenceBody(rest)
	}
	return text
}

// jsonFence returns the byte offset of the first ```json fence in text,
// matching the info string case-insensitively, or -1.
func jsonFence(text string) int {
	for i := 0; i < len(text); {
		j := strings.Index(text[i:], fence)
		if j < 0 {
			return -1
		}
		at := i + j
		info := text[at+len(fence) : min(at+len(fence)+len("json"), len(text))]
		if strings.EqualFold(info, "json") {
			return at
		}
		i = at + len(fence)
	}
	return -1
}

func fenceBody(rest string) string {
	if end := strings.Index(rest, fence); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// outermostObject returns the first balanced {...} span, honouring string
// literals. An unbalanced tail falls back to the last closing brace.
func outermostObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
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
				return text[start : i+1]
			}
		}
	}
	if end := strings.LastIndexByte(text, '}'); end > start {
		return text[start : end+1]
	}
	return ""
}

func hasControl(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return true
		}
	}
	return false
}

// dropControl removes control characters from decoded values, keeping
// newlines and tabs.
func dropControl(r rune) rune {
	if r == '\n' || r == '\t' {
		return r
	}
	if r < 0x20 || r == 0x7f {
		return -1
	}
	return r
}

// repairControl escapes newlines and tabs inside string literals and drops
// every other control character. Control characters outside strings are
// dropped unless they are JSON whitespace.
func repairControl(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
				sb.WriteByte(c)
			case c == '\\':
				escaped = true
				sb.WriteByte(c)
			case c == '"':
				inString = false
				sb.WriteByte(c)
			case c == '\n':
				sb.WriteString(`\n`)
			case c == '\t':
				sb.WriteString(`\t`)
			case c < 0x20 || c == 0x7f:
			default:
				sb.WriteByte(c)
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			sb.WriteByte(c)
		case c == '\n' || c == '\t' || c == '\r' || c == ' ':
			sb.WriteByte(c)
		case c < 0x20 || c == 0x7f:
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
