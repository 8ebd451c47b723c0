// Package frontmatter reads and writes the metadata block at the top of a note.
package frontmatter

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Metadata maps frontmatter keys to scalar, sequence or mapping values.
type Metadata map[string]any

// Note is a parsed note: its frontmatter and the content that follows it.
type Note struct {
	Frontmatter    Metadata
	Body           string
	HasFrontmatter bool
}

// Parse splits content into frontmatter and body. Content without a frontmatter
// block parses into an empty Metadata and the full content as body.
func Parse(content []byte) (*Note, error) {
	matter := Metadata{}
	rest, err := frontmatter.Parse(bytes.NewReader(content), &matter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	return &Note{
		Frontmatter:    matter,
		Body:           string(rest),
		HasFrontmatter: len(rest) != len(content),
	}, nil
}

// Body returns content without its frontmatter block. Malformed frontmatter is
// returned as part of the body.
func Body(content []byte) string {
	note, err := Parse(content)
	if err != nil {
		return string(content)
	}
	return note.Body
}

// Bytes serializes the note back to text. A note without frontmatter keys
// serializes as its body alone.
func (n *Note) Bytes() ([]byte, error) {
	if len(n.Frontmatter) == 0 && !n.HasFrontmatter {
		return []byte(n.Body), nil
	}

	block, err := Marshal(n.Frontmatter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(block) + len(n.Body))
	buf.Write(block)
	buf.WriteString(n.Body)
	return buf.Bytes(), nil
}

// Marshal renders metadata as a delimited YAML block with sorted keys.
func Marshal(matter Metadata) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	if len(matter) > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any(matter)); err != nil {
			return nil, fmt.Errorf("failed to serialize frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to serialize frontmatter: %w", err)
		}
	}

	buf.WriteString("---\n")
	return buf.Bytes(), nil
}

// Default returns the metadata written into new notes.
func Default(title, identKey string, now time.Time) Metadata {
	stamp := now.Format(time.RFC3339)
	return Metadata{
		"created":  stamp,
		"modified": stamp,
		"title":    title,
		identKey:   NewUID(),
	}
}

// NewUID returns a random note identifier.
func NewUID() string {
	return uuid.NewString()
}

// Touch sets the modified timestamp.
func (m Metadata) Touch(now time.Time) {
	m["modified"] = now.Format(time.RFC3339)
}

// Title returns the title key when it holds a string.
func (m Metadata) Title() (string, bool) {
	title, ok := m["title"].(string)
	return title, ok && title != ""
}

// Keys returns the metadata keys in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseValue converts a command-line value into a typed frontmatter value:
// true/false, integers, floats and [a, b] lists; anything else stays a string.
func ParseValue(raw string) any {
	s := strings.TrimSpace(raw)

	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.ContainsAny(s, "0123456789") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		items := []any{}
		if inner == "" {
			return items
		}
		for _, part := range strings.Split(inner, ",") {
			items = append(items, ParseValue(part))
		}
		return items
	}

	return s
}

// FormatValue renders a frontmatter value for terminal output.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case time.Time:
		return val.Format(time.RFC3339)
	case map[string]any, map[any]any:
		out, err := yaml.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return strings.TrimSpace(string(out))
	default:
		return fmt.Sprint(val)
	}
}
