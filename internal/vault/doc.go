package vault

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---\n"

// Doc is one stored document: typed YAML frontmatter plus a free-text
// body. The id and type live in the frontmatter under reserved keys.
type Doc struct {
	ID          uuid.UUID
	Type        string
	Frontmatter map[string]any
	Body        string
}

// Encode serializes the document as YAML frontmatter followed by the
// body.
func (d Doc) Encode() ([]byte, error) {
	fm := make(map[string]any, len(d.Frontmatter)+2)
	for k, v := range d.Frontmatter {
		fm[k] = v
	}
	fm["id"] = d.ID.String()
	fm["type"] = d.Type

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelim)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	buf.WriteString(frontmatterDelim)
	buf.WriteString(d.Body)
	return buf.Bytes(), nil
}

// Decode parses a stored document. The id argument is the address the
// document was read from; a frontmatter id, if present, must agree.
func Decode(id uuid.UUID, data []byte) (Doc, error) {
	text := string(data)
	if !strings.HasPrefix(text, frontmatterDelim) {
		return Doc{}, fmt.Errorf("document %s: missing frontmatter", id)
	}
	rest := text[len(frontmatterDelim):]

	// The closing delimiter must sit on its own line; a "---" inside an
	// indented multiline YAML value does not terminate the block.
	var fmText, body string
	if strings.HasPrefix(rest, frontmatterDelim) {
		body = rest[len(frontmatterDelim):]
	} else {
		end := strings.Index(rest, "\n"+frontmatterDelim)
		if end < 0 {
			return Doc{}, fmt.Errorf("document %s: unterminated frontmatter", id)
		}
		fmText = rest[:end+1]
		body = rest[end+1+len(frontmatterDelim):]
	}

	fm := map[string]any{}
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return Doc{}, fmt.Errorf("document %s: parsing frontmatter: %w", id, err)
	}

	doc := Doc{ID: id, Frontmatter: fm, Body: body}
	if raw, ok := fm["id"].(string); ok {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return Doc{}, fmt.Errorf("document %s: invalid id in frontmatter: %w", id, err)
		}
		if parsed != id {
			return Doc{}, fmt.Errorf("document %s: frontmatter id %s does not match", id, parsed)
		}
	}
	if t, ok := fm["type"].(string); ok {
		doc.Type = t
	}
	delete(fm, "id")
	delete(fm, "type")
	return doc, nil
}
