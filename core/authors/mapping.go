// Package authors resolves raw commit emails to canonical author identities.
package authors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/huangsam/gitwrapped/internal/contract"
)

// Palette is the fixed color list used for authors without a mapped color.
var Palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8B500", "#00CED1", "#FF69B4", "#32CD32", "#FFD700",
}

var colorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// PaletteColor returns the palette entry for index, wrapping around.
func PaletteColor(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}

// Entry is the configuration for one canonical author.
type Entry struct {
	Emails []string `json:"emails"`
	Color  string   `json:"color"`
}

// NamedEntry is an Entry together with its canonical name.
type NamedEntry struct {
	Name string
	Entry
}

// Mapping is the canonical name → Entry table. Key order is preserved because
// resolution returns the first matching name.
type Mapping struct {
	entries []NamedEntry
}

// NewMapping builds a mapping from entries in order. Later duplicates replace earlier ones.
func NewMapping(entries ...NamedEntry) Mapping {
	var m Mapping
	for _, e := range entries {
		m.Set(e.Name, e.Entry)
	}
	return m
}

// defaultAuthors seeds a new mapping file. Emails are left empty for the user to fill in.
var defaultAuthors = []string{
	"Pasan Kulatunge",
	"Pubudu Wijeyaratne",
	"Poshitha Harischandra",
	"Daniel Meza",
	"Gayani",
	"Kavisheshan",
	"Darshana",
}

// DefaultMapping is the table used when no mapping file can be read. Each
// default author takes the palette color at its position.
func DefaultMapping() Mapping {
	entries := make([]NamedEntry, len(defaultAuthors))
	for i, name := range defaultAuthors {
		entries[i] = NamedEntry{Name: name, Entry: Entry{Emails: []string{}, Color: PaletteColor(i)}}
	}
	return NewMapping(entries...)
}

// Len returns the number of canonical names.
func (m Mapping) Len() int {
	return len(m.entries)
}

// Names returns the canonical names in table order.
func (m Mapping) Names() []string {
	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.Name
	}
	return names
}

// Get returns the entry for name.
func (m Mapping) Get(name string) (Entry, bool) {
	for _, e := range m.entries {
		if e.Name == name {
			return cloneEntry(e.Entry), true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of all entries in table order.
func (m Mapping) Entries() []NamedEntry {
	return m.Clone().entries
}

// Set adds or replaces the entry for name.
func (m *Mapping) Set(name string, entry Entry) {
	entry = cloneEntry(entry)
	for i := range m.entries {
		if m.entries[i].Name == name {
			m.entries[i].Entry = entry
			return
		}
	}
	m.entries = append(m.entries, NamedEntry{Name: name, Entry: entry})
}

// Clone returns a deep copy so callers never share slices with the store.
func (m Mapping) Clone() Mapping {
	out := Mapping{entries: make([]NamedEntry, len(m.entries))}
	for i, e := range m.entries {
		out.entries[i] = NamedEntry{Name: e.Name, Entry: cloneEntry(e.Entry)}
	}
	return out
}

func cloneEntry(e Entry) Entry {
	emails := make([]string, len(e.Emails))
	copy(emails, e.Emails)
	return Entry{Emails: emails, Color: e.Color}
}

// MarshalJSON encodes the mapping as an ordered JSON object.
func (m Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Entry)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes and validates a mapping, keeping key order.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMapping(data)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMapping validates raw JSON as name → {emails: [string], color: string}.
// Any shape violation is reported as *contract.InvalidMappingError.
func ParseMapping(raw []byte) (Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return Mapping{}, contract.NewInvalidMappingError("", fmt.Sprintf("not valid JSON: %v", err))
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Mapping{}, contract.NewInvalidMappingError("", "mapping must be a JSON object of name to {emails, color}")
	}

	var m Mapping
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Mapping{}, contract.NewInvalidMappingError("", fmt.Sprintf("not valid JSON: %v", err))
		}
		name, _ := tok.(string)
		if strings.TrimSpace(name) == "" {
			return Mapping{}, contract.NewInvalidMappingError("", "author names must be non-empty")
		}
		if seen[name] {
			return Mapping{}, contract.NewInvalidMappingError(name, "duplicate author name")
		}
		seen[name] = true

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return Mapping{}, contract.NewInvalidMappingError(name, fmt.Sprintf("not valid JSON: %v", err))
		}
		entry, err := parseEntry(name, value)
		if err != nil {
			return Mapping{}, err
		}
		m.entries = append(m.entries, NamedEntry{Name: name, Entry: entry})
	}
	if _, err := dec.Token(); err != nil {
		return Mapping{}, contract.NewInvalidMappingError("", fmt.Sprintf("not valid JSON: %v", err))
	}
	if dec.More() {
		return Mapping{}, contract.NewInvalidMappingError("", "unexpected data after mapping object")
	}
	return m, nil
}

func parseEntry(name string, raw json.RawMessage) (Entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Entry{}, contract.NewInvalidMappingError(name, "value must be an object with emails and color")
	}

	emailsRaw, ok := fields["emails"]
	if !ok {
		return Entry{}, contract.NewInvalidMappingError(name, "missing emails")
	}
	var emails []string
	if err := json.Unmarshal(emailsRaw, &emails); err != nil || emails == nil {
		return Entry{}, contract.NewInvalidMappingError(name, "emails must be a list of strings")
	}

	colorRaw, ok := fields["color"]
	if !ok {
		return Entry{}, contract.NewInvalidMappingError(name, "missing color")
	}
	var color string
	if err := json.Unmarshal(colorRaw, &color); err != nil {
		return Entry{}, contract.NewInvalidMappingError(name, "color must be a string")
	}
	if err := ValidateColor(color); err != nil {
		return Entry{}, contract.NewInvalidMappingError(name, err.Error())
	}
	return Entry{Emails: emails, Color: color}, nil
}

// ValidateColor checks for a #RGB or #RRGGBB hex color.
func ValidateColor(color string) error {
	if !colorRegex.MatchString(color) {
		return fmt.Errorf("color %q must be a hex color like #FF6B6B", color)
	}
	return nil
}
