package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// commitDateLayouts are tried in order when parsing a commit timestamp.
var commitDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05-0700",
}

// Commit is one (repository, git commit) pair as produced by the extractor.
type Commit struct {
	Hash         string   `json:"hash"`
	AbbrevHash   string   `json:"abbrevHash"`
	Author       string   `json:"author"`
	Email        string   `json:"email"`
	Date         string   `json:"date"`
	Message      string   `json:"message"`
	Insertions   int      `json:"insertions"`
	Deletions    int      `json:"deletions"`
	FilesChanged []string `json:"filesChanged"`
	Repository   string   `json:"repository"`
}

// Time parses the commit date keeping the offset recorded by git.
// The boolean is false when the date cannot be parsed.
func (c Commit) Time() (time.Time, bool) {
	raw := strings.TrimSpace(c.Date)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range commitDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ShortHash returns the abbreviated hash, deriving one when git did not supply it.
func (c Commit) ShortHash() string {
	if c.AbbrevHash != "" {
		return c.AbbrevHash
	}
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Author is a raw identity grouped by lower-cased email.
// Repositories is only populated on the merged, scan-wide author list.
type Author struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	CommitCount  int      `json:"commitCount"`
	Repositories []string `json:"repositories,omitempty"`
}

// Repository is the per-repository summary kept alongside the commits.
type Repository struct {
	Name          string          `json:"name"`
	Path          string          `json:"path,omitempty"`
	DefaultBranch string          `json:"defaultBranch,omitempty"`
	CommitCount   int             `json:"commitCount"`
	Authors       []Author        `json:"authors"`
	Languages     LanguageTallies `json:"languages"`
}

// DateRange is the optional extraction window. An empty range means all-time.
type DateRange struct {
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	AllTime bool   `json:"allTime,omitempty"`
}

// AllTimeRange returns an unfiltered date range.
func AllTimeRange() DateRange {
	return DateRange{AllTime: true}
}

// YearRange returns the range covering one calendar year.
func YearRange(year int) DateRange {
	return DateRange{
		Start: fmt.Sprintf("%d-01-01", year),
		End:   fmt.Sprintf("%d-12-31", year),
	}
}

// IsAllTime reports whether the range applies no filtering.
func (r DateRange) IsAllTime() bool {
	return r.AllTime || (r.Start == "" && r.End == "")
}

// String renders the range for headers and cache keys.
func (r DateRange) String() string {
	if r.IsAllTime() {
		return "all time"
	}
	start, end := r.Start, r.End
	if start == "" {
		start = "beginning"
	}
	if end == "" {
		end = "now"
	}
	return start + " → " + end
}

// LanguageTally is an inserted-line count for one language.
type LanguageTally struct {
	Name  string `json:"name"`
	Lines int    `json:"lines"`
}

// LanguageTallies keeps language line counts in first-seen order.
// It is encoded as a JSON object so export files stay readable by other tools.
type LanguageTallies []LanguageTally

// Add increments the tally for name, appending it when unseen.
func (lt *LanguageTallies) Add(name string, lines int) {
	for i := range *lt {
		if (*lt)[i].Name == name {
			(*lt)[i].Lines += lines
			return
		}
	}
	*lt = append(*lt, LanguageTally{Name: name, Lines: lines})
}

// Total returns the sum of all tallies.
func (lt LanguageTallies) Total() int {
	total := 0
	for _, t := range lt {
		total += t.Lines
	}
	return total
}

// MarshalJSON encodes the tallies as an ordered JSON object.
func (lt LanguageTallies) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range lt {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(t.Lines))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either an object of name to lines (key order kept)
// or an array of {name, lines} entries.
func (lt *LanguageTallies) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*lt = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []LanguageTally
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*lt = items
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("languages must be an object or an array")
	}

	out := LanguageTallies{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected language key %v", tok)
		}
		var lines int
		if err := dec.Decode(&lines); err != nil {
			return fmt.Errorf("invalid line count for language %q: %w", name, err)
		}
		out = append(out, LanguageTally{Name: name, Lines: lines})
	}
	*lt = out
	return nil
}

// ScanData is the full extraction result. It doubles as the export file format,
// so it can be produced by a scan or loaded from a file another machine wrote.
type ScanData struct {
	ExportVersion string          `json:"exportVersion,omitempty"`
	ExportDate    string          `json:"exportDate,omitempty"`
	SourceApp     string          `json:"sourceApp,omitempty"`
	ScanID        string          `json:"scanId,omitempty"`
	ScannedAt     time.Time       `json:"scannedAt,omitzero"`
	Targets       []string        `json:"targets,omitempty"`
	Repositories  []Repository    `json:"repositories"`
	Commits       []Commit        `json:"commits"`
	TotalCommits  int             `json:"totalCommits"`
	Authors       []Author        `json:"authors"`
	Languages     LanguageTallies `json:"languages"`
	DateRange     DateRange       `json:"dateRange"`
}

// FindRepository returns the repository summary with the given name.
func (s *ScanData) FindRepository(name string) (Repository, bool) {
	for _, r := range s.Repositories {
		if r.Name == name {
			return r, true
		}
	}
	return Repository{}, false
}

// AuthorIndex returns the position of email in the scan-wide author list, or -1.
func (s *ScanData) AuthorIndex(email string) int {
	for i, a := range s.Authors {
		if strings.EqualFold(a.Email, email) {
			return i
		}
	}
	return -1
}

// DiscoveredRepo is a repository root found on disk without parsing its history.
type DiscoveredRepo struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	DefaultBranch string `json:"defaultBranch,omitempty"`
	HeadHash      string `json:"headHash,omitempty"`
}
