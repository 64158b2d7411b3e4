package extract

import (
	"strconv"
	"strings"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
)

// headerFields is the number of fields in a commit header: %H %h %an %ae %aI %s.
const headerFields = 6

// RepoLog is what one repository's log yields.
type RepoLog struct {
	Commits   []schema.Commit
	Authors   []schema.Author
	Languages schema.LanguageTallies
}

// ParseCommitLog parses the delimited header plus numstat output of the
// git client into commits, authors keyed by lower-cased email (in the order
// they appear) and inserted lines per language.
func ParseCommitLog(out []byte, repoName string) RepoLog {
	result := RepoLog{
		Commits:   []schema.Commit{},
		Authors:   []schema.Author{},
		Languages: schema.LanguageTallies{},
	}
	authorIndex := make(map[string]int)

	var current *schema.Commit
	flush := func() {
		if current == nil {
			return
		}
		result.Commits = append(result.Commits, *current)
		key := strings.ToLower(current.Email)
		if i, ok := authorIndex[key]; ok {
			result.Authors[i].CommitCount++
		} else {
			authorIndex[key] = len(result.Authors)
			result.Authors = append(result.Authors, schema.Author{Name: current.Author, Email: current.Email, CommitCount: 1})
		}
		current = nil
	}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")

		if strings.HasPrefix(line, contract.LogRecordStart) {
			flush()
			current = parseCommitHeader(line, repoName)
			continue
		}
		if current == nil || line == "" {
			continue
		}

		path, ins, del, ok := parseNumstatLine(line)
		if !ok {
			continue
		}
		current.Insertions += ins
		current.Deletions += del
		current.FilesChanged = append(current.FilesChanged, path)
		if lang, known := schema.LanguageForPath(path); known {
			result.Languages.Add(lang, ins)
		}
	}
	flush()
	return result
}

// parseCommitHeader returns nil for a header without every field.
func parseCommitHeader(line, repoName string) *schema.Commit {
	parts := strings.SplitN(strings.TrimPrefix(line, contract.LogRecordStart), contract.LogFieldSep, headerFields)
	if len(parts) < headerFields || parts[0] == "" {
		return nil
	}
	return &schema.Commit{
		Hash:         parts[0],
		AbbrevHash:   parts[1],
		Author:       parts[2],
		Email:        parts[3],
		Date:         parts[4],
		Message:      parts[5],
		FilesChanged: []string{},
		Repository:   repoName,
	}
}

// parseNumstatLine parses "insertions<TAB>deletions<TAB>path".
func parseNumstatLine(line string) (string, int, int, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 || parts[2] == "" {
		return "", 0, 0, false
	}
	return renamedPath(parts[2]), parseChurnValue(parts[0]), parseChurnValue(parts[1]), true
}

// parseChurnValue converts a churn string to int, handling "-" (binary files) as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}

// renamedPath returns the destination of a numstat rename, which git prints
// as "old => new" or "prefix{old => new}suffix". Other paths are returned as-is.
func renamedPath(path string) string {
	if !strings.Contains(path, " => ") {
		return path
	}
	braceStart := strings.Index(path, "{")
	braceEnd := strings.Index(path, "}")
	if braceStart == -1 || braceEnd == -1 || braceStart >= braceEnd {
		parts := strings.SplitN(path, " => ", 2)
		return parts[1]
	}

	renamePart := path[braceStart+1 : braceEnd]
	if !strings.Contains(renamePart, " => ") {
		return path
	}
	newPart := strings.SplitN(renamePart, " => ", 2)[1]
	joined := path[:braceStart] + newPart + path[braceEnd+1:]
	// "{old => }" moves a file up a level and leaves a doubled slash behind.
	return strings.ReplaceAll(joined, "//", "/")
}
